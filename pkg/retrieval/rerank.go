package retrieval

import (
	"sort"
	"strings"

	"docintel-be/internal/entity"
)

const (
	vectorWeight       = 0.7
	keywordWeight      = 0.1
	keywordBonusCeil   = 0.3
	keywordMinWordSize = 3 // query words must be longer than this to count
)

// rerank reorders results by a blended score: 70% vector similarity plus a
// capped lexical-overlap bonus. The blended score replaces the result score
// so downstream truncation sees the reranked order.
func rerank(results []entity.SearchResult, query string) []entity.SearchResult {
	keywords := queryKeywords(query)

	for i := range results {
		matches := keywordMatchCount(results[i].Document.Text, keywords)
		bonus := keywordWeight * float64(matches)
		if bonus > keywordBonusCeil {
			bonus = keywordBonusCeil
		}
		results[i].Score = vectorWeight*results[i].Score + bonus
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func queryKeywords(query string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,?!;:\"'")
		if len(word) > keywordMinWordSize {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// keywordMatchCount counts how many of the query keywords appear in the
// chunk text. Each keyword counts once.
func keywordMatchCount(text string, keywords []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}
