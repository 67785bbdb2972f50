package retrieval

import "strings"

// maxQueryVariants bounds expansion: the original query plus at most two
// synonym-augmented variants.
const maxQueryVariants = 3

// domainSynonyms is a fixed legal-domain synonym table used for query
// expansion. English-only by design.
var domainSynonyms = map[string][]string{
	"contract":    {"agreement", "covenant"},
	"liability":   {"responsibility", "obligation"},
	"negligence":  {"carelessness", "breach of duty"},
	"damages":     {"compensation", "restitution"},
	"custody":     {"guardianship", "parenting time"},
	"divorce":     {"dissolution", "marital separation"},
	"support":     {"maintenance", "alimony"},
	"hearing":     {"proceeding", "session"},
	"motion":      {"petition", "application"},
	"judgment":    {"ruling", "decision"},
	"plaintiff":   {"petitioner", "claimant"},
	"defendant":   {"respondent", "accused"},
	"evidence":    {"proof", "exhibit"},
	"settlement":  {"resolution", "accord"},
	"injunction":  {"restraining order", "court order"},
	"property":    {"assets", "estate"},
	"testimony":   {"statement", "deposition"},
	"appeal":      {"review", "reconsideration"},
	"breach":      {"violation", "default"},
	"termination": {"cancellation", "rescission"},
}

// expandQuery builds up to maxQueryVariants query variants: the original
// first, then the original suffixed with a synonym for each query word found
// in the table.
func expandQuery(query string) []string {
	variants := []string{query}

	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,?!;:\"'")
		syns, ok := domainSynonyms[word]
		if !ok {
			continue
		}
		for _, syn := range syns {
			if len(variants) >= maxQueryVariants {
				return variants
			}
			variants = append(variants, query+" "+syn)
		}
	}
	return variants
}
