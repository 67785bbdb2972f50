package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"docintel-be/internal/entity"
)

type Strategy string

const (
	StrategySemantic   Strategy = "semantic"
	StrategyLegalAware Strategy = "legal-aware"
)

// StrategyFor picks the chunking strategy from the document type. Legal
// material (contracts, case files, briefs) gets structure-aware splitting.
func StrategyFor(documentType string) Strategy {
	t := strings.ToLower(documentType)
	if strings.Contains(t, "legal") || strings.Contains(t, "case") || strings.Contains(t, "brief") {
		return StrategyLegalAware
	}
	return StrategySemantic
}

// Options controls a single ChunkText call.
type Options struct {
	Strategy Strategy
	Metadata entity.DocumentMetadata
}

// Chunker splits raw text into indexable spans. It holds no per-document
// state: ChunkText is a pure function of its input.
type Chunker struct {
	targetSize int
	maxSize    int

	sentenceRe  *regexp.Regexp
	paragraphRe *regexp.Regexp
	clauseRe    *regexp.Regexp
	headerRe    *regexp.Regexp
	citationRe  *regexp.Regexp
}

const defaultTargetSize = 1200

func New(targetSize int) *Chunker {
	if targetSize <= 0 {
		targetSize = defaultTargetSize
	}
	return &Chunker{
		targetSize:  targetSize,
		maxSize:     targetSize * 2,
		sentenceRe:  regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?]+)`),
		paragraphRe: regexp.MustCompile(`\n\s*\n`),
		clauseRe:    regexp.MustCompile(`^\s*\d+(\.\d+)*[.)]\s+`),
		headerRe:    regexp.MustCompile(`(?i)^\s*(section|article|clause|part|exhibit|schedule)\s+[\dIVXLC]+|^\s*§+\s*\d+`),
		citationRe:  regexp.MustCompile(`\d+\s+U\.S\.C\.\s*§+\s*\d+|\d+\s+[A-Z][a-z]*\.?\s*(2d|3d)\s+\d+|\bv\.\s+[A-Z]|\bId\.\s+at\s+\d+`),
	}
}

// ChunkText splits text into an ordered sequence of chunks. Empty input
// yields an empty sequence, not an error. Chunk ids are unique within the
// call ("chunk_0", "chunk_1", ...), matching the per-document uniqueness the
// store id scheme relies on.
func (c *Chunker) ChunkText(text string, opts Options) []entity.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategySemantic
	}

	var segments []segment
	if strategy == StrategyLegalAware {
		segments = c.legalSegments(text)
	} else {
		segments = c.semanticSegments(text)
	}

	return c.pack(segments, opts.Metadata)
}

// segment is a span that must not be split further, with packing hints.
type segment struct {
	text       string
	section    string // active section header, if any
	forceBreak bool   // start a new chunk before this segment
	glue       bool   // keep with the previous segment even past the target size
}

// semanticSegments splits on paragraph boundaries, falling back to sentence
// boundaries for paragraphs larger than the window. Sentences are never
// split mid-way, so a single oversized sentence stays whole.
func (c *Chunker) semanticSegments(text string) []segment {
	var segments []segment
	for _, para := range c.paragraphRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= c.targetSize {
			segments = append(segments, segment{text: para})
			continue
		}
		for _, sentence := range c.splitSentences(para) {
			segments = append(segments, segment{text: sentence})
		}
	}
	return segments
}

// legalSegments is semanticSegments plus structural markers: numbered clauses
// and section headers force a chunk boundary, and an inline citation is glued
// to the clause it supports.
func (c *Chunker) legalSegments(text string) []segment {
	var segments []segment
	section := ""

	for _, para := range c.paragraphRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		isHeader := c.headerRe.MatchString(para)
		isClause := c.clauseRe.MatchString(para)
		if isHeader {
			section = firstLine(para)
		}

		if len(para) <= c.targetSize {
			segments = append(segments, segment{
				text:       para,
				section:    section,
				forceBreak: isHeader || isClause,
				glue:       !isHeader && !isClause && c.citationRe.MatchString(para),
			})
			continue
		}

		sentences := c.splitSentences(para)
		for i, sentence := range sentences {
			seg := segment{text: sentence, section: section}
			if i == 0 {
				seg.forceBreak = isHeader || isClause
			} else if c.citationRe.MatchString(sentence) {
				// Keep the citation with the clause it cites.
				seg.glue = true
			}
			segments = append(segments, seg)
		}
	}
	return segments
}

func (c *Chunker) splitSentences(text string) []string {
	sentences := c.sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	out := make([]string, 0, len(sentences))
	// The regex consumes up to the last terminator; keep any unterminated tail.
	consumed := 0
	for _, s := range sentences {
		consumed += len(s)
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	if tail := strings.TrimSpace(text[min(consumed, len(text)):]); tail != "" {
		out = append(out, tail)
	}
	return out
}

// pack greedily joins segments into chunks bounded by the size window.
func (c *Chunker) pack(segments []segment, meta entity.DocumentMetadata) []entity.Chunk {
	var chunks []entity.Chunk
	var b strings.Builder
	section := ""

	flush := func() {
		if b.Len() == 0 {
			return
		}
		idx := len(chunks)
		chunkMeta := meta
		chunkMeta.Section = section
		chunks = append(chunks, entity.Chunk{
			Id:       fmt.Sprintf("chunk_%d", idx),
			Text:     b.String(),
			Index:    idx,
			Section:  section,
			Metadata: chunkMeta,
		})
		b.Reset()
	}

	for _, seg := range segments {
		switch {
		case seg.forceBreak:
			flush()
		case seg.glue:
			// never break before a glued segment
		case b.Len() > 0 && b.Len()+len(seg.text)+1 > c.targetSize:
			flush()
		case b.Len() >= c.maxSize:
			flush()
		}
		section = seg.section
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(seg.text)
	}
	flush()

	return chunks
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
