package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docintel-be/internal/entity"
)

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		documentType string
		want         Strategy
	}{
		{"legal", StrategyLegalAware},
		{"case_file", StrategyLegalAware},
		{"appellate brief", StrategyLegalAware},
		{"Legal Memo", StrategyLegalAware},
		{"email", StrategySemantic},
		{"", StrategySemantic},
	}

	for _, tt := range tests {
		t.Run(tt.documentType, func(t *testing.T) {
			assert.Equal(t, tt.want, StrategyFor(tt.documentType))
		})
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	c := New(0)

	assert.Empty(t, c.ChunkText("", Options{}))
	assert.Empty(t, c.ChunkText("   \n\t  ", Options{}))
}

func TestChunkTextSemanticPacksParagraphs(t *testing.T) {
	c := New(100)

	text := "First paragraph here.\n\nSecond paragraph here."
	chunks := c.ChunkText(text, Options{Strategy: StrategySemantic})

	assert.Len(t, chunks, 1)
	assert.Equal(t, "chunk_0", chunks[0].Id)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Contains(t, chunks[0].Text, "First paragraph")
	assert.Contains(t, chunks[0].Text, "Second paragraph")
}

func TestChunkTextSemanticSplitsAtTarget(t *testing.T) {
	c := New(30)

	// two paragraphs that cannot share a 30-char window
	chunks := c.ChunkText("First paragraph goes here now.\n\nSecond paragraph goes here too.", Options{Strategy: StrategySemantic})

	assert.Len(t, chunks, 2)
	assert.Equal(t, "chunk_0", chunks[0].Id)
	assert.Equal(t, "chunk_1", chunks[1].Id)
	assert.Equal(t, 1, chunks[1].Index)
}

func TestChunkTextSemanticOversizedParagraphFallsBackToSentences(t *testing.T) {
	c := New(40)

	text := "The first sentence is right here. The second sentence follows it. The third sentence closes."
	chunks := c.ChunkText(text, Options{Strategy: StrategySemantic})

	assert.Greater(t, len(chunks), 1)
	for _, ch := range chunks {
		// sentences are never split mid-way
		assert.True(t, strings.HasSuffix(strings.TrimSpace(ch.Text), "."))
	}
}

func TestChunkTextLegalAwareSectionBoundaries(t *testing.T) {
	c := New(200)

	text := "SECTION 1\n\n1. The party shall pay the fee.\n\n2. The party shall deliver the goods."
	chunks := c.ChunkText(text, Options{Strategy: StrategyLegalAware})

	assert.Len(t, chunks, 3)
	assert.Equal(t, "SECTION 1", chunks[0].Text)
	for _, ch := range chunks {
		assert.Equal(t, "SECTION 1", ch.Section)
		assert.Equal(t, "SECTION 1", ch.Metadata.Section)
	}
	assert.Contains(t, chunks[1].Text, "shall pay")
	assert.Contains(t, chunks[2].Text, "shall deliver")
}

func TestChunkTextLegalAwareCitationStaysWithClause(t *testing.T) {
	c := New(40)

	text := "3. Breach requires proof of damages.\n\nSee Smith v. Jones, 15 F. 2d 100.\n\nThe court agreed with that rule."
	chunks := c.ChunkText(text, Options{Strategy: StrategyLegalAware})

	assert.Len(t, chunks, 2)
	assert.Contains(t, chunks[0].Text, "proof of damages")
	assert.Contains(t, chunks[0].Text, "Smith v. Jones")
	assert.Contains(t, chunks[1].Text, "court agreed")
}

func TestChunkTextCarriesMetadata(t *testing.T) {
	c := New(0)

	meta := entity.DocumentMetadata{DocumentType: "legal", County: "Oakland"}
	chunks := c.ChunkText("A short contract paragraph.", Options{Strategy: StrategyLegalAware, Metadata: meta})

	assert.Len(t, chunks, 1)
	assert.Equal(t, "legal", chunks[0].Metadata.DocumentType)
	assert.Equal(t, "Oakland", chunks[0].Metadata.County)
}
