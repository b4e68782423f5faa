package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

func TestSplitParagraphPacking(t *testing.T) {
	cfg := types.ChunkConfig{MaxChars: 40, OverlapChars: 10}
	text := "First paragraph here.\n\nSecond one.\n\nA third paragraph that is longer."

	chunks := Split(text, cfg)

	// First two paragraphs pack into one chunk; the third starts a new one.
	require.Len(t, chunks, 2)
	assert.Equal(t, "First paragraph here.\n\nSecond one.", chunks[0])
	assert.Equal(t, "A third paragraph that is longer.", chunks[1])
}

func TestSplitLongParagraphWithOverlap(t *testing.T) {
	cfg := types.ChunkConfig{MaxChars: 50, OverlapChars: 15}
	text := strings.Repeat("requirement word ", 20) // one 340-char paragraph

	chunks := Split(text, cfg)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), cfg.MaxChars)
		assert.NotEmpty(t, c)
	}

	// Adjacent chunks share overlapping context.
	for i := 1; i < len(chunks); i++ {
		prefix := strings.Fields(chunks[i])[0]
		assert.True(t, strings.Contains(chunks[i-1], prefix),
			"chunk %d should start with a word carried from chunk %d", i, i-1)
	}
}

func TestSplitLongTokensCarryNoMidWordOverlap(t *testing.T) {
	cfg := types.ChunkConfig{MaxChars: 20, OverlapChars: 8}

	// Every token is longer than the overlap window, so the carried tail
	// has no word boundary and must be dropped rather than cut mid-word.
	word := "abcdefghijklmno"
	text := strings.TrimSpace(strings.Repeat(word+" ", 5))

	chunks := Split(text, cfg)

	require.Len(t, chunks, 5)
	for i, c := range chunks {
		assert.Equal(t, word, c, "chunk %d", i)
	}
}

func TestOverlapTail(t *testing.T) {
	tests := []struct {
		chunk string
		n     int
		want  string
	}{
		{"alpha beta gamma", 10, "gamma"},
		{"alpha beta gamma", 6, "gamma"},
		{"alpha beta gamma", 0, ""},
		{"short", 10, ""},
		{"alpha incompressible", 8, ""}, // tail inside one token
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, overlapTail(tt.chunk, tt.n), "tail(%q, %d)", tt.chunk, tt.n)
	}
}

func TestSplitEmptyAndBlank(t *testing.T) {
	cfg := types.DefaultChunking()

	assert.Empty(t, Split("", cfg))
	assert.Empty(t, Split("\n\n  \n\n", cfg))
}

func TestSplitWindowsLineEndings(t *testing.T) {
	cfg := types.DefaultChunking()

	chunks := Split("alpha\r\n\r\nbeta", cfg)

	require.Len(t, chunks, 1)
	assert.Equal(t, "alpha\n\nbeta", chunks[0])
}

func TestSplitZeroConfigUsesDefaults(t *testing.T) {
	chunks := Split("some text", types.ChunkConfig{})
	require.Len(t, chunks, 1)
}

func TestFragments(t *testing.T) {
	cfg := types.ChunkConfig{MaxChars: 20, OverlapChars: 5}

	frags := Fragments("first paragraph\n\nsecond paragraph", types.SourceRFP, "rfp-9", cfg)

	require.Len(t, frags, 2)
	for i, f := range frags {
		assert.Equal(t, i, f.SequenceIndex)
		assert.Equal(t, types.SourceRFP, f.SourceType)
		assert.Equal(t, "rfp-9", f.DocumentID)
	}
}
