// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits plain document text into fragments for indexing
// and matching.
package chunk

import (
	"strings"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

// Split breaks text into chunks of at most cfg.MaxChars characters.
// Paragraph boundaries (blank lines) are preferred split points;
// paragraphs are packed greedily into chunks. A paragraph longer than
// the limit is hard-split at word boundaries, carrying cfg.OverlapChars
// of trailing context into the next chunk so no requirement straddles a
// cut unseen.
func Split(text string, cfg types.ChunkConfig) []string {
	if cfg.MaxChars <= 0 {
		cfg = types.DefaultChunking()
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")

	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) > cfg.MaxChars {
			flush()
			chunks = append(chunks, splitLong(para, cfg)...)
			continue
		}

		if current.Len() > 0 && current.Len()+2+len(para) > cfg.MaxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}

// splitLong hard-splits an oversized paragraph at word boundaries into
// windows of at most MaxChars, each window starting with the last
// OverlapChars of its predecessor.
func splitLong(para string, cfg types.ChunkConfig) []string {
	words := strings.Fields(para)

	var chunks []string
	var current strings.Builder

	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > cfg.MaxChars {
			chunk := current.String()
			chunks = append(chunks, chunk)
			current.Reset()
			current.WriteString(overlapTail(chunk, cfg.OverlapChars))
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// overlapTail returns the last n characters of chunk, trimmed to the
// next word boundary so the carried context never starts mid-word. A
// tail spanning a single long token has no boundary and carries nothing.
func overlapTail(chunk string, n int) string {
	if n <= 0 || n >= len(chunk) {
		return ""
	}
	tail := chunk[len(chunk)-n:]
	idx := strings.IndexByte(tail, ' ')
	if idx < 0 {
		return ""
	}
	return tail[idx+1:]
}

// Fragments splits text and wraps each chunk as a Fragment with its
// sequence index.
func Fragments(text string, source types.SourceType, documentID string, cfg types.ChunkConfig) []types.Fragment {
	chunks := Split(text, cfg)
	fragments := make([]types.Fragment, len(chunks))
	for i, c := range chunks {
		fragments[i] = types.Fragment{
			Text:          c,
			SourceType:    source,
			DocumentID:    documentID,
			SequenceIndex: i,
		}
	}
	return fragments
}
