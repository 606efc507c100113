// Package rag holds the retrieval primitives: the paragraph chunker and the
// flat vector index the per-tenant artifacts are built from.
package rag

import "strings"

// DefaultMaxWords is the soft cap on words per chunk.
const DefaultMaxWords = 100

// Chunker splits extracted document text into bounded-size passages.
// Paragraphs (blank-line-delimited) are accumulated greedily into the
// current chunk until adding the next paragraph would reach maxWords. The
// cap is soft: a single paragraph longer than maxWords is emitted whole,
// never split.
type Chunker struct {
	maxWords int
}

// NewChunker creates a Chunker with the given soft word cap.
func NewChunker(maxWords int) *Chunker {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Chunker{maxWords: maxWords}
}

// Chunk splits text into passages. Concatenating the returned chunks
// reconstructs the non-empty paragraphs of the input in order.
func (c *Chunker) Chunk(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	paras := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder

	for _, para := range paras {
		if strings.TrimSpace(para) == "" {
			continue
		}
		if wordCount(current.String()+" "+para) < c.maxWords {
			current.WriteString(para)
			current.WriteString("\n\n")
			continue
		}
		if closed := strings.TrimSpace(current.String()); closed != "" {
			chunks = append(chunks, closed)
		}
		current.Reset()
		current.WriteString(para)
		current.WriteString("\n\n")
	}

	if trailing := strings.TrimSpace(current.String()); trailing != "" {
		chunks = append(chunks, trailing)
	}
	return chunks
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
