package rag

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int, prefix string) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return strings.Join(out, " ")
}

func TestChunkGroupsSmallParagraphs(t *testing.T) {
	c := NewChunker(100)

	text := words(30, "a") + "\n\n" + words(30, "b") + "\n\n" + words(30, "c")
	chunks := c.Chunk(text)

	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "a0")
	assert.Contains(t, chunks[0], "c29")
}

func TestChunkClosesAtSoftCap(t *testing.T) {
	c := NewChunker(100)

	text := words(60, "a") + "\n\n" + words(60, "b")
	chunks := c.Chunk(text)

	// 60+60 words would reach the cap, so each paragraph stands alone.
	require.Len(t, chunks, 2)
	assert.Equal(t, words(60, "a"), chunks[0])
	assert.Equal(t, words(60, "b"), chunks[1])
}

func TestChunkOversizedParagraphEmittedWhole(t *testing.T) {
	c := NewChunker(100)

	first := words(130, "big")
	second := words(120, "huge")
	chunks := c.Chunk(first + "\n\n" + second)

	require.Len(t, chunks, 2)
	assert.Equal(t, first, chunks[0])
	assert.Equal(t, second, chunks[1])
}

func TestChunkSkipsBlankParagraphs(t *testing.T) {
	c := NewChunker(100)

	chunks := c.Chunk("alpha\n\n\n\n   \n\nbeta")

	require.Len(t, chunks, 1)
	assert.NotContains(t, chunks[0], "   ")
}

func TestChunkEmptyInput(t *testing.T) {
	c := NewChunker(100)

	assert.Empty(t, c.Chunk(""))
	assert.Empty(t, c.Chunk("\n\n \n\n"))
}

func TestChunkNormalizesCRLF(t *testing.T) {
	c := NewChunker(5)

	chunks := c.Chunk("one two three\r\n\r\nfour five six")

	require.Len(t, chunks, 2)
	assert.Equal(t, "one two three", chunks[0])
	assert.Equal(t, "four five six", chunks[1])
}

func TestChunkReconstructsParagraphs(t *testing.T) {
	c := NewChunker(40)

	paras := []string{
		words(10, "p"),
		words(25, "q"),
		words(50, "r"),
		words(5, "s"),
	}
	chunks := c.Chunk(strings.Join(paras, "\n\n"))

	joined := strings.Join(chunks, "\n\n")
	for _, p := range paras {
		assert.Contains(t, joined, p)
	}
	// Order is preserved.
	assert.Less(t, strings.Index(joined, "p0"), strings.Index(joined, "q0"))
	assert.Less(t, strings.Index(joined, "q0"), strings.Index(joined, "r0"))
	assert.Less(t, strings.Index(joined, "r0"), strings.Index(joined, "s0"))
}

func TestChunkDefaultCap(t *testing.T) {
	c := NewChunker(0)
	assert.Equal(t, DefaultMaxWords, c.maxWords)
}
