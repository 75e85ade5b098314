package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

const (
	// MinPassageLength is the minimum passage length in runes. Shorter
	// fragments are merged with a neighbor before indexing.
	MinPassageLength = 80
	// MaxPassageLength is the maximum passage length in runes. Longer
	// paragraphs are split at sentence boundaries.
	MaxPassageLength = 1000
)

// CorpusChunk is one indexable piece of a corpus document.
type CorpusChunk struct {
	Ordinal int
	Content string
	Hash    string // SHA-256 of the content, stable across rebuilds
}

// Chunker splits corpus documents into passages sized for embedding.
type Chunker interface {
	Chunk(body string) ([]CorpusChunk, error)
}

type paragraphChunker struct{}

// NewChunker returns the default paragraph-based chunker.
func NewChunker() Chunker {
	return &paragraphChunker{}
}

// Chunk splits on blank lines, merges fragments shorter than
// MinPassageLength into a neighbor, and splits paragraphs longer than
// MaxPassageLength at sentence boundaries.
func (c *paragraphChunker) Chunk(body string) ([]CorpusChunk, error) {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var paragraphs []string
	for _, part := range strings.Split(normalized, "\n\n") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	pieces := splitOversized(mergeUndersized(paragraphs))

	var chunks []CorpusChunk
	for i, content := range pieces {
		sum := sha256.Sum256([]byte(content))
		chunks = append(chunks, CorpusChunk{
			Ordinal: i,
			Content: content,
			Hash:    hex.EncodeToString(sum[:]),
		})
	}
	return chunks, nil
}

// mergeUndersized folds paragraphs shorter than MinPassageLength into the
// following paragraph, or into the previous result when nothing follows.
func mergeUndersized(paragraphs []string) []string {
	var result []string
	var pending string

	join := func(a, b string) string {
		if a == "" {
			return b
		}
		return a + "\n\n" + b
	}

	for _, para := range paragraphs {
		if utf8.RuneCountInString(para) >= MinPassageLength {
			result = append(result, join(pending, para))
			pending = ""
			continue
		}
		pending = join(pending, para)
		if utf8.RuneCountInString(pending) >= MinPassageLength {
			result = append(result, pending)
			pending = ""
		}
	}

	if pending != "" {
		if len(result) > 0 && utf8.RuneCountInString(pending) < MinPassageLength {
			result[len(result)-1] = join(result[len(result)-1], pending)
		} else {
			result = append(result, pending)
		}
	}
	return result
}

// splitOversized breaks paragraphs longer than MaxPassageLength into chunks
// of whole sentences.
func splitOversized(paragraphs []string) []string {
	var result []string
	for _, para := range paragraphs {
		if utf8.RuneCountInString(para) <= MaxPassageLength {
			result = append(result, para)
			continue
		}

		var current string
		for _, sentence := range splitSentences(para) {
			currentLen := utf8.RuneCountInString(current)
			if currentLen > 0 && currentLen+1+utf8.RuneCountInString(sentence) > MaxPassageLength {
				result = append(result, current)
				current = sentence
				continue
			}
			if current != "" {
				current += " "
			}
			current += sentence
		}
		if current != "" {
			result = append(result, current)
		}
	}
	return result
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' {
			if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
				sentences = append(sentences, trimmed)
			}
			current.Reset()
		}
	}
	if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
		sentences = append(sentences, trimmed)
	}
	return sentences
}
