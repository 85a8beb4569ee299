package chunk

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// DefaultMaxTokens bounds a chunk unless configured otherwise.
	DefaultMaxTokens = 500
	// DefaultEncoding is the tokenizer scheme used for counting.
	DefaultEncoding = "cl100k_base"
)

// Splitter cuts plain text into token-bounded, sentence-respecting
// chunks. It is a pure function of its input: same text, same chunks.
type Splitter struct {
	encoder   *tiktoken.Tiktoken
	maxTokens int
}

func NewSplitter(encoding string, maxTokens int) (*Splitter, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	encoder, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer encoding %s: %w", encoding, err)
	}

	return &Splitter{encoder: encoder, maxTokens: maxTokens}, nil
}

func (s *Splitter) MaxTokens() int {
	return s.maxTokens
}

// CountTokens returns the token length of text under the splitter's
// encoding.
func (s *Splitter) CountTokens(text string) int {
	return len(s.encoder.Encode(text, nil, nil))
}

// Split greedily accumulates sentences into chunks, closing a chunk
// when the next sentence would push it past the token ceiling. A single
// sentence longer than the ceiling is emitted alone rather than cut
// mid-sentence. Blank input yields no chunks.
func (s *Splitter) Split(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	chunks := make([]string, 0)
	var current strings.Builder
	currentTokens := 0

	for _, sentence := range sentences {
		sentenceTokens := s.CountTokens(sentence)

		if current.Len() == 0 {
			current.WriteString(sentence)
			currentTokens = sentenceTokens
			continue
		}

		if currentTokens+sentenceTokens <= s.maxTokens {
			current.WriteString(" ")
			current.WriteString(sentence)
			currentTokens += sentenceTokens
		} else {
			chunks = append(chunks, current.String())
			current.Reset()
			current.WriteString(sentence)
			currentTokens = sentenceTokens
		}
	}

	return append(chunks, current.String())
}

// A sentence ends at '.', '!' or '?' followed by whitespace.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

func splitSentences(text string) []string {
	matches := sentenceBoundary.FindAllStringIndex(text, -1)

	sentences := make([]string, 0, len(matches)+1)
	start := 0
	for _, match := range matches {
		end := match[0] + 1 // keep the terminator, drop the whitespace
		if sentence := strings.TrimSpace(text[start:end]); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = match[1]
	}

	if start < len(text) {
		if remaining := strings.TrimSpace(text[start:]); remaining != "" {
			sentences = append(sentences, remaining)
		}
	}

	return sentences
}
