package bpe

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Split pattern names accepted by NewSegmenter and the model file.
const (
	// PatternSimple splits into maximal runs of ASCII letters, digits,
	// or whitespace, and single other characters.
	PatternSimple = "simple"
	// PatternGPT2 is the GPT-2 pre-tokenization pattern: contractions,
	// space-prefixed letter and number runs, punctuation runs, and
	// trailing whitespace handling. Requires lookahead, hence regexp2.
	PatternGPT2 = "gpt2"
	// PatternNone disables pre-segmentation.
	PatternNone = "none"
)

var patterns = map[string]string{
	PatternSimple: `\s+|[a-zA-Z]+|[0-9]+|\S`,
	PatternGPT2:   `'(?:[sdmt]|ll|ve|re)| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`,
}

// ValidPatterns returns the recognised split pattern names.
func ValidPatterns() []string {
	return []string{PatternSimple, PatternGPT2, PatternNone}
}

// Segmenter splits text into chunks before byte-level encoding, so
// that merges cannot cross chunk boundaries. Segmentation is purely
// advisory: it changes which pairs are adjacent, never which merges
// exist. A Segmenter is stateless and safe for concurrent use.
type Segmenter struct {
	name string
	re   *regexp2.Regexp
}

// NewSegmenter compiles the named split pattern. The empty name and
// PatternNone return a nil Segmenter, meaning no segmentation.
func NewSegmenter(name string) (*Segmenter, error) {
	if name == "" || name == PatternNone {
		return nil, nil
	}
	expr, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("bpe: unknown split pattern %q: %w", name, ErrInvalidInput)
	}
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("bpe: compile pattern %q: %w", name, err)
	}
	return &Segmenter{name: name, re: re}, nil
}

// Name returns the pattern name the Segmenter was built from.
func (s *Segmenter) Name() string {
	return s.name
}

// Split partitions text into chunks, left to right, preferring the
// longest match at each position. The chunks are non-overlapping and
// concatenate back to exactly the input: any stretch the pattern does
// not match is passed through as its own chunk.
func (s *Segmenter) Split(text string) []string {
	if text == "" {
		return nil
	}

	// regexp2 match positions are rune offsets, not byte offsets.
	runes := []rune(text)
	var chunks []string
	pos := 0

	m, err := s.re.FindStringMatch(text)
	for err == nil && m != nil {
		if m.Index > pos {
			chunks = append(chunks, string(runes[pos:m.Index]))
		}
		chunks = append(chunks, m.String())
		pos = m.Index + m.Length
		m, err = s.re.FindNextMatch(m)
	}
	if pos < len(runes) {
		chunks = append(chunks, string(runes[pos:]))
	}
	return chunks
}
