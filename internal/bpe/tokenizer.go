// Package bpe implements a byte-level Byte Pair Encoding tokenizer.
//
// A Tokenizer starts from the 256 single-byte tokens and learns merge rules
// from a training corpus: the most frequent adjacent token pair is replaced
// by a new token, repeatedly, until the vocabulary reaches a target size.
// Encoding replays those merges in the order they were learned, which makes
// the mapping between text and token IDs deterministic and exactly
// reversible.
//
// After training (or loading) completes the Tokenizer is read-only:
// Encode and Decode may be called concurrently from multiple goroutines.
// Train and AddSpecialTokens mutate state and must not run concurrently
// with anything else.
package bpe

import (
	"fmt"
	"sort"
)

// baseVocabSize is the number of reserved single-byte tokens.
// Token IDs 0-255 always map to the corresponding raw byte.
const baseVocabSize = 256

// pair is an adjacent (left, right) token ID pair.
type pair struct {
	left, right int
}

// less orders pairs by left ID, then right ID. Used for deterministic
// tie-breaking during training.
func (p pair) less(q pair) bool {
	if p.left != q.left {
		return p.left < q.left
	}
	return p.right < q.right
}

// mergeRule records one learned merge: left+right become result.
// The rule's position in the merge list is its rank; lower rank means
// learned earlier and applied with higher priority during encoding.
type mergeRule struct {
	left, right, result int
}

// DecodePolicy controls how Decode treats byte sequences that are not
// valid UTF-8. Merged tokens are not guaranteed to split along UTF-8
// boundaries, so a partial token sequence can produce invalid bytes.
type DecodePolicy int

const (
	// ReplacePolicy substitutes U+FFFD for invalid byte runs. Decode
	// never fails on invalid UTF-8 under this policy.
	ReplacePolicy DecodePolicy = iota
	// StrictPolicy makes Decode return ErrInvalidUTF8 on invalid bytes.
	StrictPolicy
)

// Tokenizer is a byte-level BPE engine: a vocabulary of byte-sequence
// tokens, an ordered merge table, and an optional pre-tokenization
// segmenter. The zero value is not usable; call New.
type Tokenizer struct {
	vocab     map[int][]byte // token ID -> byte value (specials included)
	merges    []mergeRule    // rank order == learn order
	ranks     map[pair]int   // pair -> index into merges
	special   map[string]int // literal -> token ID
	specialID map[int]string // token ID -> literal
	seg       *Segmenter
	policy    DecodePolicy

	// vocabSize is the next merge ID to assign. It counts the 256 byte
	// tokens plus every ID ever issued, including gaps introduced by
	// caller-assigned special token IDs.
	vocabSize int
}

// New returns a Tokenizer holding only the 256 single-byte tokens,
// with no segmenter and the replace decode policy.
func New() *Tokenizer {
	t := &Tokenizer{
		vocab:     make(map[int][]byte, baseVocabSize*2),
		ranks:     make(map[pair]int),
		special:   make(map[string]int),
		specialID: make(map[int]string),
		vocabSize: baseVocabSize,
	}
	for i := 0; i < baseVocabSize; i++ {
		t.vocab[i] = []byte{byte(i)}
	}
	return t
}

// NewWithPattern returns a Tokenizer that pre-segments text with the
// named split pattern before encoding. See NewSegmenter for the
// recognised pattern names.
func NewWithPattern(pattern string) (*Tokenizer, error) {
	seg, err := NewSegmenter(pattern)
	if err != nil {
		return nil, err
	}
	t := New()
	t.seg = seg
	return t, nil
}

// SetDecodePolicy selects the UTF-8 policy used by Decode.
func (t *Tokenizer) SetDecodePolicy(p DecodePolicy) {
	t.policy = p
}

// Pattern returns the name of the active split pattern, or "" if the
// tokenizer encodes without pre-segmentation.
func (t *Tokenizer) Pattern() string {
	if t.seg == nil {
		return ""
	}
	return t.seg.Name()
}

// VocabSize returns the vocabulary size counter: 256 byte tokens plus
// every learned merge, extended past any caller-assigned special ID.
func (t *Tokenizer) VocabSize() int {
	return t.vocabSize
}

// MergeCount returns the number of learned merge rules.
func (t *Tokenizer) MergeCount() int {
	return len(t.merges)
}

// TokenBytes returns the byte value backing a token ID.
func (t *Tokenizer) TokenBytes(id int) ([]byte, bool) {
	b, ok := t.vocab[id]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, true
}

// TokenString renders a token's bytes for display: printable ASCII is
// shown as-is, common control characters are escaped, and everything
// else appears as \xNN hex escapes.
func (t *Tokenizer) TokenString(id int) string {
	if lit, ok := t.specialID[id]; ok {
		return lit
	}
	b, ok := t.vocab[id]
	if !ok {
		return fmt.Sprintf("<unknown:%d>", id)
	}
	return printableBytes(b)
}

// IDs returns every issued token ID in ascending order.
func (t *Tokenizer) IDs() []int {
	ids := make([]int, 0, len(t.vocab))
	for id := range t.vocab {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func printableBytes(b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		switch {
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\t':
			out = append(out, '\\', 't')
		case c == '\r':
			out = append(out, '\\', 'r')
		case c >= 32 && c < 127:
			out = append(out, c)
		default:
			out = append(out, []byte(fmt.Sprintf(`\x%02x`, c))...)
		}
	}
	return string(out)
}
