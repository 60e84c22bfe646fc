package bpe

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Decode converts token IDs back to text by concatenating each token's
// byte value (special tokens contribute their literal). An ID this
// tokenizer never issued yields ErrUnknownToken. The assembled bytes
// are interpreted per the decode policy: ReplacePolicy substitutes
// U+FFFD for invalid UTF-8 runs, StrictPolicy returns ErrInvalidUTF8.
//
// For any sequence produced by Encode or EncodeWithSpecial on valid
// text, Decode returns the original text exactly.
func (t *Tokenizer) Decode(ids []int) (string, error) {
	var buf bytes.Buffer
	for _, id := range ids {
		b, ok := t.vocab[id]
		if !ok {
			return "", fmt.Errorf("bpe: decode id %d: %w", id, ErrUnknownToken)
		}
		buf.Write(b)
	}

	raw := buf.String()
	if utf8.ValidString(raw) {
		return raw, nil
	}
	if t.policy == StrictPolicy {
		return "", fmt.Errorf("bpe: decode produced invalid bytes: %w", ErrInvalidUTF8)
	}
	return strings.ToValidUTF8(raw, "�"), nil
}
