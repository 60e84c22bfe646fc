// Package reference wraps tiktoken to provide token counts from a
// production encoding, for comparing a freshly trained model against
// an established one.
package reference

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tiktoken encoding used for comparisons.
const DefaultEncoding = "cl100k_base"

// Counter wraps a tiktoken encoding for token counting.
type Counter struct {
	name string
	enc  *tiktoken.Tiktoken
}

// NewCounter creates a Counter using the cl100k_base encoding.
func NewCounter() (*Counter, error) {
	return NewCounterFor(DefaultEncoding)
}

// NewCounterFor creates a Counter using the named tiktoken encoding.
func NewCounterFor(name string) (*Counter, error) {
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("reference: get encoding %s: %w", name, err)
	}
	return &Counter{name: name, enc: enc}, nil
}

// Name returns the encoding name.
func (c *Counter) Name() string {
	return c.name
}

// Count returns the number of tokens in s under the reference encoding.
func (c *Counter) Count(s string) int {
	return len(c.enc.Encode(s, nil, nil))
}
