package bpe

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// modelVersion is the current model file format version.
const modelVersion = 1

// modelFile is the persisted snapshot of a trained tokenizer. The
// merges array is ordered by rank, and that order is load-bearing:
// it is what lets a loaded tokenizer replay encoding identically.
type modelFile struct {
	Version       int            `json:"version"`
	VocabSize     int            `json:"vocab_size"`
	Pattern       string         `json:"pattern,omitempty"`
	Merges        [][3]int       `json:"merges"`
	SpecialTokens map[string]int `json:"special_tokens,omitempty"`
}

// Save writes the tokenizer's merge table, vocabulary size, split
// pattern, and special token bindings to path as JSON.
func (t *Tokenizer) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bpe: create model file: %w", err)
	}
	if err := t.SaveTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveTo writes the model snapshot to w.
func (t *Tokenizer) SaveTo(w io.Writer) error {
	m := modelFile{
		Version:   modelVersion,
		VocabSize: t.vocabSize,
		Pattern:   t.Pattern(),
		Merges:    make([][3]int, len(t.merges)),
	}
	for i, r := range t.merges {
		m.Merges[i] = [3]int{r.left, r.right, r.result}
	}
	if len(t.special) > 0 {
		m.SpecialTokens = t.SpecialTokens()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("bpe: write model: %w", err)
	}
	return nil
}

// Load reads a model snapshot from path and returns a tokenizer that
// encodes and decodes identically to the one that saved it.
func Load(path string) (*Tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bpe: open model file: %w", err)
	}
	defer f.Close()
	return LoadFrom(f)
}

// LoadFrom reads a model snapshot from r. Structural problems —
// truncated data, an unknown version, merge rules whose operand or
// result IDs are inconsistent with their rank order, or a vocab size
// that does not match the rebuilt vocabulary — are reported as
// ErrCorruptState. Nothing is returned in that case: a model either
// loads completely or not at all.
func LoadFrom(r io.Reader) (*Tokenizer, error) {
	var m modelFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("bpe: parse model (%v): %w", err, ErrCorruptState)
	}

	if m.Version != modelVersion {
		return nil, fmt.Errorf("bpe: unsupported model version %d: %w", m.Version, ErrCorruptState)
	}
	if m.VocabSize < baseVocabSize {
		return nil, fmt.Errorf("bpe: model vocab_size %d below %d: %w", m.VocabSize, baseVocabSize, ErrCorruptState)
	}

	t, err := NewWithPattern(m.Pattern)
	if err != nil {
		return nil, fmt.Errorf("bpe: model pattern %q: %w", m.Pattern, ErrCorruptState)
	}

	// Replay merges in rank order, rebuilding each token's bytes from
	// its operands. Every operand must already exist and every result
	// must be a fresh ID at or above the running counter.
	for i, rule := range m.Merges {
		left, right, result := rule[0], rule[1], rule[2]
		lv, lok := t.vocab[left]
		rv, rok := t.vocab[right]
		if !lok || !rok {
			return nil, fmt.Errorf("bpe: merge %d references unknown operand (%d, %d): %w", i, left, right, ErrCorruptState)
		}
		if result < t.vocabSize {
			return nil, fmt.Errorf("bpe: merge %d result id %d conflicts with earlier ids: %w", i, result, ErrCorruptState)
		}
		t.vocab[result] = concat(lv, rv)
		t.ranks[pair{left, right}] = len(t.merges)
		t.merges = append(t.merges, mergeRule{left, right, result})
		t.vocabSize = result + 1
	}

	if err := t.AddSpecialTokens(m.SpecialTokens); err != nil {
		return nil, fmt.Errorf("bpe: model special tokens: %v: %w", err, ErrCorruptState)
	}

	if t.vocabSize != m.VocabSize {
		return nil, fmt.Errorf("bpe: model vocab_size %d does not match rebuilt size %d: %w", m.VocabSize, t.vocabSize, ErrCorruptState)
	}

	return t, nil
}
