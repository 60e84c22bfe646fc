package bpe

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func trainedTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := NewWithPattern(PatternSimple)
	if err != nil {
		t.Fatalf("NewWithPattern: %v", err)
	}
	tok.Train("low lower lowest slow slower slowest", 300)
	if err := tok.AddSpecialTokens(map[string]int{"<|endoftext|>": 1000}); err != nil {
		t.Fatalf("AddSpecialTokens: %v", err)
	}
	return tok
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tok := trainedTokenizer(t)

	path := filepath.Join(t.TempDir(), "model.json")
	if err := tok.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.VocabSize() != tok.VocabSize() {
		t.Errorf("vocab size: got %d, want %d", loaded.VocabSize(), tok.VocabSize())
	}
	if loaded.MergeCount() != tok.MergeCount() {
		t.Errorf("merge count: got %d, want %d", loaded.MergeCount(), tok.MergeCount())
	}
	if loaded.Pattern() != PatternSimple {
		t.Errorf("pattern: got %q, want %q", loaded.Pattern(), PatternSimple)
	}

	for _, text := range []string{"low and slow", "lowest<|endoftext|>slower", "unseen words"} {
		want, err := tok.EncodeWithSpecial(text, []string{All})
		if err != nil {
			t.Fatalf("EncodeWithSpecial: %v", err)
		}
		got, err := loaded.EncodeWithSpecial(text, []string{All})
		if err != nil {
			t.Fatalf("EncodeWithSpecial (loaded): %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("encode %q: got %v, want %v", text, got, want)
		}
	}
}

func TestLoadTruncatedModel(t *testing.T) {
	tok := trainedTokenizer(t)

	var buf bytes.Buffer
	if err := tok.SaveTo(&buf); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	truncated := buf.String()[:buf.Len()/2]
	_, err := LoadFrom(strings.NewReader(truncated))
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("got %v, want ErrCorruptState", err)
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	_, err := LoadFrom(strings.NewReader(`{"version": 99, "vocab_size": 256, "merges": []}`))
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("got %v, want ErrCorruptState", err)
	}
}

func TestLoadRejectsUnknownOperand(t *testing.T) {
	_, err := LoadFrom(strings.NewReader(
		`{"version": 1, "vocab_size": 257, "merges": [[999, 1, 256]]}`))
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("got %v, want ErrCorruptState", err)
	}
}

func TestLoadRejectsReservedResultID(t *testing.T) {
	_, err := LoadFrom(strings.NewReader(
		`{"version": 1, "vocab_size": 257, "merges": [[97, 98, 100]]}`))
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("got %v, want ErrCorruptState", err)
	}
}

func TestLoadRejectsVocabSizeMismatch(t *testing.T) {
	_, err := LoadFrom(strings.NewReader(
		`{"version": 1, "vocab_size": 300, "merges": [[97, 98, 256]]}`))
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("got %v, want ErrCorruptState", err)
	}
}

func TestLoadEmptyModel(t *testing.T) {
	// A freshly created tokenizer saves and loads cleanly: 256 byte
	// tokens, no merges, no specials.
	var buf bytes.Buffer
	if err := New().SaveTo(&buf); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded, err := LoadFrom(&buf)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.VocabSize() != 256 {
		t.Errorf("vocab size: got %d, want 256", loaded.VocabSize())
	}
}
