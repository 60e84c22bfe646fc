package bpe

import (
	"fmt"
	"sort"
	"strings"
)

// All is the sentinel allow-set entry meaning "every registered
// special token". Mirrors the allowedSpecial convention of tiktoken.
const All = "all"

// AddSpecialTokens registers caller-assigned special tokens: each
// literal string is bound to the given token ID, bypassing byte-level
// merging. IDs must be non-negative and must not collide with any ID
// already issued (bytes, merges, or earlier specials). The whole map
// is validated before anything is registered, so a failed call leaves
// the tokenizer unchanged.
func (t *Tokenizer) AddSpecialTokens(tokens map[string]int) error {
	lits := make([]string, 0, len(tokens))
	for lit := range tokens {
		lits = append(lits, lit)
	}
	sort.Strings(lits)

	seen := make(map[int]string, len(tokens))
	for _, lit := range lits {
		id := tokens[lit]
		switch {
		case lit == "":
			return fmt.Errorf("bpe: empty special token literal: %w", ErrInvalidInput)
		case id < 0:
			return fmt.Errorf("bpe: special token %q: negative id %d: %w", lit, id, ErrInvalidInput)
		}
		if _, exists := t.vocab[id]; exists {
			return fmt.Errorf("bpe: special token %q: id %d already in vocabulary: %w", lit, id, ErrInvalidInput)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("bpe: special tokens %q and %q share id %d: %w", prev, lit, id, ErrInvalidInput)
		}
		if _, dup := t.special[lit]; dup {
			return fmt.Errorf("bpe: special token %q already registered: %w", lit, ErrInvalidInput)
		}
		seen[id] = lit
	}

	for _, lit := range lits {
		id := tokens[lit]
		t.vocab[id] = []byte(lit)
		t.special[lit] = id
		t.specialID[id] = lit
		if id+1 > t.vocabSize {
			t.vocabSize = id + 1
		}
	}
	return nil
}

// SpecialTokens returns the registered literal -> ID bindings.
func (t *Tokenizer) SpecialTokens() map[string]int {
	out := make(map[string]int, len(t.special))
	for lit, id := range t.special {
		out[lit] = id
	}
	return out
}

// EncodeWithSpecial encodes text, emitting special token IDs for any
// allowed literal found in it. allowed lists literals to recognise;
// the single entry All enables every registered special token, and an
// empty or nil allow-set behaves exactly like Encode. When several
// allowed literals match at the same position the longest one wins.
func (t *Tokenizer) EncodeWithSpecial(text string, allowed []string) ([]int, error) {
	lits, err := t.resolveAllowed(allowed)
	if err != nil {
		return nil, err
	}
	if len(lits) == 0 {
		return t.Encode(text), nil
	}

	// Longest-first so that when one allowed literal is a prefix of
	// another, the longer match takes priority.
	sort.Slice(lits, func(i, j int) bool { return len(lits[i]) > len(lits[j]) })

	ids := []int{}
	rest := text
	for len(rest) > 0 {
		if lit, ok := matchSpecial(rest, lits); ok {
			ids = append(ids, t.special[lit])
			rest = rest[len(lit):]
			continue
		}

		// Extend an ordinary chunk up to the next special match.
		next := len(rest)
		for _, lit := range lits {
			if idx := strings.Index(rest, lit); idx >= 0 && idx < next {
				next = idx
			}
		}
		ids = append(ids, t.Encode(rest[:next])...)
		rest = rest[next:]
	}
	return ids, nil
}

// resolveAllowed expands the All sentinel and verifies every entry is
// a registered literal.
func (t *Tokenizer) resolveAllowed(allowed []string) ([]string, error) {
	if len(allowed) == 1 && allowed[0] == All {
		lits := make([]string, 0, len(t.special))
		for lit := range t.special {
			lits = append(lits, lit)
		}
		return lits, nil
	}

	lits := make([]string, 0, len(allowed))
	for _, lit := range allowed {
		if _, ok := t.special[lit]; !ok {
			return nil, fmt.Errorf("bpe: allowed special %q is not registered: %w", lit, ErrInvalidInput)
		}
		lits = append(lits, lit)
	}
	return lits, nil
}

// matchSpecial returns the first (longest, given the sort order)
// literal that prefixes s.
func matchSpecial(s string, lits []string) (string, bool) {
	for _, lit := range lits {
		if strings.HasPrefix(s, lit) {
			return lit, true
		}
	}
	return "", false
}
