package bpe

import (
	"bytes"
	"testing"
)

func TestTrainLearnsMostFrequentPairFirst(t *testing.T) {
	tok := New()
	added := tok.Train("aaabdaaabac", 258)

	if added != 2 {
		t.Fatalf("merges added: got %d, want 2", added)
	}
	// "aa" occurs four times, more than any other pair, so the first
	// learned token must be byte 'a' twice.
	b, ok := tok.TokenBytes(256)
	if !ok {
		t.Fatal("token 256 missing after training")
	}
	if string(b) != "aa" {
		t.Errorf("token 256: got %q, want %q", b, "aa")
	}
	if tok.VocabSize() != 258 {
		t.Errorf("vocab size: got %d, want 258", tok.VocabSize())
	}
}

func TestTrainTieBreaksByLowestPair(t *testing.T) {
	tok := New()
	tok.Train("aaabdaaabac", 258)

	// After merging "aa", pairs (256,'a') and ('a','b') both occur
	// twice; the lower-valued pair ('a','b') must win the tie.
	b, ok := tok.TokenBytes(257)
	if !ok {
		t.Fatal("token 257 missing after training")
	}
	if string(b) != "ab" {
		t.Errorf("token 257: got %q, want %q", b, "ab")
	}
}

func TestTrainDeterminism(t *testing.T) {
	const text = "the quick brown fox jumps over the lazy dog. the dog did not care."

	var snaps [2]bytes.Buffer
	for i := range snaps {
		tok := New()
		tok.Train(text, 300)
		if err := tok.SaveTo(&snaps[i]); err != nil {
			t.Fatalf("SaveTo: %v", err)
		}
	}

	if snaps[0].String() != snaps[1].String() {
		t.Error("two training runs on identical input produced different models")
	}
}

func TestTrainStopsWhenPairsExhausted(t *testing.T) {
	tok := New()
	added := tok.Train("abc", 1000)

	// "abc" supports at most two merges before collapsing to a single
	// token; training must stop early rather than loop.
	if added != 2 {
		t.Errorf("merges added: got %d, want 2", added)
	}
	if tok.VocabSize() >= 1000 {
		t.Errorf("vocab size: got %d, want far below 1000", tok.VocabSize())
	}
}

func TestTrainVocabGrowthBound(t *testing.T) {
	tok := New()
	tok.Train("some training text with repeated repeated words", 280)
	if got := tok.VocabSize(); got > 280 {
		t.Errorf("vocab size: got %d, want <= 280", got)
	}
}

func TestTrainClampsLowTarget(t *testing.T) {
	tok := New()
	if added := tok.Train("hello", 10); added != 0 {
		t.Errorf("merges added with target below 256: got %d, want 0", added)
	}
	if tok.VocabSize() != 256 {
		t.Errorf("vocab size: got %d, want 256", tok.VocabSize())
	}
}

func TestTrainEmptyText(t *testing.T) {
	tok := New()
	if added := tok.Train("", 300); added != 0 {
		t.Errorf("merges added on empty text: got %d, want 0", added)
	}
}

func TestTrainPreservesByteTokens(t *testing.T) {
	tok := New()
	tok.Train("all work and no play makes jack a dull boy ", 300)

	for i := 0; i < 256; i++ {
		b, ok := tok.TokenBytes(i)
		if !ok {
			t.Fatalf("byte token %d missing after training", i)
		}
		if len(b) != 1 || b[0] != byte(i) {
			t.Fatalf("byte token %d: got %v, want [%d]", i, b, i)
		}
	}
}

func TestTrainContinuesMonotonically(t *testing.T) {
	const text = "aaabdaaabac"

	tok := New()
	tok.Train(text, 258)
	added := tok.Train(text, 259)

	if added != 1 {
		t.Fatalf("second training pass: got %d merges, want 1", added)
	}
	// The continuation must build on the existing table, not re-learn
	// "aa": the next merge combines tokens 256 and 257 into "aab".
	b, ok := tok.TokenBytes(258)
	if !ok {
		t.Fatal("token 258 missing after continued training")
	}
	if string(b) != "aab" {
		t.Errorf("token 258: got %q, want %q", b, "aab")
	}
}

func TestTrainWithProgressReportsEachMerge(t *testing.T) {
	tok := New()
	var calls int
	tok.TrainWithProgress("aaabdaaabac", 258, func(done, total int) {
		calls++
		if total != 2 {
			t.Errorf("progress total: got %d, want 2", total)
		}
		if done != calls {
			t.Errorf("progress done: got %d, want %d", done, calls)
		}
	})
	if calls != 2 {
		t.Errorf("progress calls: got %d, want 2", calls)
	}
}
