package bpe

// Train learns merge rules from text until the vocabulary size counter
// reaches targetVocabSize, or no adjacent pair remains. Targets below
// 256 are clamped to 256. It returns the number of merges added.
//
// Training is deterministic: the most frequent pair wins each round,
// and equal counts break ties toward the lowest (left, right) pair.
// Training an already-trained tokenizer extends it monotonically; it
// never rewrites earlier merges.
func (t *Tokenizer) Train(text string, targetVocabSize int) int {
	return t.TrainWithProgress(text, targetVocabSize, nil)
}

// TrainWithProgress is Train with a per-merge callback, called after
// each learned rule with the number of merges done so far this call
// and the total number planned. progress may be nil.
func (t *Tokenizer) TrainWithProgress(text string, targetVocabSize int, progress func(done, total int)) int {
	if targetVocabSize < baseVocabSize {
		targetVocabSize = baseVocabSize
	}

	// A fresh tokenizer trains on raw bytes. Continued training starts
	// from the existing merge table so earlier rules are built upon
	// rather than re-learned under new IDs.
	var seq []int
	if len(t.merges) == 0 {
		seq = byteIDs(text)
	} else {
		seq = t.encodeChunk(text, nil)
	}
	planned := targetVocabSize - t.vocabSize
	added := 0

	for t.vocabSize < targetVocabSize {
		best, count := t.mostFrequentPair(seq)
		if count == 0 {
			break // sequence exhausted, nothing left to merge
		}

		id := t.vocabSize
		t.vocab[id] = concat(t.vocab[best.left], t.vocab[best.right])
		t.ranks[best] = len(t.merges)
		t.merges = append(t.merges, mergeRule{best.left, best.right, id})
		t.vocabSize = id + 1

		seq = mergePair(seq, best, id)
		added++

		if progress != nil {
			progress(added, planned)
		}
	}

	return added
}

// mostFrequentPair scans seq once, counting adjacent pairs, and returns
// the winner with its count. A zero count means no pair exists.
func (t *Tokenizer) mostFrequentPair(seq []int) (pair, int) {
	counts := make(map[pair]int)
	for i := 0; i+1 < len(seq); i++ {
		counts[pair{seq[i], seq[i+1]}]++
	}

	var best pair
	bestCount := 0
	for p, c := range counts {
		if c > bestCount || (c == bestCount && p.less(best)) {
			best = p
			bestCount = c
		}
	}
	return best, bestCount
}

// mergePair replaces every non-overlapping left-to-right occurrence of
// p in seq with id. A match consumes both elements, so a token cannot
// take part in two merges within the same pass.
func mergePair(seq []int, p pair, id int) []int {
	found := false
	for i := 0; i+1 < len(seq); i++ {
		if seq[i] == p.left && seq[i+1] == p.right {
			found = true
			break
		}
	}
	if !found {
		return seq
	}

	out := seq[:0:0]
	i := 0
	for i < len(seq) {
		if i+1 < len(seq) && seq[i] == p.left && seq[i+1] == p.right {
			out = append(out, id)
			i += 2
		} else {
			out = append(out, seq[i])
			i++
		}
	}
	return out
}

// byteIDs converts text to one token ID per raw byte.
func byteIDs(text string) []int {
	raw := []byte(text)
	seq := make([]int, len(raw))
	for i, b := range raw {
		seq[i] = int(b)
	}
	return seq
}

func concat(a, b []byte) []byte {
	c := make([]byte, 0, len(a)+len(b))
	c = append(c, a...)
	return append(c, b...)
}
