package bpe

// Encode converts text to token IDs, ignoring special tokens. When a
// segmenter is attached the text is split into chunks first and merges
// never cross a chunk boundary. Empty text encodes to an empty slice.
func (t *Tokenizer) Encode(text string) []int {
	if text == "" {
		return []int{}
	}

	if t.seg == nil {
		return t.encodeChunk(text, nil)
	}

	var ids []int
	for _, chunk := range t.seg.Split(text) {
		ids = t.encodeChunk(chunk, ids)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids
}

// encodeChunk appends the token IDs for one chunk to ids. It starts
// from raw byte tokens and repeatedly applies the applicable merge
// with the lowest rank, reproducing the training merge history. Each
// application shortens the sequence, so the loop terminates.
func (t *Tokenizer) encodeChunk(chunk string, ids []int) []int {
	seq := byteIDs(chunk)

	for len(seq) >= 2 {
		bestRank := -1
		var bestPair pair
		for i := 0; i+1 < len(seq); i++ {
			p := pair{seq[i], seq[i+1]}
			if r, ok := t.ranks[p]; ok && (bestRank < 0 || r < bestRank) {
				bestRank = r
				bestPair = p
			}
		}
		if bestRank < 0 {
			break // no pair in the merge table
		}
		seq = mergePair(seq, bestPair, t.merges[bestRank].result)
	}

	return append(ids, seq...)
}
