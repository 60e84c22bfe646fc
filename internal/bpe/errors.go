package bpe

import "errors"

// Sentinel errors returned by the engine. Callers match them with
// errors.Is; the wrapped message carries the specifics.
var (
	// ErrInvalidInput marks a caller error: a negative or already-used
	// special token ID, an empty special literal, or an allow-set entry
	// that names an unregistered literal.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownToken marks a decode of a token ID this tokenizer never
	// issued: not a byte, not a learned merge, not a special token.
	ErrUnknownToken = errors.New("unknown token id")

	// ErrCorruptState marks a persisted model that fails structural
	// validation: truncated data, missing fields, or merge rules whose
	// IDs are inconsistent with their rank order.
	ErrCorruptState = errors.New("corrupt model state")

	// ErrInvalidUTF8 marks a decode whose byte buffer is not valid
	// UTF-8 under StrictPolicy. ReplacePolicy never returns it.
	ErrInvalidUTF8 = errors.New("invalid utf-8 sequence")
)
