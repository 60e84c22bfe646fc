package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/subtok/subtok/internal/bpe"
	"github.com/subtok/subtok/internal/config"
)

// resolveModelPath returns the model path to use: the flag value if
// set, otherwise the configured default (which honours SUBTOK_MODEL).
func resolveModelPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	cfg, _ := config.Load()
	return cfg.ModelPath
}

// loadTokenizer opens a trained model, applying the decode policy
// from config unless strict is forced.
func loadTokenizer(path string, strict bool) (*bpe.Tokenizer, error) {
	tok, err := bpe.Load(path)
	if err != nil {
		return nil, err
	}

	cfg, _ := config.Load()
	if strict || cfg.DecodePolicy == "strict" {
		tok.SetDecodePolicy(bpe.StrictPolicy)
	}
	return tok, nil
}

// readText joins positional args into the input text, or reads stdin
// when no args were given.
func readText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// parseAllowedSpecial translates the --special flag value into an
// allow-set for EncodeWithSpecial: "none"/"" means no special tokens,
// "all" means every registered one, anything else is a comma-separated
// literal list.
func parseAllowedSpecial(value string) []string {
	switch value {
	case "", "none":
		return nil
	case "all":
		return []string{bpe.All}
	default:
		return strings.Split(value, ",")
	}
}

// parseSpecialBindings parses repeated "LITERAL=ID" flag values.
func parseSpecialBindings(values []string) (map[string]int, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]int, len(values))
	for _, v := range values {
		lit, idStr, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("special binding %q: want LITERAL=ID", v)
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("special binding %q: bad id: %w", v, err)
		}
		out[lit] = id
	}
	return out, nil
}

// parseIDs parses token IDs from args, accepting space- and
// comma-separated values.
func parseIDs(args []string) ([]int, error) {
	var ids []int
	for _, arg := range args {
		for _, field := range strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' '
		}) {
			id, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("token id %q: %w", field, err)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
