package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var (
		modelPath string
		special   string
		breakdown bool
	)

	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text to token IDs",
		Long: `Convert text to a sequence of token IDs using a trained model.
Text is taken from the arguments, or from stdin when none are given.

Examples:
  subtok encode "hello world" --model tok.json
  echo "hello" | subtok encode --model tok.json
  subtok encode "a<|endoftext|>b" --special all --model tok.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := loadTokenizer(resolveModelPath(modelPath), false)
			if err != nil {
				return err
			}

			text, err := readText(args)
			if err != nil {
				return err
			}

			ids, err := tok.EncodeWithSpecial(text, parseAllowedSpecial(special))
			if err != nil {
				return err
			}

			out := make([]string, len(ids))
			for i, id := range ids {
				out[i] = fmt.Sprint(id)
			}
			fmt.Println(strings.Join(out, " "))

			if breakdown {
				for _, id := range ids {
					fmt.Printf("  %6d  %s\n", id, tok.TokenString(id))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model path (default from config or SUBTOK_MODEL)")
	cmd.Flags().StringVarP(&special, "special", "s", "none", "special tokens to recognise: none, all, or a comma-separated literal list")
	cmd.Flags().BoolVarP(&breakdown, "breakdown", "b", false, "print a per-token breakdown after the IDs")

	return cmd
}
