package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var (
		modelPath string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "decode <id>...",
		Short: "Decode token IDs back to text",
		Long: `Convert a sequence of token IDs back to text.

By default invalid byte sequences are rendered with the Unicode
replacement character; --strict makes them an error instead.

Examples:
  subtok decode 256 257 100 --model tok.json
  subtok decode "256,257,100" --model tok.json --strict`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			tok, err := loadTokenizer(resolveModelPath(modelPath), strict)
			if err != nil {
				return err
			}

			text, err := tok.Decode(ids)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model path (default from config or SUBTOK_MODEL)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on invalid UTF-8 instead of substituting U+FFFD")

	return cmd
}
