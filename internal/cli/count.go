package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subtok/subtok/internal/reference"
)

func newCountCmd() *cobra.Command {
	var (
		modelPath string
		useRef    bool
	)

	cmd := &cobra.Command{
		Use:   "count [text]",
		Short: "Count tokens in text",
		Long: `Count how many tokens text encodes to with a trained model.
With --reference, also count under tiktoken's cl100k_base encoding
for comparison with a production tokenizer.

Examples:
  subtok count "some text" --model tok.json
  cat essay.md | subtok count --model tok.json --reference`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args)
			if err != nil {
				return err
			}

			tok, err := loadTokenizer(resolveModelPath(modelPath), false)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %d token(s)\n", "model:", len(tok.Encode(text)))

			if useRef {
				counter, err := reference.NewCounter()
				if err != nil {
					return err
				}
				fmt.Printf("%-12s %d token(s)\n", counter.Name()+":", counter.Count(text))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model path (default from config or SUBTOK_MODEL)")
	cmd.Flags().BoolVarP(&useRef, "reference", "r", false, "also count with the cl100k_base reference encoding")

	return cmd
}
