package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVocabCmd() *cobra.Command {
	var (
		modelPath string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect a trained model's vocabulary",
		Long: `Print tokens from a trained model, one per line, with a printable
rendering of each token's bytes. Control characters are escaped and
non-printable bytes are shown as hex.

Example:
  subtok vocab --model tok.json --limit 300`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := loadTokenizer(resolveModelPath(modelPath), false)
			if err != nil {
				return err
			}

			ids := tok.IDs()
			fmt.Printf("Vocabulary: %d token(s), %d merge(s)\n", len(ids), tok.MergeCount())
			if pat := tok.Pattern(); pat != "" {
				fmt.Printf("Split pattern: %s\n", pat)
			}

			shown := 0
			for _, id := range ids {
				if limit > 0 && shown >= limit {
					fmt.Printf("... and %d more token(s)\n", len(ids)-shown)
					break
				}
				fmt.Printf("  %6d  %s\n", id, tok.TokenString(id))
				shown++
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model path (default from config or SUBTOK_MODEL)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum tokens to print (0 = all)")

	return cmd
}
