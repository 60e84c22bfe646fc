package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/subtok/subtok/internal/bpe"
	"github.com/subtok/subtok/internal/config"
	"github.com/subtok/subtok/internal/corpus"
)

func newTrainCmd() *cobra.Command {
	var (
		corpusPath string
		vocabSize  int
		modelPath  string
		pattern    string
		specials   []string
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a BPE model on a text corpus",
		Long: `Learn a merge vocabulary from a corpus and write the model to disk.

The corpus may be a single text file or a directory; directories are
walked recursively, honouring .gitignore and skipping binary files.

Examples:
  subtok train --corpus shakespeare.txt --vocab-size 1024 --model tok.json
  subtok train --corpus ./docs --pattern gpt2 --model tok.json
  subtok train --corpus data.txt --special "<|endoftext|>=100257" --model tok.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := config.Load()
			if vocabSize == 0 {
				vocabSize = cfg.VocabSize
			}
			if pattern == "" {
				pattern = cfg.Pattern
			}
			if modelPath == "" {
				modelPath = cfg.ModelPath
			}

			bindings, err := parseSpecialBindings(specials)
			if err != nil {
				return err
			}

			res, err := corpus.Load(corpusPath)
			if err != nil {
				return err
			}
			fmt.Printf("Corpus: %d file(s), %d bytes\n", res.Files, len(res.Text))

			tok, err := bpe.NewWithPattern(pattern)
			if err != nil {
				return err
			}

			planned := vocabSize - tok.VocabSize()
			if planned < 0 {
				planned = 0
			}
			bar := progressbar.NewOptions(planned,
				progressbar.OptionSetDescription("  Training"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			start := time.Now()
			added := tok.TrainWithProgress(res.Text, vocabSize, func(done, total int) {
				_ = bar.Set(done)
			})
			_ = bar.Finish()

			if bindings != nil {
				if err := tok.AddSpecialTokens(bindings); err != nil {
					return err
				}
			}

			if err := tok.Save(modelPath); err != nil {
				return err
			}

			fmt.Printf("Learned %d merge(s) in %s (vocab size %d)\n",
				added, time.Since(start).Round(time.Millisecond), tok.VocabSize())
			if len(res.Text) > 0 {
				tokens := len(tok.Encode(res.Text))
				if tokens > 0 {
					fmt.Printf("Compression: %d bytes -> %d tokens (%.2fx)\n",
						len(res.Text), tokens, float64(len(res.Text))/float64(tokens))
				}
			}
			fmt.Printf("Model written to %s\n", modelPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&corpusPath, "corpus", "c", "", "training corpus file or directory (required)")
	cmd.Flags().IntVar(&vocabSize, "vocab-size", 0, "target vocabulary size (default from config)")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "output model path (default from config)")
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "split pattern: simple, gpt2, none (default from config)")
	cmd.Flags().StringArrayVar(&specials, "special", nil, "special token binding LITERAL=ID (repeatable)")
	_ = cmd.MarkFlagRequired("corpus")

	return cmd
}
