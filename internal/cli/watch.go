package cli

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/subtok/subtok/internal/bpe"
	"github.com/subtok/subtok/internal/config"
	"github.com/subtok/subtok/internal/corpus"
)

func newWatchCmd() *cobra.Command {
	var (
		corpusPath string
		vocabSize  int
		modelPath  string
		pattern    string
		debounceMs int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a corpus and retrain the model on changes",
		Long: `Start a long-running watcher that monitors the corpus (a file or a
directory) and retrains the model from scratch whenever it changes.

Changes are debounced so that rapid edits are batched into a single
training pass. Press Ctrl-C to stop.`,
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

			info, err := os.Stat(corpusPath)
			if err != nil {
				return fmt.Errorf("stat corpus: %w", err)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// For a single file, watch its directory: editors often
			// replace files via rename, which drops a direct watch.
			root := corpusPath
			if !info.IsDir() {
				root = filepath.Dir(corpusPath)
				if err := watcher.Add(root); err != nil {
					return fmt.Errorf("watch %s: %w", root, err)
				}
			} else {
				ignore := corpus.NewIgnoreMatcher(root)
				if err := addWatchDirs(watcher, root, ignore); err != nil {
					return fmt.Errorf("add watch directories: %w", err)
				}
			}

			debounce := time.Duration(debounceMs) * time.Millisecond
			fmt.Printf("Watching %s (debounce %s). Press Ctrl-C to stop.\n", corpusPath, debounce)

			// Train once up front so the model exists immediately.
			if err := retrain(corpusPath, vocabSize, pattern, modelPath); err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			timer := time.NewTimer(debounce)
			timer.Stop() // Don't fire immediately.
			dirty := false

			for {
				select {
				case <-sigCh:
					fmt.Println("\nStopping watcher.")
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !relevantEvent(event, corpusPath, info.IsDir()) {
						continue
					}
					// Watch newly created directories.
					if info.IsDir() && event.Has(fsnotify.Create) {
						if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
							if !corpus.HardIgnore(filepath.Base(event.Name)) {
								_ = watcher.Add(event.Name)
							}
							continue
						}
					}
					dirty = true
					timer.Reset(debounce)

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(os.Stderr, "  watch error: %v\n", err)

				case <-timer.C:
					if !dirty {
						continue
					}
					dirty = false
					if err := retrain(corpusPath, vocabSize, pattern, modelPath); err != nil {
						fmt.Fprintf(os.Stderr, "  retrain failed: %v\n", err)
					}
				}
			}
		},
	}

	cmd.Flags().StringVarP(&corpusPath, "corpus", "c", "", "corpus file or directory to watch (required)")
	cmd.Flags().IntVar(&vocabSize, "vocab-size", 0, "target vocabulary size (default from config)")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "output model path (default from config)")
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "split pattern: simple, gpt2, none (default from config)")
	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "debounce interval in milliseconds")
	_ = cmd.MarkFlagRequired("corpus")

	return cmd
}

// retrain trains a fresh model on the corpus and writes it out.
func retrain(corpusPath string, vocabSize int, pattern, modelPath string) error {
	res, err := corpus.Load(corpusPath)
	if err != nil {
		return err
	}

	tok, err := bpe.NewWithPattern(pattern)
	if err != nil {
		return err
	}

	start := time.Now()
	added := tok.Train(res.Text, vocabSize)
	if err := tok.Save(modelPath); err != nil {
		return err
	}

	ts := time.Now().Format("15:04:05")
	fmt.Printf("[%s] trained %d merge(s) from %d file(s) in %s -> %s\n",
		ts, added, res.Files, time.Since(start).Round(time.Millisecond), modelPath)
	return nil
}

// relevantEvent filters watcher noise: for a single-file corpus only
// events on that file matter; for a directory, skip files the corpus
// loader would never read anyway.
func relevantEvent(event fsnotify.Event, corpusPath string, isDir bool) bool {
	if !isDir {
		return event.Name == corpusPath
	}
	if corpus.SkipFile(filepath.Base(event.Name)) {
		return false
	}
	for _, part := range strings.Split(event.Name, string(filepath.Separator)) {
		if corpus.HardIgnore(part) {
			return false
		}
	}
	return true
}

// addWatchDirs recursively adds directories to the watcher, skipping
// ignored ones.
func addWatchDirs(watcher *fsnotify.Watcher, root string, ignore *corpus.IgnoreMatcher) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if corpus.HardIgnore(d.Name()) {
			return filepath.SkipDir
		}
		rel, _ := filepath.Rel(root, path)
		if rel != "." && ignore.Match(rel) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
