package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	pinyin "github.com/ieee0824/pinyin-go"
	"github.com/ieee0824/pinyin-go/decoder"
	"github.com/ieee0824/pinyin-go/envconfig"
	"github.com/ieee0824/pinyin-go/eval"
	"github.com/ieee0824/pinyin-go/internal/logutil"
)

func main() {
	if err := NewCLI().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pinyin",
		Short: "Convert pinyin read from stdin to Chinese characters",
		Long: `Convert pinyin read from stdin to Chinese characters.

Each input line holds whitespace-separated syllables such as "qing1 hua2".
One line of characters is printed per input line; the line is empty when a
syllable is not in the lexicon. Counts are loaded from the cache when
present, otherwise the corpus is counted and the cache written.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if envconfig.Debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), level))
		},
		RunE: convertHandler,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("lexicon", envconfig.LexiconPath(), "Syllable-to-character table")
	flags.String("chars", envconfig.CharsPath(), "Known character list")
	flags.String("corpus", envconfig.CorpusDir(), "Corpus directory")
	flags.String("cache", envconfig.CacheDir(), "Count cache directory")
	flags.Bool("no-cache", false, "Neither read nor write the count cache")
	flags.Int("workers", envconfig.Workers, "Corpus documents counted concurrently")

	rootCmd.Flags().Float64P("alpha", "a", decoder.DefaultConfig().Alpha, "Unigram interpolation weight for the bigram model, in [0,1]")
	rootCmd.Flags().Float64("epsilon", decoder.DefaultConfig().Epsilon, "Probability floor applied before taking logs")
	rootCmd.Flags().String("answer", envconfig.AnswerPath(), "Reference transcript used to report accuracy")
	rootCmd.Flags().Bool("refresh", false, "Recount the corpus even if a cache exists")

	rootCmd.AddCommand(newTrainCmd(), newTuneCmd())
	return rootCmd
}

func paths(cmd *cobra.Command) pinyin.Paths {
	flags := cmd.Flags()
	p := pinyin.Paths{}
	p.Lexicon, _ = flags.GetString("lexicon")
	p.Chars, _ = flags.GetString("chars")
	p.Corpus, _ = flags.GetString("corpus")
	p.Cache, _ = flags.GetString("cache")
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		p.Cache = ""
	}
	return p
}

func engineOptions(cmd *cobra.Command) []pinyin.Option {
	workers, _ := cmd.Flags().GetInt("workers")
	return []pinyin.Option{pinyin.WithWorkers(workers)}
}

func convertHandler(cmd *cobra.Command, args []string) error {
	alpha, _ := cmd.Flags().GetFloat64("alpha")
	epsilon, _ := cmd.Flags().GetFloat64("epsilon")
	answer, _ := cmd.Flags().GetString("answer")
	refresh, _ := cmd.Flags().GetBool("refresh")

	opts := append(engineOptions(cmd), pinyin.WithDecoderConfig(decoder.Config{Alpha: alpha, Epsilon: epsilon}))
	if refresh {
		opts = append(opts, pinyin.WithRefresh())
	}
	e, err := pinyin.NewEngine(cmd.Context(), paths(cmd), opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	outputs, err := convertLines(e, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logutil.Since(start, "processed input", "lines", len(outputs))

	if answer != "" {
		eval.EvaluateFile(outputs, answer).Render(cmd.ErrOrStderr())
	}
	return nil
}

// convertLines converts every line of r and writes one line per input to w.
func convertLines(e *pinyin.Engine, r io.Reader, w io.Writer) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	writer := bufio.NewWriter(w)
	defer writer.Flush()

	var outputs []string
	for scanner.Scan() {
		result, err := e.Convert(scanner.Text())
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(writer, result.Text)
		outputs = append(outputs, result.Text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return outputs, nil
}

func newTrainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Recount the corpus and rewrite the count cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := paths(cmd)
			if p.Cache == "" {
				return fmt.Errorf("train needs a cache directory")
			}
			start := time.Now()
			e, err := pinyin.NewEngine(cmd.Context(), p, append(engineOptions(cmd), pinyin.WithRefresh())...)
			if err != nil {
				return err
			}
			logutil.Since(start, "trained", "syllables", e.Model.Lexicon().Len(), "bigrams", e.Model.NumBigrams())
			return nil
		},
	}
}
