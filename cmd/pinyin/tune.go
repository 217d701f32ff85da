package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	pinyin "github.com/ieee0824/pinyin-go"
	"github.com/ieee0824/pinyin-go/decoder"
	"github.com/ieee0824/pinyin-go/eval"
	"github.com/ieee0824/pinyin-go/language"
)

type tuneResult struct {
	alpha  float64
	report eval.Report
}

func newTuneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Grid search the interpolation weight against a reference transcript",
		Args:  cobra.NoArgs,
		RunE:  tuneHandler,
	}
	cmd.Flags().String("alphas", "1e-7,0.001,0.01,0.1,0.3,0.5,0.9,1", "Comma-separated interpolation weights")
	cmd.Flags().Float64("epsilon", decoder.DefaultConfig().Epsilon, "Probability floor applied before taking logs")
	cmd.Flags().String("input", "", "Pinyin input, one sentence per line (required)")
	cmd.Flags().String("answer", "", "Reference transcript, one sentence per line (required)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("answer")
	return cmd
}

func tuneHandler(cmd *cobra.Command, args []string) error {
	alphasStr, _ := cmd.Flags().GetString("alphas")
	epsilon, _ := cmd.Flags().GetFloat64("epsilon")
	inputPath, _ := cmd.Flags().GetString("input")
	answerPath, _ := cmd.Flags().GetString("answer")

	alphas, err := parseFloats(alphasStr)
	if err != nil {
		return err
	}
	if len(alphas) == 0 {
		return fmt.Errorf("no alphas given")
	}

	lines, err := readLines(inputPath)
	if err != nil {
		return err
	}
	reference, err := os.ReadFile(answerPath)
	if err != nil {
		return err
	}

	e, err := pinyin.NewEngine(cmd.Context(), paths(cmd), engineOptions(cmd)...)
	if err != nil {
		return err
	}

	slog.Info("tuning", "alphas", len(alphas), "lines", len(lines))
	results, err := tune(e.Model, alphas, epsilon, lines, reference)
	if err != nil {
		return err
	}
	renderTuneResults(cmd.OutOrStdout(), results)
	return nil
}

// tune evaluates every alpha concurrently over the shared model and returns
// the results best first.
func tune(m *language.Model, alphas []float64, epsilon float64, lines []string, reference []byte) ([]tuneResult, error) {
	results := make([]tuneResult, len(alphas))
	var g errgroup.Group
	for i, alpha := range alphas {
		g.Go(func() error {
			e, err := pinyin.NewEngineFromModel(m, pinyin.WithDecoderConfig(decoder.Config{Alpha: alpha, Epsilon: epsilon}))
			if err != nil {
				return err
			}
			outputs := make([]string, len(lines))
			for j, line := range lines {
				r, err := e.Convert(line)
				if err != nil {
					return err
				}
				outputs[j] = r.Text
			}
			report, err := eval.Evaluate(outputs, bytes.NewReader(reference))
			if err != nil {
				return err
			}
			results[i] = tuneResult{alpha: alpha, report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sort by sentence accuracy, then character accuracy, then alpha.
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := results[i].report, results[j].report
		if ri.SentenceAccuracy != rj.SentenceAccuracy {
			return ri.SentenceAccuracy > rj.SentenceAccuracy
		}
		if ri.CharAccuracy != rj.CharAccuracy {
			return ri.CharAccuracy > rj.CharAccuracy
		}
		return results[i].alpha < results[j].alpha
	})
	return results, nil
}

func renderTuneResults(w io.Writer, results []tuneResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ALPHA", "CHAR ACC", "SENTENCE ACC", "CER", "LINES"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, r := range results {
		table.Append([]string{
			strconv.FormatFloat(r.alpha, 'g', -1, 64),
			fmt.Sprintf("%.2f%%", r.report.CharAccuracy*100),
			fmt.Sprintf("%.2f%%", r.report.SentenceAccuracy*100),
			fmt.Sprintf("%.2f%%", r.report.CharErrorRate*100),
			strconv.Itoa(r.report.Lines),
		})
	}
	table.Render()
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func parseFloats(s string) ([]float64, error) {
	var vals []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", part, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
