// Package eval scores converted lines against a reference transcript.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ieee0824/pinyin-go/internal/textenc"
)

// Report holds accuracy figures. The zero value means "no reference".
type Report struct {
	Lines            int     // prediction lines that were scored
	Chars            int     // characters in the scored predictions
	CharAccuracy     float64 // matching positions / Chars
	SentenceAccuracy float64 // exact matches / Lines
	CharErrorRate    float64 // edit distance / reference characters
}

// Evaluate compares predictions with reference lines. Blank reference lines
// are dropped; predictions and references are paired in order up to the
// shorter of the two. Blank predictions are skipped but still consume their
// reference line.
func Evaluate(predictions []string, reference io.Reader) (Report, error) {
	b, err := io.ReadAll(reference)
	if err != nil {
		return Report{}, err
	}
	doc, err := textenc.Decode(b)
	if err != nil {
		return Report{}, err
	}

	var refs []string
	scanner := bufio.NewScanner(strings.NewReader(doc.Text))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			refs = append(refs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Report{}, err
	}

	var (
		r                   Report
		correctChars        int
		correctLines        int
		distance, refLength int
	)
	for i := 0; i < len(predictions) && i < len(refs); i++ {
		pred := strings.TrimSpace(predictions[i])
		if pred == "" {
			continue
		}
		p, ref := []rune(pred), []rune(refs[i])
		r.Lines++
		r.Chars += len(p)
		for k := 0; k < len(p) && k < len(ref); k++ {
			if p[k] == ref[k] {
				correctChars++
			}
		}
		if pred == refs[i] {
			correctLines++
		}
		distance += EditDistance(pred, refs[i])
		refLength += len(ref)
	}

	if r.Chars > 0 {
		r.CharAccuracy = float64(correctChars) / float64(r.Chars)
	}
	if r.Lines > 0 {
		r.SentenceAccuracy = float64(correctLines) / float64(r.Lines)
	}
	if refLength > 0 {
		r.CharErrorRate = float64(distance) / float64(refLength)
	}
	return r, nil
}

// EvaluateFile scores predictions against the reference at path. Any error
// is logged and yields a zero Report.
func EvaluateFile(predictions []string, path string) Report {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("cannot calculate accuracy", "error", err)
		return Report{}
	}
	defer f.Close()

	r, err := Evaluate(predictions, f)
	if err != nil {
		slog.Error("cannot calculate accuracy", "path", path, "error", err)
		return Report{}
	}
	return r
}

// Render writes the report as a table.
func (r Report) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"METRIC", "VALUE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk([][]string{
		{"Lines", fmt.Sprintf("%d", r.Lines)},
		{"Characters", fmt.Sprintf("%d", r.Chars)},
		{"Character Accuracy", percent(r.CharAccuracy)},
		{"Sentence Accuracy", percent(r.SentenceAccuracy)},
		{"Character Error Rate", percent(r.CharErrorRate)},
	})
	table.Render()
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
