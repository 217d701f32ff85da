package language

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ieee0824/pinyin-go/internal/logutil"
	"github.com/ieee0824/pinyin-go/internal/textenc"
)

// CorpusStats summarizes a CountCorpus run.
type CorpusStats struct {
	Files   int // documents counted
	Skipped int // documents that could not be decoded
	GBK     int // documents decoded with the fallback encoding
}

// CountCorpus walks dir recursively and counts every regular file as one
// document. Documents are counted concurrently, at most workers at a time,
// each into private counts that are summed at the end, so the result does
// not depend on scheduling. Documents that are neither UTF-8 nor GBK are
// skipped and logged.
func CountCorpus(ctx context.Context, dir string, known func(rune) bool, workers int) (*Counts, CorpusStats, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, CorpusStats{}, fmt.Errorf("walk corpus: %w", err)
	}
	slog.Info("counting corpus", "dir", dir, "files", len(paths), "workers", workers)
	start := time.Now()

	var (
		mu    sync.Mutex
		total = NewCounts()
		stats CorpusStats
	)

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := textenc.ReadFile(path)
			if errors.Is(err, textenc.ErrUndecodable) {
				slog.Warn("skipping undecodable document", "path", path)
				mu.Lock()
				stats.Skipped++
				mu.Unlock()
				return nil
			} else if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			local := NewCounts()
			local.AddText(doc.Text, known)
			logutil.Trace("counted document", "path", path, "encoding", doc.Encoding, "chars", len(local.Unigrams))

			mu.Lock()
			defer mu.Unlock()
			total.Merge(local)
			stats.Files++
			if doc.Encoding == textenc.GBK {
				stats.GBK++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, CorpusStats{}, err
	}

	logutil.Since(start, "counted corpus", "files", stats.Files, "skipped", stats.Skipped, "gbk", stats.GBK,
		"unigrams", len(total.Unigrams), "bigrams", len(total.Bigrams))
	return total, stats, nil
}
