package pinyin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ieee0824/pinyin-go/decoder"
	"github.com/ieee0824/pinyin-go/internal/logutil"
	"github.com/ieee0824/pinyin-go/language"
	"github.com/ieee0824/pinyin-go/lexicon"
)

// Paths locates the training data.
type Paths struct {
	Lexicon string // syllable table
	Chars   string // known-character list
	Corpus  string // corpus directory, walked recursively
	Cache   string // directory for the count cache; empty disables it
}

// Engine is the top-level pinyin converter. Its model is immutable, so
// Convert may be called from multiple goroutines.
type Engine struct {
	Model  *language.Model
	DecCfg decoder.Config

	workers  int
	refresh  bool
	useCache bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithDecoderConfig sets custom decoding parameters.
func WithDecoderConfig(cfg decoder.Config) Option {
	return func(e *Engine) {
		e.DecCfg = cfg
	}
}

// WithAlpha sets the unigram interpolation weight.
func WithAlpha(alpha float64) Option {
	return func(e *Engine) {
		e.DecCfg.Alpha = alpha
	}
}

// WithWorkers sets how many corpus documents are counted concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithRefresh ignores any existing cache and recounts the corpus. The cache
// is rewritten afterwards.
func WithRefresh() Option {
	return func(e *Engine) {
		e.refresh = true
	}
}

// WithoutCache neither reads nor writes the count cache.
func WithoutCache() Option {
	return func(e *Engine) {
		e.useCache = false
	}
}

// NewEngine loads the lexicon, obtains character counts from the cache or
// the corpus, and builds the model. The decoder configuration is validated
// before any training work starts.
func NewEngine(ctx context.Context, paths Paths, opts ...Option) (*Engine, error) {
	e := &Engine{
		DecCfg:   decoder.DefaultConfig(),
		workers:  1,
		useCache: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.DecCfg.Validate(); err != nil {
		return nil, err
	}
	if paths.Cache == "" {
		e.useCache = false
	}

	start := time.Now()
	lex, err := lexicon.LoadFile(paths.Lexicon, paths.Chars)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	logutil.Since(start, "loaded lexicon", "syllables", lex.Len(), "chars", len(lex.Chars()))

	if e.useCache && !e.refresh {
		if m, ok := e.fromCache(lex, paths.Cache); ok {
			e.Model = m
			return e, nil
		}
	}

	counts, _, err := language.CountCorpus(ctx, paths.Corpus, lex.Known, e.workers)
	if err != nil {
		return nil, fmt.Errorf("count corpus: %w", err)
	}
	e.Model, err = language.Build(lex, counts)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}

	if e.useCache {
		start = time.Now()
		if err := language.SaveCounts(paths.Cache, counts); err != nil {
			slog.Warn("failed to write count cache", "dir", paths.Cache, "error", err)
		} else {
			logutil.Since(start, "wrote count cache", "dir", paths.Cache)
		}
	}
	return e, nil
}

// fromCache builds a model from cached counts. Unreadable or inconsistent
// caches are reported and ignored.
func (e *Engine) fromCache(lex *lexicon.Lexicon, dir string) (*language.Model, bool) {
	start := time.Now()
	counts, err := language.LoadCounts(dir)
	if err != nil {
		slog.Warn("count cache unavailable, recounting corpus", "dir", dir, "error", err)
		return nil, false
	}
	m, err := language.Build(lex, counts)
	if err != nil {
		slog.Warn("count cache inconsistent, recounting corpus", "dir", dir, "error", err)
		return nil, false
	}
	logutil.Since(start, "loaded count cache", "dir", dir, "bigrams", m.NumBigrams())
	return m, true
}

// NewEngineFromModel creates an Engine around a pre-built model.
func NewEngineFromModel(m *language.Model, opts ...Option) (*Engine, error) {
	e := &Engine{
		Model:  m,
		DecCfg: decoder.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.DecCfg.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Convert decodes one line of whitespace-separated syllables. A line with
// an unknown syllable yields an empty result, not an error.
func (e *Engine) Convert(line string) (*decoder.Result, error) {
	result, err := decoder.DecodeLine(line, e.Model, e.DecCfg)
	if err != nil {
		return nil, err
	}
	if result.Unknown != "" {
		slog.Debug("no prediction", "line", line, "unknown", result.Unknown)
	}
	return result, nil
}
