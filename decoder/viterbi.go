package decoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ieee0824/pinyin-go/internal/mathutil"
	"github.com/ieee0824/pinyin-go/language"
)

// ErrInvalidConfig is returned for an interpolation weight outside [0,1] or
// a non-positive probability floor.
var ErrInvalidConfig = errors.New("decoder: invalid config")

// Config holds decoding parameters.
type Config struct {
	Alpha   float64 // unigram weight; the bigram term gets 1-Alpha
	Epsilon float64 // probability floor applied before taking logs
}

// DefaultConfig returns the parameters the command line uses by default.
func DefaultConfig() Config {
	return Config{
		Alpha:   1e-7,
		Epsilon: 1e-233,
	}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if !(c.Alpha >= 0 && c.Alpha <= 1) {
		return fmt.Errorf("%w: alpha %v not in [0,1]", ErrInvalidConfig, c.Alpha)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon %v must be positive", ErrInvalidConfig, c.Epsilon)
	}
	return nil
}

// Tokenize splits a line of pinyin into syllables.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// column is one lattice position. back[j] indexes the best predecessor of
// cands[j] in the previous column.
type column struct {
	syllable string
	cands    []rune
	scores   []float64
	back     []int
}

// Decode finds the most probable character sequence for tokens.
//
// Each transition from p to c scores
//
//	log(max(Alpha*P(c|syllable) + (1-Alpha)*P(c|p), Epsilon))
//
// If any token has no candidates the result is empty. Ties keep the
// predecessor, or final candidate, that comes first in lexicon order.
func Decode(tokens []string, m *language.Model, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return &Result{}, nil
	}
	for _, tok := range tokens {
		if len(m.Candidates(tok)) == 0 {
			return &Result{Unknown: tok}, nil
		}
	}

	lattice := make([]column, len(tokens))

	first := newColumn(tokens[0], m)
	uni := m.UnigramProbs(tokens[0])
	for j := range first.cands {
		first.scores[j] = mathutil.FloorLog(uni[j], cfg.Epsilon)
		first.back[j] = -1
	}
	lattice[0] = first

	for t := 1; t < len(tokens); t++ {
		prev := &lattice[t-1]
		cur := newColumn(tokens[t], m)
		uni := m.UnigramProbs(tokens[t])

		for j, c := range cur.cands {
			best, arg := mathutil.LogZero, -1
			for i, p := range prev.cands {
				pb, _ := m.Bigram(p, c)
				interp := cfg.Alpha*uni[j] + (1-cfg.Alpha)*pb
				s := prev.scores[i] + mathutil.FloorLog(interp, cfg.Epsilon)
				if arg < 0 || s > best {
					best, arg = s, i
				}
			}
			if arg < 0 {
				return nil, fmt.Errorf("decoder: no predecessor for %q at position %d", c, t)
			}
			cur.scores[j] = best
			cur.back[j] = arg
		}
		lattice[t] = cur
	}

	return backtrace(lattice), nil
}

// DecodeLine tokenizes line and decodes it.
func DecodeLine(line string, m *language.Model, cfg Config) (*Result, error) {
	return Decode(Tokenize(line), m, cfg)
}

func newColumn(syllable string, m *language.Model) column {
	cands := m.Candidates(syllable)
	return column{
		syllable: syllable,
		cands:    cands,
		scores:   make([]float64, len(cands)),
		back:     make([]int, len(cands)),
	}
}

func backtrace(lattice []column) *Result {
	last := &lattice[len(lattice)-1]
	j := mathutil.Argmax(last.scores)

	chars := make([]Char, len(lattice))
	for t := len(lattice) - 1; t >= 0; t-- {
		col := &lattice[t]
		chars[t] = Char{
			Char:     col.cands[j],
			Syllable: col.syllable,
			LogScore: col.scores[j],
		}
		j = col.back[j]
	}

	var sb strings.Builder
	for _, c := range chars {
		sb.WriteRune(c.Char)
	}
	return &Result{
		Text:     sb.String(),
		Chars:    chars,
		LogScore: chars[len(chars)-1].LogScore,
	}
}
