package language

import (
	"fmt"

	"github.com/ieee0824/pinyin-go/lexicon"
)

// Model holds the probability tables used for decoding. It is built once by
// Build and never modified afterwards, so any number of goroutines may read
// it concurrently.
type Model struct {
	lex      *lexicon.Lexicon
	unigrams map[string][]float64 // syllable -> P(char | syllable), aligned with lex.Candidates
	bigrams  map[Pair]float64     // P(cur | prev) for observed pairs only
}

// Build converts counts into probabilities.
//
// Unigrams use add-one smoothing over each syllable's own candidates:
//
//	P(c | s) = (f(c) + 1) / Σ_{c' ∈ C(s)} (f(c') + 1)
//
// Bigrams are unsmoothed maximum-likelihood estimates, f(p,c) / f(p).
// Unobserved pairs get no entry.
func Build(lex *lexicon.Lexicon, counts *Counts) (*Model, error) {
	if err := counts.Check(); err != nil {
		return nil, err
	}

	m := &Model{
		lex:      lex,
		unigrams: make(map[string][]float64, lex.Len()),
		bigrams:  make(map[Pair]float64, len(counts.Bigrams)),
	}

	for _, s := range lex.Syllables() {
		cands := lex.Candidates(s)
		probs := make([]float64, len(cands))
		var total float64
		for i, c := range cands {
			probs[i] = float64(counts.Unigrams[c] + 1)
			total += probs[i]
		}
		for i := range probs {
			probs[i] /= total
		}
		m.unigrams[s] = probs
	}

	for p, n := range counts.Bigrams {
		if n <= 0 {
			continue
		}
		prev := counts.Unigrams[p[0]]
		if n > prev {
			return nil, fmt.Errorf("bigram %q count %d exceeds context count %d", p.String(), n, prev)
		}
		m.bigrams[p] = float64(n) / float64(prev)
	}

	return m, nil
}

// Lexicon returns the lexicon the model was built from.
func (m *Model) Lexicon() *lexicon.Lexicon {
	return m.lex
}

// Candidates returns the characters for a syllable in lexicon order.
func (m *Model) Candidates(syllable string) []rune {
	return m.lex.Candidates(syllable)
}

// UnigramProbs returns P(c | syllable) for each candidate, aligned with
// Candidates(syllable). The returned slice must not be modified.
func (m *Model) UnigramProbs(syllable string) []float64 {
	return m.unigrams[syllable]
}

// Unigram returns P(c | syllable), or 0 if c is not a candidate.
func (m *Model) Unigram(syllable string, c rune) float64 {
	for i, cand := range m.lex.Candidates(syllable) {
		if cand == c {
			return m.unigrams[syllable][i]
		}
	}
	return 0
}

// Bigram returns P(cur | prev) and whether the pair was observed.
func (m *Model) Bigram(prev, cur rune) (float64, bool) {
	p, ok := m.bigrams[Pair{prev, cur}]
	return p, ok
}

// NumBigrams returns the number of observed pairs.
func (m *Model) NumBigrams() int {
	return len(m.bigrams)
}
