package language

import (
	"errors"
	"fmt"
	"strings"
)

// ErrZeroContext reports a bigram whose previous character was never
// counted on its own, which would make P(current | previous) undefined.
var ErrZeroContext = errors.New("language: bigram context has zero unigram count")

// Pair is an ordered pair of adjacent characters: {previous, current}.
type Pair [2]rune

func (p Pair) String() string {
	return string(p[:])
}

// noPrev marks the start of a line or a broken context.
const noPrev rune = -1

// Counts accumulates unigram and bigram character frequencies.
type Counts struct {
	Unigrams map[rune]int64
	Bigrams  map[Pair]int64
}

// NewCounts creates empty counts.
func NewCounts() *Counts {
	return &Counts{
		Unigrams: make(map[rune]int64),
		Bigrams:  make(map[Pair]int64),
	}
}

// AddLine counts one line of text. Only characters for which known returns
// true are counted; any other character breaks the bigram context, so pairs
// never span it.
func (c *Counts) AddLine(line string, known func(rune) bool) {
	line = strings.TrimSpace(line)
	prev := noPrev
	for _, r := range line {
		if !known(r) {
			prev = noPrev
			continue
		}
		c.Unigrams[r]++
		if prev != noPrev {
			c.Bigrams[Pair{prev, r}]++
		}
		prev = r
	}
}

// AddText counts every line of text.
func (c *Counts) AddText(text string, known func(rune) bool) {
	for line := range strings.Lines(text) {
		c.AddLine(line, known)
	}
}

// Merge adds other into c.
func (c *Counts) Merge(other *Counts) {
	for r, n := range other.Unigrams {
		c.Unigrams[r] += n
	}
	for p, n := range other.Bigrams {
		c.Bigrams[p] += n
	}
}

// Check verifies that every bigram's previous character has a positive
// unigram count, which AddLine guarantees but loaded caches may not.
func (c *Counts) Check() error {
	for p, n := range c.Bigrams {
		if n <= 0 {
			continue
		}
		if c.Unigrams[p[0]] <= 0 {
			return fmt.Errorf("%w: %q", ErrZeroContext, p.String())
		}
	}
	return nil
}
