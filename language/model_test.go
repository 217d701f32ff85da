package language

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieee0824/pinyin-go/lexicon"
)

func testLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.Load(
		strings.NewReader("ni3 你 尼\nhao3 好 郝\nma5 吗 嘛\n"),
		strings.NewReader("你尼好郝吗嘛"),
	)
	require.NoError(t, err)
	return lex
}

func TestBuildUnigramSmoothing(t *testing.T) {
	lex := testLexicon(t)
	c := NewCounts()
	c.Unigrams['你'] = 12
	c.Unigrams['好'] = 10

	m, err := Build(lex, c)
	require.NoError(t, err)

	// (12+1) / ((12+1) + (0+1))
	assert.InDelta(t, 13.0/14.0, m.Unigram("ni3", '你'), 1e-12)
	assert.InDelta(t, 1.0/14.0, m.Unigram("ni3", '尼'), 1e-12)
	// Neither candidate observed: uniform.
	assert.InDelta(t, 0.5, m.Unigram("ma5", '吗'), 1e-12)
	assert.Equal(t, 0.0, m.Unigram("ni3", '好'))
	assert.Equal(t, 0.0, m.Unigram("xyz9", '你'))
}

func TestBuildUnigramSumsToOne(t *testing.T) {
	lex := testLexicon(t)
	c := NewCounts()
	c.AddText("你好吗\n你好\n尼好嘛", lex.Known)

	m, err := Build(lex, c)
	require.NoError(t, err)

	for _, s := range lex.Syllables() {
		probs := m.UnigramProbs(s)
		require.Len(t, probs, len(m.Candidates(s)))
		var sum float64
		for _, p := range probs {
			assert.Positive(t, p)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "syllable %s", s)
	}
}

func TestBuildBigram(t *testing.T) {
	lex := testLexicon(t)
	c := NewCounts()
	c.AddText("你好\n你好\n你吗\n尼", lex.Known)

	m, err := Build(lex, c)
	require.NoError(t, err)

	p, ok := m.Bigram('你', '好')
	require.True(t, ok)
	assert.InDelta(t, 2.0/3.0, p, 1e-12)

	p, ok = m.Bigram('你', '吗')
	require.True(t, ok)
	assert.InDelta(t, 1.0/3.0, p, 1e-12)

	_, ok = m.Bigram('好', '你')
	assert.False(t, ok, "unobserved pair must have no entry")
	assert.Equal(t, 2, m.NumBigrams())
}

func TestBuildBigramRange(t *testing.T) {
	lex := testLexicon(t)
	c := NewCounts()
	c.AddText("你好吗你好嘛\n尼好你\n好好好", lex.Known)

	m, err := Build(lex, c)
	require.NoError(t, err)
	for pair := range c.Bigrams {
		p, ok := m.Bigram(pair[0], pair[1])
		require.True(t, ok)
		assert.Greater(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestBuildZeroContext(t *testing.T) {
	lex := testLexicon(t)
	c := NewCounts()
	c.Unigrams['好'] = 1
	c.Bigrams[Pair{'你', '好'}] = 1

	_, err := Build(lex, c)
	assert.ErrorIs(t, err, ErrZeroContext)
}

func TestBuildBigramExceedsContext(t *testing.T) {
	lex := testLexicon(t)
	c := NewCounts()
	c.Unigrams['你'] = 1
	c.Bigrams[Pair{'你', '好'}] = 5

	_, err := Build(lex, c)
	assert.Error(t, err)
}

func TestBuildIgnoresUnknownCounts(t *testing.T) {
	lex := testLexicon(t)
	c := NewCounts()
	c.Unigrams['猫'] = 100

	m, err := Build(lex, c)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(m.Unigram("ni3", '你')))
	assert.Same(t, lex, m.Lexicon())
}
