package decoder

import (
	"math/rand"
	"testing"

	"github.com/ieee0824/pinyin-go/language"
)

// buildBenchModel creates a lexicon where every syllable has width
// candidates and every candidate pair has been observed.
func buildBenchModel(b *testing.B, syllables, width int) (*language.Model, []string) {
	b.Helper()
	var table, chars []rune
	names := make([]string, syllables)
	next := rune(0x4E00)
	uni := make(map[rune]int64)
	for s := 0; s < syllables; s++ {
		names[s] = string(rune('a'+s%26)) + string(rune('a'+s/26)) + "1"
		table = append(table, []rune(names[s])...)
		for w := 0; w < width; w++ {
			table = append(table, ' ', next)
			chars = append(chars, next)
			uni[next] = int64(w + 1)
			next++
		}
		table = append(table, '\n')
	}

	rng := rand.New(rand.NewSource(1))
	bi := make(map[language.Pair]int64)
	for range len(chars) * 4 {
		p := language.Pair{chars[rng.Intn(len(chars))], chars[rng.Intn(len(chars))]}
		if bi[p] < uni[p[0]] {
			bi[p]++
		}
	}
	return buildModel(b, string(table), string(chars), uni, bi), names
}

func BenchmarkDecode(b *testing.B) {
	m, names := buildBenchModel(b, 400, 30)
	rng := rand.New(rand.NewSource(2))
	tokens := make([]string, 20)
	for i := range tokens {
		tokens[i] = names[rng.Intn(len(names))]
	}
	c := DefaultConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(tokens, m, c); err != nil {
			b.Fatal(err)
		}
	}
}
