package language

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Cache file names inside the cache directory.
const (
	UnigramFile = "one_word.json"
	BigramFile  = "two_word.json"
)

// SaveCounts writes c to dir as two JSON objects: character -> count and
// pair ("前后") -> count.
func SaveCounts(dir string, c *Counts) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	uni := make(map[string]int64, len(c.Unigrams))
	for r, n := range c.Unigrams {
		uni[string(r)] = n
	}
	bi := make(map[string]int64, len(c.Bigrams))
	for p, n := range c.Bigrams {
		bi[p.String()] = n
	}

	if err := writeJSON(filepath.Join(dir, UnigramFile), uni); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, BigramFile), bi)
}

// writeJSON replaces path atomically so a failed write never leaves a
// truncated cache behind.
func writeJSON(path string, v any) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := json.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// LoadCounts reads counts written by SaveCounts. Any missing file, syntax
// error, malformed key or negative count is returned as an error; callers
// are expected to fall back to counting the corpus.
func LoadCounts(dir string) (*Counts, error) {
	var uni, bi map[string]int64
	if err := readJSON(filepath.Join(dir, UnigramFile), &uni); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, BigramFile), &bi); err != nil {
		return nil, err
	}

	c := NewCounts()
	for k, n := range uni {
		if utf8.RuneCountInString(k) != 1 || n < 0 {
			return nil, fmt.Errorf("%s: bad entry %q: %d", UnigramFile, k, n)
		}
		r, _ := utf8.DecodeRuneInString(k)
		c.Unigrams[r] = n
	}
	for k, n := range bi {
		rs := []rune(k)
		if len(rs) != 2 || n < 0 {
			return nil, fmt.Errorf("%s: bad entry %q: %d", BigramFile, k, n)
		}
		c.Bigrams[Pair{rs[0], rs[1]}] = n
	}
	return c, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
