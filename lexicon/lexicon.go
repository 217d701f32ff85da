package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ieee0824/pinyin-go/internal/textenc"
)

// ErrInconsistent reports that the syllable table and the known-character
// list disagree. It is fatal: no model may be built from such a lexicon.
var ErrInconsistent = errors.New("lexicon: syllable table and character list are inconsistent")

// Lexicon maps pinyin syllables to candidate characters and back.
// It is immutable once loaded.
type Lexicon struct {
	syllables  []string          // file order
	candidates map[string][]rune // syllable -> characters, file order
	readings   map[rune][]string // character -> syllables, table order
	chars      []rune            // known set, file order
	known      map[rune]bool
}

// Load reads the syllable table and the known-character list.
// Each table line is: syllable<space>char char char ...
// The character list is a plain run of characters; whitespace is ignored.
// Both inputs may be UTF-8 or GBK.
func Load(table, chars io.Reader) (*Lexicon, error) {
	l := &Lexicon{
		candidates: make(map[string][]rune),
		readings:   make(map[rune][]string),
		known:      make(map[rune]bool),
	}
	if err := l.readTable(table); err != nil {
		return nil, fmt.Errorf("read syllable table: %w", err)
	}
	if err := l.readChars(chars); err != nil {
		return nil, fmt.Errorf("read character list: %w", err)
	}
	l.index()
	if err := l.Check(); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadFile is a convenience wrapper that opens both file paths.
func LoadFile(tablePath, charsPath string) (*Lexicon, error) {
	table, err := os.Open(tablePath)
	if err != nil {
		return nil, err
	}
	defer table.Close()
	chars, err := os.Open(charsPath)
	if err != nil {
		return nil, err
	}
	defer chars.Close()
	return Load(table, chars)
}

func decodeAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	d, err := textenc.Decode(b)
	if err != nil {
		return "", err
	}
	return d.Text, nil
}

func (l *Lexicon) readTable(r io.Reader) error {
	text, err := decodeAll(r)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		syllable := fields[0]
		if len(fields) < 2 {
			return fmt.Errorf("line %d: syllable %q has no characters", lineNum, syllable)
		}

		seen := make(map[rune]bool, len(fields)-1)
		cands := make([]rune, 0, len(fields)-1)
		for _, f := range fields[1:] {
			c, size := utf8.DecodeRuneInString(f)
			if size != len(f) {
				return fmt.Errorf("line %d: candidate %q is not a single character", lineNum, f)
			}
			if seen[c] {
				continue
			}
			seen[c] = true
			cands = append(cands, c)
		}

		// A repeated syllable keeps its first position; the later list wins.
		if _, ok := l.candidates[syllable]; !ok {
			l.syllables = append(l.syllables, syllable)
		}
		l.candidates[syllable] = cands
	}
	return scanner.Err()
}

func (l *Lexicon) readChars(r io.Reader) error {
	text, err := decodeAll(r)
	if err != nil {
		return err
	}
	for _, c := range text {
		if unicode.IsSpace(c) || l.known[c] {
			continue
		}
		l.known[c] = true
		l.chars = append(l.chars, c)
	}
	return nil
}

func (l *Lexicon) index() {
	for _, s := range l.syllables {
		for _, c := range l.candidates[s] {
			l.readings[c] = append(l.readings[c], s)
		}
	}
}

// Check verifies that every known character has a reading and that every
// candidate character is known.
func (l *Lexicon) Check() error {
	for _, c := range l.chars {
		if len(l.readings[c]) == 0 {
			return fmt.Errorf("%w: %q has no syllable", ErrInconsistent, c)
		}
	}
	for _, s := range l.syllables {
		for _, c := range l.candidates[s] {
			if !l.known[c] {
				return fmt.Errorf("%w: %q (syllable %q) is not in the character list", ErrInconsistent, c, s)
			}
		}
	}
	return nil
}

// Candidates returns the characters for a syllable in table order, or nil.
// The returned slice must not be modified.
func (l *Lexicon) Candidates(syllable string) []rune {
	return l.candidates[syllable]
}

// Readings returns the syllables that can produce c.
func (l *Lexicon) Readings(c rune) []string {
	return l.readings[c]
}

// Known reports whether c is in the known set.
func (l *Lexicon) Known(c rune) bool {
	return l.known[c]
}

// Syllables returns all syllables in table order.
func (l *Lexicon) Syllables() []string {
	out := make([]string, len(l.syllables))
	copy(out, l.syllables)
	return out
}

// Chars returns the known set in list order.
func (l *Lexicon) Chars() []rune {
	out := make([]rune, len(l.chars))
	copy(out, l.chars)
	return out
}

// Len returns the number of syllables.
func (l *Lexicon) Len() int {
	return len(l.syllables)
}
