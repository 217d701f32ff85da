package decoder

// Result holds the conversion output. An empty Text means no prediction.
type Result struct {
	Text     string  // converted characters
	Chars    []Char  // per-position details
	LogScore float64 // total natural-log score of the best path
	Unknown  string  // first syllable with no candidates, if any
}

// Char holds the character chosen for one syllable.
type Char struct {
	Char     rune
	Syllable string
	LogScore float64 // cumulative score up to and including this position
}

// Empty reports whether the result carries no prediction.
func (r *Result) Empty() bool {
	return r == nil || r.Text == ""
}
