// Package textenc decodes corpus and reference files whose encoding is not
// known up front. UTF-8 is tried first, then GBK.
package textenc

import (
	"bytes"
	"errors"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// ErrUndecodable is returned when neither UTF-8 nor GBK yields clean text.
var ErrUndecodable = errors.New("textenc: not valid UTF-8 or GBK")

// Encoding identifies which stage produced the text.
type Encoding int

const (
	UTF8 Encoding = iota
	GBK
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case GBK:
		return "gbk"
	default:
		return "unknown"
	}
}

// Decoded is the outcome of a successful Decode.
type Decoded struct {
	Text     string
	Encoding Encoding
}

// Decode converts b to a string. A leading UTF-8 byte order mark is dropped.
func Decode(b []byte) (Decoded, error) {
	if text, ok := decodeUTF8(b); ok {
		return Decoded{Text: text, Encoding: UTF8}, nil
	}
	if text, ok := decodeGBK(b); ok {
		return Decoded{Text: text, Encoding: GBK}, nil
	}
	return Decoded{}, ErrUndecodable
}

// ReadFile reads path and decodes it with Decode.
func ReadFile(path string) (Decoded, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Decoded{}, err
	}
	return Decode(b)
}

func decodeUTF8(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// The GBK decoder substitutes U+FFFD for malformed sequences instead of
// failing, so a replacement rune in the output marks the attempt as failed.
func decodeGBK(b []byte) (string, bool) {
	out, err := simplifiedchinese.GBK.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}
