package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

var (
	// Set via PINYIN_DEBUG in the environment
	Debug bool
	// Set via PINYIN_DATA in the environment
	DataDir string
	// Set via PINYIN_WORKERS in the environment
	Workers int
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"PINYIN_DEBUG":   {"PINYIN_DEBUG", Debug, "Show additional debug information (e.g. PINYIN_DEBUG=1)"},
		"PINYIN_DATA":    {"PINYIN_DATA", DataDir, "Root directory holding alphabet/, corpus/, cache/ and answer.txt (default \"data\")"},
		"PINYIN_WORKERS": {"PINYIN_WORKERS", Workers, "Number of corpus documents counted concurrently (default: number of CPUs)"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	Debug = false
	if debug := clean("PINYIN_DEBUG"); debug != "" {
		d, err := strconv.ParseBool(debug)
		if err == nil {
			Debug = d
		} else {
			Debug = true
		}
	}

	DataDir = clean("PINYIN_DATA")
	if DataDir == "" {
		DataDir = "data"
	}

	Workers = runtime.NumCPU()
	if w := clean("PINYIN_WORKERS"); w != "" {
		val, err := strconv.Atoi(w)
		if err != nil || val <= 0 {
			slog.Error("invalid setting must be greater than zero", "PINYIN_WORKERS", w, "error", err)
		} else {
			Workers = val
		}
	}
}

// LexiconPath is the syllable-to-character table under DataDir.
func LexiconPath() string {
	return filepath.Join(DataDir, "alphabet", "pinyin_table.txt")
}

// CharsPath is the known-character list under DataDir.
func CharsPath() string {
	return filepath.Join(DataDir, "alphabet", "chars.txt")
}

func CorpusDir() string {
	return filepath.Join(DataDir, "corpus")
}

func CacheDir() string {
	return filepath.Join(DataDir, "cache")
}

func AnswerPath() string {
	return filepath.Join(DataDir, "answer.txt")
}
