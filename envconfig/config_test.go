package envconfig

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Setenv("PINYIN_DEBUG", "")
	LoadConfig()
	require.False(t, Debug)
	t.Setenv("PINYIN_DEBUG", "false")
	LoadConfig()
	require.False(t, Debug)
	t.Setenv("PINYIN_DEBUG", "1")
	LoadConfig()
	require.True(t, Debug)
	t.Setenv("PINYIN_DEBUG", "yes please")
	LoadConfig()
	require.True(t, Debug)
}

func TestDataDir(t *testing.T) {
	t.Setenv("PINYIN_DATA", "")
	LoadConfig()
	assert.Equal(t, "data", DataDir)

	t.Setenv("PINYIN_DATA", "'/srv/ime'")
	LoadConfig()
	assert.Equal(t, "/srv/ime", DataDir)
	assert.Equal(t, filepath.Join("/srv/ime", "alphabet", "pinyin_table.txt"), LexiconPath())
	assert.Equal(t, filepath.Join("/srv/ime", "alphabet", "chars.txt"), CharsPath())
	assert.Equal(t, filepath.Join("/srv/ime", "corpus"), CorpusDir())
	assert.Equal(t, filepath.Join("/srv/ime", "cache"), CacheDir())
	assert.Equal(t, filepath.Join("/srv/ime", "answer.txt"), AnswerPath())
}

func TestWorkers(t *testing.T) {
	t.Setenv("PINYIN_WORKERS", "")
	LoadConfig()
	assert.Equal(t, runtime.NumCPU(), Workers)

	t.Setenv("PINYIN_WORKERS", "3")
	LoadConfig()
	assert.Equal(t, 3, Workers)

	t.Setenv("PINYIN_WORKERS", "-2")
	LoadConfig()
	assert.Equal(t, runtime.NumCPU(), Workers)

	t.Setenv("PINYIN_WORKERS", "many")
	LoadConfig()
	assert.Equal(t, runtime.NumCPU(), Workers)
}

func TestValues(t *testing.T) {
	t.Setenv("PINYIN_WORKERS", "5")
	LoadConfig()
	vals := Values()
	assert.Equal(t, "5", vals["PINYIN_WORKERS"])
	assert.Contains(t, vals, "PINYIN_DEBUG")
	assert.Contains(t, vals, "PINYIN_DATA")
}
