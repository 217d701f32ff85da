package language

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestCountCorpus(t *testing.T) {
	dir := t.TempDir()
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("北京欢迎你\n"))
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "a.txt"), []byte("北京欢迎你，你好北京"))
	writeFile(t, filepath.Join(dir, "news", "2016-01", "b.txt"), gbk)
	writeFile(t, filepath.Join(dir, "news", "bad.bin"), []byte{0xFF, 0xFE, 0xFF})

	known := knownSet("北京欢迎你好")
	counts, stats, err := CountCorpus(context.Background(), dir, known, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.GBK)

	assert.Equal(t, int64(3), counts.Unigrams['北'])
	assert.Equal(t, int64(3), counts.Bigrams[Pair{'北', '京'}])
	assert.Equal(t, int64(1), counts.Bigrams[Pair{'你', '好'}])
	// The comma breaks 你，你.
	_, ok := counts.Bigrams[Pair{'你', '你'}]
	assert.False(t, ok)
}

func TestCountCorpusDeterministic(t *testing.T) {
	dir := t.TempDir()
	for i, text := range []string{"天气很好", "今天天气", "好天气", "天天好", "很好很好"} {
		writeFile(t, filepath.Join(dir, string(rune('a'+i))+".txt"), []byte(text))
	}
	known := knownSet("天气很好今")

	serial, _, err := CountCorpus(context.Background(), dir, known, 1)
	require.NoError(t, err)
	for range 5 {
		parallel, _, err := CountCorpus(context.Background(), dir, known, 8)
		require.NoError(t, err)
		assert.Equal(t, serial, parallel)
	}
}

func TestCountCorpusMissingDir(t *testing.T) {
	_, _, err := CountCorpus(context.Background(), filepath.Join(t.TempDir(), "nope"), knownSet("a"), 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCountCorpusCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("你好"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := CountCorpus(ctx, dir, knownSet("你好"), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
