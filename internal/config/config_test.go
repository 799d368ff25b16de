package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/wikiedits"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Should return defaults without sources", func(t *testing.T) {
		cfg, err := Load(Sources{})
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("Should apply YAML over defaults", func(t *testing.T) {
		path := writeFile(t, "wikiedits.yaml", `
store:
  path: /data/edits.db
  busy_timeout: 10s
context:
  length: 120
  tolerance: 70
clean:
  users:
similarity:
  workers: 8
`)
		cfg, err := Load(Sources{File: path})
		require.NoError(t, err)

		assert.Equal(t, "/data/edits.db", cfg.Store.Path)
		assert.Equal(t, 10*time.Second, cfg.Store.BusyTimeout)
		assert.Equal(t, 120, cfg.Context.Length)
		assert.Equal(t, 70, cfg.Context.Tolerance)
		assert.Equal(t, "<b>", cfg.Context.Open)
		assert.Equal(t, 1, cfg.Clean.Samples)
		assert.Equal(t, 8, cfg.Similarity.Workers)
	})

	t.Run("Should let the environment win over the file", func(t *testing.T) {
		path := writeFile(t, "wikiedits.yaml", "context:\n  length: 120\n")
		t.Setenv("WIKIEDITS_CONTEXT_LENGTH", "80")
		t.Setenv("WIKIEDITS_SIMILARITY_MAX_SEQ_LEN", "256")
		t.Setenv("WIKIEDITS_LOG_LEVEL", "debug")
		t.Setenv("WIKIEDITS_BENCH_TOLERANCES", "40,80")

		cfg, err := Load(Sources{File: path})
		require.NoError(t, err)

		assert.Equal(t, 80, cfg.Context.Length)
		assert.Equal(t, 256, cfg.Similarity.MaxSeqLen)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, []int{40, 80}, cfg.Bench.Tolerances)
	})

	t.Run("Should read variables from an env file", func(t *testing.T) {
		path := writeFile(t, ".env", "WIKIEDITS_CLEAN_SAMPLES=3\n")
		t.Cleanup(func() { _ = os.Unsetenv("WIKIEDITS_CLEAN_SAMPLES") })

		cfg, err := Load(Sources{EnvFile: path})
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Clean.Samples)
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := Load(Sources{File: filepath.Join(t.TempDir(), "absent.yaml")})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Should reject out of range values", func(t *testing.T) {
		t.Setenv("WIKIEDITS_CLEAN_SAMPLES", "9")
		_, err := Load(Sources{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Samples")
	})
}

func TestStringToIntSliceHook(t *testing.T) {
	t.Run("Should split a comma separated list", func(t *testing.T) {
		t.Setenv("WIKIEDITS_BENCH_TOLERANCES", " 50, 70 ,90")
		cfg, err := Load(Sources{})
		require.NoError(t, err)
		assert.Equal(t, []int{50, 70, 90}, cfg.Bench.Tolerances)
	})

	t.Run("Should reject a non numeric entry", func(t *testing.T) {
		t.Setenv("WIKIEDITS_BENCH_TOLERANCES", "50,high")
		_, err := Load(Sources{})
		require.Error(t, err)
	})

	t.Run("Should leave other types alone", func(t *testing.T) {
		got, err := stringToIntSliceHook(reflect.TypeOf(""), reflect.TypeOf([]string(nil)), "a,b")
		require.NoError(t, err)
		assert.Equal(t, "a,b", got)
	})
}

func TestTransformEnvKey(t *testing.T) {
	tests := map[string]string{
		"CONTEXT_LENGTH":         "context.length",
		"SIMILARITY_MAX_SEQ_LEN": "similarity.max_seq_len",
		"LOG__LEVEL_":            "log.level",
		"STORE":                  "store",
		"_":                      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, transformEnvKey(in), "key %q", in)
	}
}

func TestContextOptions(t *testing.T) {
	ctx := Context{Length: 10, Tolerance: 90, Open: "[", Close: "]"}

	got := wikiedits.Extract("cat", "the black cat sat down", ctx.Options()...)
	assert.Equal(t, "...black [cat] sat...", got)
}
