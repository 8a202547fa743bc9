package envutil

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:paralleltest // Uses t.Setenv
func TestString(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STRING", "hello")

	val, err := String("ENVUTIL_TEST_STRING").Value()
	require.NoError(t, err)
	assert.Equal(t, "hello", val)

	_, err = String("ENVUTIL_TEST_MISSING").Value()
	require.ErrorIs(t, err, ErrEnvVarMissing)

	assert.Equal(t, "dflt", String("ENVUTIL_TEST_MISSING", Default("dflt")).ValueOrElse("other"))
	assert.Equal(t, "other", String("ENVUTIL_TEST_MISSING").ValueOrElse("other"))
}

//nolint:paralleltest // Uses t.Setenv
func TestTypedReaders(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_BOOL", " true ")
	t.Setenv("ENVUTIL_TEST_INT", "42")
	t.Setenv("ENVUTIL_TEST_DURATION", "1500ms")
	t.Setenv("ENVUTIL_TEST_LEVEL", "WARN")
	t.Setenv("ENVUTIL_TEST_BAD_BOOL", "maybe")

	b, err := Bool("ENVUTIL_TEST_BOOL").Value()
	require.NoError(t, err)
	assert.True(t, b)

	i, err := Int("ENVUTIL_TEST_INT").Value()
	require.NoError(t, err)
	assert.Equal(t, 42, i)

	d, err := Duration("ENVUTIL_TEST_DURATION").Value()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	lvl, err := SlogLevel("ENVUTIL_TEST_LEVEL").Value()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	rdr := Bool("ENVUTIL_TEST_BAD_BOOL", Default(false))
	_, err = rdr.Value()
	require.ErrorIs(t, err, ErrBadEnvVar)
	assert.False(t, rdr.HasValue())
	assert.True(t, rdr.ValueOrElse(true))
}

//nolint:paralleltest // Uses t.Setenv
func TestValidate(t *testing.T) {
	errTooSmall := errors.New("too small")

	t.Setenv("ENVUTIL_TEST_WORKERS", "0")

	_, err := Int("ENVUTIL_TEST_WORKERS", Validate(func(n int) error {
		if n < 1 {
			return errTooSmall
		}

		return nil
	})).Value()
	require.ErrorIs(t, err, errTooSmall)
}

//nolint:paralleltest // Uses t.Setenv
func TestDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENVUTIL_TEST_DIR", dir)

	got, err := Dir("ENVUTIL_TEST_DIR").Value()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	t.Setenv("ENVUTIL_TEST_DIR", dir+"/does-not-exist")

	_, err = Dir("ENVUTIL_TEST_DIR").Value()
	require.ErrorIs(t, err, ErrBadEnvVar)
}

func TestReaderString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "K=v", NewReader("K", true, nil, "v").String())
	assert.Equal(t, "K=<not set>", NewReader("K", false, nil, "").String())
	assert.Contains(t, NewReader("K", true, errors.New("boom"), "").String(), "<error: boom>")
}
