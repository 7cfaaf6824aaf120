package envx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	t.Setenv("ENVX_S", "  value ")
	t.Setenv("ENVX_EMPTY", "")

	s := "default"
	String("ENVX_EMPTY", &s)
	require.Equal(t, "default", s)
	String("ENVX_UNSET_KEY", &s)
	require.Equal(t, "default", s)
	String("ENVX_S", &s)
	require.Equal(t, "value", s)
}

func TestDuration(t *testing.T) {
	d := time.Second

	t.Setenv("ENVX_D", "1m30s")
	require.NoError(t, Duration("ENVX_D", &d))
	require.Equal(t, 90*time.Second, d)

	t.Setenv("ENVX_D", "7")
	require.NoError(t, Duration("ENVX_D", &d))
	require.Equal(t, 7*time.Second, d)

	t.Setenv("ENVX_D", "soon")
	require.ErrorContains(t, Duration("ENVX_D", &d), "ENVX_D")
	require.Equal(t, 7*time.Second, d)
}

func TestBool(t *testing.T) {
	var b bool
	t.Setenv("ENVX_B", "true")
	require.NoError(t, Bool("ENVX_B", &b))
	require.True(t, b)

	t.Setenv("ENVX_B", "maybe")
	require.Error(t, Bool("ENVX_B", &b))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ENVX_FROM_FILE=file\nENVX_PRESET=file\n"), 0o600))

	t.Setenv("ENVX_PRESET", "process")
	t.Setenv("ENVX_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("ENVX_FROM_FILE"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	require.Equal(t, "file", os.Getenv("ENVX_FROM_FILE"))
	require.Equal(t, "process", os.Getenv("ENVX_PRESET"))
}
