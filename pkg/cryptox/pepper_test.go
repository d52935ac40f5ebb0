package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPepperGeneratesAndCaches(t *testing.T) {
	prevPepper, prevFile := pepper, pepperFile
	t.Cleanup(func() { pepper, pepperFile = prevPepper, prevFile })

	pepper = ""
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	first, err := GetPepper()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := GetPepper()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGetPepperLoadFailure(t *testing.T) {
	prevPepper, prevFile := pepper, pepperFile
	t.Cleanup(func() { pepper, pepperFile = prevPepper, prevFile })

	// A regular file where the parent directory should be makes the load
	// fail instead of generating a fresh pepper.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	pepper = ""
	SetPepperPath(filepath.Join(blocker, "pepper"))

	_, err := GetPepper()
	require.Error(t, err)
}
