package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CleansAndPads(t *testing.T) {
	path := writeTable(t, "\ufeffid\ta\tb\n\n s1 \t1\n s2\t2\t3 \n")
	dst := filepath.Join(t.TempDir(), "out", "clean.txt")

	out, err := Open(path, "\t").Normalize(dst, NormalizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, dst, out.Path)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "id\ta\tb\ns1\t1\t\ns2\t2\t3\n", string(data))
}

func TestNormalize_InPlace(t *testing.T) {
	path := writeTable(t, "id\ta\n\ns1 \t1\n")

	_, err := Open(path, "\t").Normalize(path, NormalizeOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id\ta\ns1\t1\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should be gone")
}

func TestNormalize_TooManyFields(t *testing.T) {
	path := writeTable(t, "id\ta\ns1\t1\t2\n")
	dst := filepath.Join(t.TempDir(), "clean.txt")

	_, err := Open(path, "\t").Normalize(dst, NormalizeOptions{})
	require.Error(t, err)
	var fieldErr *FieldCountError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, 2, fieldErr.Row)
	assert.Equal(t, 2, fieldErr.Expected)
	assert.Equal(t, 3, fieldErr.Actual)
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNormalize_KeepSpace(t *testing.T) {
	path := writeTable(t, "id\ta\ns1 \t 1\n")
	dst := filepath.Join(t.TempDir(), "clean.txt")

	_, err := Open(path, "\t").Normalize(dst, NormalizeOptions{KeepSpace: true})
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "id\ta\ns1 \t 1\n", string(data))
}
