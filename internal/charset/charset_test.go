package charset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestConvert_RoundTripASCII(t *testing.T) {
	original := []byte("id\tvalue\nsample1\t1.5\nsample2\t2\n")
	in := writeFile(t, "data.txt", original)
	gbk := filepath.Join(filepath.Dir(in), "data.gbk.txt")
	back := filepath.Join(filepath.Dir(in), "data.back.txt")

	require.NoError(t, Convert(in, gbk, "UTF-8", "GBK"))
	require.NoError(t, Convert(gbk, back, "gbk", "utf-8"))

	data, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestConvert_GBKToUTF8(t *testing.T) {
	text := "样本\t数值\n"
	encoded, err := simplifiedchinese.GBK.NewEncoder().String(text)
	require.NoError(t, err)
	in := writeFile(t, "data.txt", []byte(encoded))

	require.NoError(t, Convert(in, "", "GBK", "UTF-8"))

	data, err := os.ReadFile(DefaultOutput(in))
	require.NoError(t, err)
	assert.Equal(t, text, string(data))
}

func TestConvert_SamePathReplaces(t *testing.T) {
	in := writeFile(t, "data.txt", []byte("a\tb\n"))

	require.NoError(t, Convert(in, in, "UTF-8", "UTF-8-SIG"))

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, "\ufeffa\tb\n", string(data))
	entries, err := os.ReadDir(filepath.Dir(in))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestConvert_UnknownEncoding(t *testing.T) {
	in := writeFile(t, "data.txt", []byte("a\n"))

	err := Convert(in, "", "NOPE-42", "UTF-8")
	require.Error(t, err)
	var unknown *UnknownEncodingError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "NOPE-42", unknown.Name)
}

func TestConvert_MissingInput(t *testing.T) {
	err := Convert(filepath.Join(t.TempDir(), "missing.txt"), "", "UTF-8", "GBK")
	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "GBK", convErr.To)
}

func TestIsBinary(t *testing.T) {
	text := writeFile(t, "data.txt", []byte("hello\tworld\n"))
	binary := writeFile(t, "data.bin", []byte{0x00, 0x01, 0x02, 0xff, 0x00, 0x10, 0x00, 0x00})

	isBin, err := IsBinary(text)
	require.NoError(t, err)
	assert.False(t, isBin)

	isBin, err = IsBinary(binary)
	require.NoError(t, err)
	assert.True(t, isBin)
}

func TestContentDetector_Binary(t *testing.T) {
	path := writeFile(t, "data.bin", []byte{0x00, 0x01, 0x02, 0xff, 0x00, 0x10, 0x00, 0x00})

	enc, err := NewContentDetector().Detect(path)
	require.NoError(t, err)
	assert.Empty(t, enc)
}

func TestContentDetector_UTF8(t *testing.T) {
	var content []byte
	for i := 0; i < 50; i++ {
		content = append(content, []byte("样本名称\t检测数值\t备注信息\n")...)
	}
	path := writeFile(t, "data.txt", content)

	enc, err := NewContentDetector().Detect(path)
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", enc)
}

func TestUtilityDetector_Fallback(t *testing.T) {
	path := writeFile(t, "data.bin", []byte{0x00, 0x01, 0x02, 0xff, 0x00, 0x10, 0x00, 0x00})
	d := &UtilityDetector{Fallback: NewContentDetector()}

	enc, err := d.Detect(path)
	require.NoError(t, err)
	assert.Empty(t, enc)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"utf-8", "UTF-8-SIG", "gbk", "GB18030", "latin1"} {
		_, err := Lookup(name)
		assert.NoError(t, err, name)
	}
}
