package charset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const blockSize = 102400

// Lookup returns the codec for an encoding name such as UTF-8, GBK or
// UTF-8-SIG. Names are case-insensitive.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UTF-8-SIG", "UTF-8-BOM", "UTF8-BOM":
		return unicode.UTF8BOM, nil
	case "UTF-8", "UTF8":
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, &UnknownEncodingError{Name: name}
	}
	return enc, nil
}

// DefaultOutput is the path Convert writes to when none is given.
func DefaultOutput(in string) string {
	return in + ".convert"
}

// Convert re-encodes in from one encoding to another, streaming in fixed
// size blocks. An empty out writes to DefaultOutput(in). When out is in the
// file is rewritten through a temporary file that replaces it.
func Convert(in, out, from, to string) error {
	if out == "" {
		out = DefaultOutput(in)
	}
	src, err := Lookup(from)
	if err != nil {
		return &ConversionError{From: from, To: to, Message: "unsupported source encoding", Cause: err}
	}
	dst, err := Lookup(to)
	if err != nil {
		return &ConversionError{From: from, To: to, Message: "unsupported target encoding", Cause: err}
	}

	r, err := os.Open(in)
	if err != nil {
		return &ConversionError{From: from, To: to, Message: fmt.Sprintf("failed to open %s", in), Cause: err}
	}
	defer func() { _ = r.Close() }()

	inAbs, _ := filepath.Abs(in)
	outAbs, _ := filepath.Abs(out)
	target := out
	var tmp *os.File
	if inAbs == outAbs {
		tmp, err = os.CreateTemp(filepath.Dir(out), "."+filepath.Base(out)+".*")
		if err != nil {
			return &ConversionError{From: from, To: to, Message: "failed to create temporary file", Cause: err}
		}
		target = tmp.Name()
		defer func() { _ = os.Remove(target) }()
		_ = tmp.Close()
	}

	w, err := os.Create(target)
	if err != nil {
		return &ConversionError{From: from, To: to, Message: fmt.Sprintf("failed to create %s", target), Cause: err}
	}
	encoder := transform.NewWriter(w, dst.NewEncoder())
	_, copyErr := io.CopyBuffer(encoder, transform.NewReader(r, src.NewDecoder()), make([]byte, blockSize))
	closeErr := encoder.Close()
	fileErr := w.Close()
	for _, err := range []error{copyErr, closeErr, fileErr} {
		if err != nil {
			return &ConversionError{From: from, To: to, Message: fmt.Sprintf("failed to write %s", target), Cause: err}
		}
	}

	if tmp != nil {
		_ = r.Close()
		if err := os.Rename(target, out); err != nil {
			return &ConversionError{From: from, To: to, Message: fmt.Sprintf("failed to replace %s", out), Cause: err}
		}
	}
	return nil
}
