package charset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// Unknown is returned when the encoding cannot be determined with enough
// confidence. An empty string means the file is binary.
const Unknown = "UNKNOWN"

// Detector guesses the encoding of a file. Names are upper case; binary
// files yield "".
type Detector interface {
	Detect(path string) (string, error)
}

// IsBinary reports whether the file content is not text.
func IsBinary(path string) (bool, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to sniff %s: %w", path, err)
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false, nil
		}
	}
	return true, nil
}

// ContentDetector samples the head of a file and guesses its encoding
// statistically.
type ContentDetector struct {
	// Confidence is the minimum confidence, 0-100, to accept a guess.
	Confidence int
	// SampleSize is the number of bytes read.
	SampleSize int
}

// NewContentDetector returns a detector with the default threshold of 60
// and a 3000 byte sample.
func NewContentDetector() *ContentDetector {
	return &ContentDetector{Confidence: 60, SampleSize: 3000}
}

// Detect implements Detector. Latin-1 and ASCII guesses are reported as GBK:
// they are unreliable on short samples of mixed-script text and GBK decodes
// both.
func (d *ContentDetector) Detect(path string) (string, error) {
	binary, err := IsBinary(path)
	if err != nil {
		return "", err
	}
	if binary {
		return "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sample := make([]byte, d.SampleSize)
	n, err := io.ReadFull(f, sample)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if n == 0 {
		return Unknown, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(sample[:n])
	if err != nil || result.Confidence <= d.Confidence {
		return Unknown, nil
	}
	name := strings.ToUpper(result.Charset)
	if strings.Contains(name, "ISO-8859") || strings.Contains(name, "ASCII") {
		return "GBK", nil
	}
	return name, nil
}

// UtilityDetector asks the system file(1) utility. Where file(1) is not
// available it falls back to a ContentDetector.
type UtilityDetector struct {
	Fallback Detector
}

// NewUtilityDetector returns a UtilityDetector with a content fallback.
func NewUtilityDetector() *UtilityDetector {
	return &UtilityDetector{Fallback: NewContentDetector()}
}

// Detect implements Detector.
func (d *UtilityDetector) Detect(path string) (string, error) {
	bin, err := exec.LookPath("file")
	if err != nil || runtime.GOOS == "windows" {
		return d.Fallback.Detect(path)
	}
	out, err := exec.Command(bin, "--mime-encoding", "-b", path).Output()
	if err != nil {
		return "", fmt.Errorf("file --mime-encoding %s: %w", path, err)
	}
	name := strings.ToUpper(strings.TrimSpace(string(out)))
	if name == "BINARY" {
		return "", nil
	}
	return name, nil
}
