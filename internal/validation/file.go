package validation

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/tabcheck/internal/catalog"
	"github.com/jonathan/tabcheck/internal/charset"
	"github.com/jonathan/tabcheck/internal/sheet"
	"github.com/jonathan/tabcheck/internal/tabular"
)

const compFile = "file"

// File checks a delimited text file.
type File struct {
	ctx   Context
	table *tabular.Table
	read  tabular.ReadOptions
}

// NewFile builds a file checker. An empty sep means tab.
func NewFile(ctx Context, path, sep string) *File {
	return &File{ctx: ctx, table: tabular.Open(path, sep)}
}

// WithReadOptions sets how cells are cleaned when rows and columns are read.
func (f *File) WithReadOptions(opts tabular.ReadOptions) *File {
	f.read = opts
	return f
}

// Path returns the path of the file.
func (f *File) Path() string {
	return f.table.Path
}

// Name returns the base name shown in messages.
func (f *File) Name() string {
	return f.table.Name()
}

// Table returns the underlying accessor.
func (f *File) Table() *tabular.Table {
	return f.table
}

func (f *File) issue(kind Kind, key string, fields Fields) *Issue {
	if fields == nil {
		fields = Fields{}
	}
	fields["File"] = f.Name()
	return f.ctx.NewIssue(kind, compFile, key, fields)
}

// sepLabel names the separator in messages.
func sepLabel(sep string) any {
	switch sep {
	case "\t":
		return catalog.R(compCommon, "tab")
	case " ":
		return catalog.R(compCommon, "space")
	}
	return sep
}

// Exist checks that the path is a regular file.
func (f *File) Exist() *Issue {
	f.ctx.Trace(compFile, "exist")
	info, err := os.Stat(f.Path())
	if err != nil || !info.Mode().IsRegular() {
		return f.issue(KindStructural, "not_exist", nil)
	}
	return nil
}

// DefaultSuffixes are the accepted file suffixes.
var DefaultSuffixes = []string{"txt"}

// Suffix checks, case-insensitively, that the path ends with one of suffixes.
// A nil slice uses DefaultSuffixes.
func (f *File) Suffix(suffixes []string) *Issue {
	f.ctx.Trace(compFile, "suffix")
	if suffixes == nil {
		suffixes = DefaultSuffixes
	}
	lower := strings.ToLower(f.Path())
	want := make([]string, len(suffixes))
	for i, s := range suffixes {
		want[i] = strings.ToLower(s)
		if strings.HasSuffix(lower, want[i]) {
			return nil
		}
	}
	return f.issue(KindStructural, "suffix", Fields{"Suffixes": want})
}

// Empty flags a zero-byte file.
func (f *File) Empty() *Issue {
	f.ctx.Trace(compFile, "empty")
	info, err := os.Stat(f.Path())
	if err != nil {
		return f.ctx.Fault(compFile, "empty", err)
	}
	if info.Size() == 0 {
		return f.issue(KindStructural, "empty", nil)
	}
	return nil
}

// SizeLimit is a maximum file size with the text it was configured from.
type SizeLimit struct {
	Bytes int64
	Text  string
}

// DefaultSizeLimit is 50 MiB.
var DefaultSizeLimit = SizeLimit{Bytes: 50 << 20, Text: "50M"}

var sizePattern = regexp.MustCompile(`^([0-9]+)([A-Za-z]*)$`)

// ParseSize parses sizes such as "50M", "512K" or "1024".
func ParseSize(s string) (SizeLimit, error) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return SizeLimit{}, &ConfigError{Option: "size limit", Value: s, Message: "want <number>[K|M]"}
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return SizeLimit{}, &ConfigError{Option: "size limit", Value: s, Cause: err}
	}
	switch strings.ToUpper(m[2]) {
	case "":
	case "K":
		n <<= 10
	case "M":
		n <<= 20
	default:
		return SizeLimit{}, &ConfigError{Option: "size limit", Value: s, Message: "unit must be K or M"}
	}
	return SizeLimit{Bytes: n, Text: s}, nil
}

// Size checks that the file is not larger than limit.
func (f *File) Size(limit SizeLimit) *Issue {
	f.ctx.Trace(compFile, "size")
	info, err := os.Stat(f.Path())
	if err != nil {
		return f.ctx.Fault(compFile, "size", err)
	}
	if info.Size() > limit.Bytes {
		return f.issue(KindStructural, "size", Fields{"Size": info.Size(), "Max": limit.Text})
	}
	return nil
}

// EncodingResult is the outcome of an encoding check.
type EncodingResult struct {
	// Detected is the detected encoding, upper case; empty for binary files.
	Detected string
	Allowed  bool
	Binary   bool
}

// DefaultEncodings are the encodings accepted by default.
var DefaultEncodings = []string{"UTF-8"}

// Encoding detects the file encoding and reports whether it is allowed.
// The issue is only set when detection itself fails.
func (f *File) Encoding(allowed []string, detector charset.Detector) (EncodingResult, *Issue) {
	f.ctx.Trace(compFile, "encoding")
	if allowed == nil {
		allowed = DefaultEncodings
	}
	if detector == nil {
		detector = charset.NewUtilityDetector()
	}
	name, err := detector.Detect(f.Path())
	if err != nil {
		return EncodingResult{}, f.ctx.Fault(compFile, "encoding", err)
	}
	if name == "" {
		return EncodingResult{Binary: true}, nil
	}
	res := EncodingResult{Detected: name}
	for _, a := range allowed {
		if strings.EqualFold(a, name) {
			res.Allowed = true
		}
	}
	return res, nil
}

// Convert re-encodes the file. An empty out writes next to the input with a
// .convert suffix; out equal to the input replaces it.
func (f *File) Convert(from, to, out string) *Issue {
	f.ctx.Trace(compFile, "convert")
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	f.ctx.Log().Info("converting file encoding", "file", f.Name(), "from", from, "to", to)
	if err := charset.Convert(f.Path(), out, from, to); err != nil {
		f.ctx.Log().Error("encoding conversion failed", "file", f.Name(), "error", err)
		return f.issue(KindStructural, "convert", Fields{"From": from, "To": to})
	}
	return nil
}

// XLSX converts a workbook to delimited text using the file separator unless
// opts sets one. It returns the output path.
func (f *File) XLSX(out string, opts sheet.Options) (string, *Issue) {
	f.ctx.Trace(compFile, "xlsx")
	if opts.Sep == "" {
		opts.Sep = f.table.Sep
	}
	path, err := sheet.ToText(f.Path(), out, opts)
	if err != nil {
		f.ctx.Log().Error("workbook conversion failed", "file", f.Name(), "error", err)
		return "", f.issue(KindStructural, "xlsx", nil)
	}
	return path, nil
}

// BaseOptions selects the checks CheckBase runs.
type BaseOptions struct {
	SkipExist    bool
	SkipSuffix   bool
	SkipEmpty    bool
	SkipSize     bool
	SkipEncoding bool
	// NoConvert disables conversion when exactly one encoding is allowed.
	NoConvert   bool
	Suffixes    []string
	MaxSize     *SizeLimit
	Allowed     []string
	Out         string
	OutEncoding string
	Detector    charset.Detector
}

// CheckBase runs the basic file checks. A missing file stops the run. When
// exactly one encoding is allowed and conversion is enabled, the file is
// converted from its detected encoding to OutEncoding (UTF-8 by default) so
// that later steps can read the output; otherwise a disallowed encoding is
// reported.
func (f *File) CheckBase(opts BaseOptions) Issues {
	f.ctx.Trace(compFile, "check_base")
	var issues Issues
	if !opts.SkipExist {
		if i := f.Exist(); i != nil {
			return Issues{i}
		}
	}
	if !opts.SkipSuffix {
		issues.Add(f.Suffix(opts.Suffixes))
	}
	if !opts.SkipEmpty {
		issues.Add(f.Empty())
	}
	if !opts.SkipSize {
		limit := DefaultSizeLimit
		if opts.MaxSize != nil {
			limit = *opts.MaxSize
		}
		issues.Add(f.Size(limit))
	}
	if opts.SkipEncoding {
		return issues
	}

	allowed := opts.Allowed
	if allowed == nil {
		allowed = DefaultEncodings
	}
	res, fault := f.Encoding(allowed, opts.Detector)
	switch {
	case fault != nil:
		issues.Add(fault)
	case res.Binary:
		issues.Add(f.issue(KindStructural, "binary", nil))
	case !opts.NoConvert && len(allowed) == 1:
		from := res.Detected
		if res.Allowed {
			from = allowed[0]
		}
		to := opts.OutEncoding
		if to == "" {
			to = "UTF-8"
		}
		issues.Add(f.Convert(from, to, opts.Out))
	case !res.Allowed:
		issues.Add(f.issue(KindStructural, "encoding", Fields{
			"Detected": res.Detected,
			"Allowed":  allowed,
		}))
	}
	return issues
}

func (f *File) String() string {
	return fmt.Sprintf("File(%s, sep=%q)", f.Path(), f.table.Sep)
}
