// Package config provides check profile loading and validation for the CLI.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/tabcheck/internal/catalog"
	"github.com/jonathan/tabcheck/internal/charset"
	"github.com/jonathan/tabcheck/internal/schemas"
	"github.com/jonathan/tabcheck/internal/tabular"
	"github.com/jonathan/tabcheck/internal/validation"
)

// Profile is a reusable description of the checks to run on one kind of
// file. It is loaded from JSON; every field is optional and CLI flags fill
// or override it.
type Profile struct {
	Name     string         `json:"name,omitempty"`
	Sep      string         `json:"sep,omitempty"`
	Language string         `json:"language,omitempty" validate:"omitempty,oneof=CN EN cn en"`
	Base     BaseProfile    `json:"base"`
	Content  ContentProfile `json:"content"`
}

// BaseProfile configures the file base checks.
type BaseProfile struct {
	Skip        []string `json:"skip,omitempty" validate:"dive,oneof=exist suffix empty size encoding"`
	Suffixes    []string `json:"suffixes,omitempty" validate:"dive,required"`
	MaxSize     string   `json:"max_size,omitempty"`
	Encodings   []string `json:"encodings,omitempty" validate:"dive,required"`
	OutEncoding string   `json:"out_encoding,omitempty"`
	NoConvert   bool     `json:"no_convert,omitempty"`
	Detector    string   `json:"detector,omitempty" validate:"omitempty,oneof=content utility"`
}

// TypeProfile configures coercion of rows or columns. Missing bounds are open.
type TypeProfile struct {
	Targets    validation.Selection `json:"targets"`
	Min        *float64             `json:"min,omitempty"`
	Max        *float64             `json:"max,omitempty"`
	BanNumbers bool                 `json:"ban_numbers,omitempty"`
}

// ContentProfile configures the staged content checks. Nil pointers keep
// the command line defaults.
type ContentProfile struct {
	Preprocess          *bool `json:"preprocess,omitempty"`
	KeepSpace           bool  `json:"keep_space,omitempty"`
	FillNA              bool  `json:"fill_na,omitempty"`
	CheckSeparators     bool  `json:"check_separators,omitempty"`
	CheckHeader         bool  `json:"check_header,omitempty"`
	CheckDuplicateLines bool  `json:"check_duplicate_lines,omitempty"`

	Rows validation.DimensionRule `json:"rows"`
	Cols validation.DimensionRule `json:"cols"`

	RowContent *validation.LineContentRule `json:"row_content,omitempty"`
	ColContent *validation.LineContentRule `json:"col_content,omitempty"`
	BanList    []string                    `json:"ban_list,omitempty"`
	NAMarkers  []string                    `json:"na_markers,omitempty"`

	RowFixed *validation.FixedContent `json:"row_fixed,omitempty"`
	ColFixed *validation.FixedContent `json:"col_fixed,omitempty"`

	RowType    *TypeProfile `json:"row_type,omitempty"`
	ColType    *TypeProfile `json:"col_type,omitempty"`
	ValueType  string       `json:"value_type,omitempty"`
	DropFirst  bool         `json:"drop_first,omitempty"`
	BanNumbers []float64    `json:"ban_numbers,omitempty"`

	RowStandardize     bool                  `json:"row_standardize,omitempty"`
	ColStandardize     bool                  `json:"col_standardize,omitempty"`
	StandardizeTargets *validation.Selection `json:"standardize_targets,omitempty"`

	Relation *validation.Relation `json:"relation,omitempty"`
}

// LoadProfile loads a check profile from a JSON file. The document is
// checked against the embedded profile schema before it is decoded.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		return nil, fmt.Errorf("profile path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes and validates a JSON check profile.
func ParseProfile(data []byte) (*Profile, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("failed to parse profile JSON: invalid syntax")
	}
	if err := schemas.Validate(schemas.Profile, data); err != nil {
		return nil, fmt.Errorf("profile does not match schema: %w", err)
	}

	var p Profile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks field values and the constraints tags cannot express.
func (p *Profile) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("profile error: %w", err)
	}
	if p.Content.ValueType != "" {
		if _, err := validation.ParseValueType(p.Content.ValueType); err != nil {
			return fmt.Errorf("profile error: %w", err)
		}
	}
	if p.Base.MaxSize != "" {
		if _, err := validation.ParseSize(p.Base.MaxSize); err != nil {
			return fmt.Errorf("profile error: %w", err)
		}
	}
	for name, d := range map[string]validation.DimensionRule{"rows": p.Content.Rows, "cols": p.Content.Cols} {
		if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
			return fmt.Errorf("profile error: '%s' min %d exceeds max %d", name, *d.Min, *d.Max)
		}
	}
	for name, fc := range map[string]*validation.FixedContent{"row_fixed": p.Content.RowFixed, "col_fixed": p.Content.ColFixed} {
		if fc != nil && fc.Span != nil && fc.Span.End != 0 && fc.Span.End < fc.Span.Start {
			return fmt.Errorf("profile error: '%s' span end %d is before start %d", name, fc.Span.End, fc.Span.Start)
		}
	}
	for name, tp := range map[string]*TypeProfile{"row_type": p.Content.RowType, "col_type": p.Content.ColType} {
		if tp != nil && tp.Min != nil && tp.Max != nil && *tp.Min > *tp.Max {
			return fmt.Errorf("profile error: '%s' min %g exceeds max %g", name, *tp.Min, *tp.Max)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Profile with unset fields filled from
// defaults. Booleans cannot distinguish unset from false and are not merged.
func (p *Profile) MergeWithDefaults(defaults Profile) Profile {
	result := *p

	if result.Name == "" {
		result.Name = defaults.Name
	}
	if result.Sep == "" {
		result.Sep = defaults.Sep
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}

	if result.Base.Suffixes == nil {
		result.Base.Suffixes = defaults.Base.Suffixes
	}
	if result.Base.MaxSize == "" {
		result.Base.MaxSize = defaults.Base.MaxSize
	}
	if result.Base.Encodings == nil {
		result.Base.Encodings = defaults.Base.Encodings
	}
	if result.Base.OutEncoding == "" {
		result.Base.OutEncoding = defaults.Base.OutEncoding
	}
	if result.Base.Detector == "" {
		result.Base.Detector = defaults.Base.Detector
	}

	c, d := &result.Content, defaults.Content
	if c.Preprocess == nil {
		c.Preprocess = d.Preprocess
	}
	if c.Rows == (validation.DimensionRule{}) {
		c.Rows = d.Rows
	}
	if c.Cols == (validation.DimensionRule{}) {
		c.Cols = d.Cols
	}
	if c.RowContent == nil {
		c.RowContent = d.RowContent
	}
	if c.ColContent == nil {
		c.ColContent = d.ColContent
	}
	if c.BanList == nil {
		c.BanList = d.BanList
	}
	if c.NAMarkers == nil {
		c.NAMarkers = d.NAMarkers
	}
	if c.RowFixed == nil {
		c.RowFixed = d.RowFixed
	}
	if c.ColFixed == nil {
		c.ColFixed = d.ColFixed
	}
	if c.RowType == nil {
		c.RowType = d.RowType
	}
	if c.ColType == nil {
		c.ColType = d.ColType
	}
	if c.ValueType == "" {
		c.ValueType = d.ValueType
	}
	if c.BanNumbers == nil {
		c.BanNumbers = d.BanNumbers
	}
	if c.StandardizeTargets == nil {
		c.StandardizeTargets = d.StandardizeTargets
	}
	if c.Relation == nil {
		c.Relation = d.Relation
	}

	return result
}

// Lang returns the profile language, or fallback when unset.
func (p *Profile) Lang(fallback catalog.Language) (catalog.Language, error) {
	if p.Language == "" {
		return fallback, nil
	}
	return catalog.ParseLanguage(p.Language)
}

// BaseOptions converts the profile to options for File.CheckBase.
func (p *Profile) BaseOptions(out string) (validation.BaseOptions, error) {
	b := p.Base
	opts := validation.BaseOptions{
		SkipExist:    slices.Contains(b.Skip, "exist"),
		SkipSuffix:   slices.Contains(b.Skip, "suffix"),
		SkipEmpty:    slices.Contains(b.Skip, "empty"),
		SkipSize:     slices.Contains(b.Skip, "size"),
		SkipEncoding: slices.Contains(b.Skip, "encoding"),
		NoConvert:    b.NoConvert,
		Suffixes:     b.Suffixes,
		Allowed:      b.Encodings,
		Out:          out,
		OutEncoding:  b.OutEncoding,
	}
	if b.MaxSize != "" {
		limit, err := validation.ParseSize(b.MaxSize)
		if err != nil {
			return validation.BaseOptions{}, err
		}
		opts.MaxSize = &limit
	}
	switch b.Detector {
	case "content":
		opts.Detector = charset.NewContentDetector()
	default:
		opts.Detector = charset.NewUtilityDetector()
	}
	return opts, nil
}

// ContentOptions converts the profile to options for File.CheckContent,
// starting from the command line defaults. markers is the fallback list of
// missing-data markers when the profile sets none.
func (p *Profile) ContentOptions(outDir string, markers []string) (validation.ContentOptions, error) {
	c := p.Content
	opts := validation.DefaultContentOptions(outDir)
	if c.Preprocess != nil {
		opts.Preprocess = *c.Preprocess
	}
	opts.KeepSpace = c.KeepSpace
	opts.CheckSeparators = c.CheckSeparators
	opts.CheckHeader = c.CheckHeader
	opts.CheckDuplicateLines = c.CheckDuplicateLines
	opts.Rows, opts.Cols = c.Rows, c.Cols

	if c.RowContent != nil {
		opts.RowContent = *c.RowContent
	}
	if c.ColContent != nil {
		opts.ColContent = *c.ColContent
	}
	opts.BanList = c.BanList
	opts.NAMarkers = c.NAMarkers
	if opts.NAMarkers == nil {
		opts.NAMarkers = markers
	}
	opts.Read = tabular.ReadOptions{KeepSpace: c.KeepSpace, FillNA: c.FillNA, NAMarkers: opts.NAMarkers}

	opts.RowFixed, opts.ColFixed = c.RowFixed, c.ColFixed
	opts.RowType = c.RowType.rule()
	opts.ColType = c.ColType.rule()
	if c.ValueType != "" {
		vt, err := validation.ParseValueType(c.ValueType)
		if err != nil {
			return validation.ContentOptions{}, err
		}
		opts.ValueType = vt
	}
	opts.DropFirst = c.DropFirst
	opts.BanNumbers = c.BanNumbers
	opts.RowStandardize = c.RowStandardize
	opts.ColStandardize = c.ColStandardize
	opts.StandardizeTargets = c.StandardizeTargets
	opts.Relation = c.Relation
	return opts, nil
}

func (t *TypeProfile) rule() validation.TypeRule {
	if t == nil {
		return validation.TypeRule{}
	}
	rule := validation.TypeRule{Enabled: true, Targets: t.Targets, BanNumbers: t.BanNumbers}
	if t.Min != nil || t.Max != nil {
		r := validation.AnyNumber
		if t.Min != nil {
			r.Min = *t.Min
		}
		if t.Max != nil {
			r.Max = *t.Max
		}
		rule.Range = &r
	}
	return rule
}
