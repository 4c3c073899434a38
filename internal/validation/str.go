package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	compCommon = "common"
	compStr    = "str"
)

// Default character policy for single strings: start with a letter or a
// non-zero digit, then letters, digits, dots and hyphens only.
var (
	DefaultStrAllow   = regexp.MustCompile(`^[A-Za-z1-9][A-Za-z0-9.-]*$`)
	DefaultStrBodyBan = regexp.MustCompile(`[^A-Za-z0-9.-]`)
	DefaultStrHeadBan = regexp.MustCompile(`^[^A-Za-z1-9]`)
	DefaultTailBan    = regexp.MustCompile(`[^A-Za-z0-9]$`)
	foreignScript     = regexp.MustCompile(`[\x{4E00}-\x{9FA5}]`)
)

// FormatRule describes an allowed character pattern and the patterns used to
// explain a mismatch. Nil patterns fall back to the defaults of the checker.
type FormatRule struct {
	Allow     *regexp.Regexp
	BodyBan   *regexp.Regexp
	HeadBan   *regexp.Regexp
	TailBan   *regexp.Regexp
	SkipHead  bool
	CheckTail bool
}

func (f FormatRule) withDefaults(allow, body, head *regexp.Regexp) FormatRule {
	if f.Allow == nil {
		f.Allow = allow
		if f.BodyBan == nil {
			f.BodyBan = body
		}
		if f.HeadBan == nil {
			f.HeadBan = head
		}
		if f.TailBan == nil {
			f.TailBan = DefaultTailBan
		}
	}
	return f
}

// Str checks a single string value.
type Str struct {
	ctx     Context
	value   string
	display string
}

// NewStr builds a string checker.
func NewStr(ctx Context, value string) *Str {
	return &Str{ctx: ctx, value: value}
}

// ShowAs replaces the value in messages with display, e.g. to hide content.
func (s *Str) ShowAs(display string) *Str {
	s.display = display
	return s
}

func (s *Str) shown() string {
	if s.display != "" {
		return s.display
	}
	return s.value
}

// Length checks the rune count of the value.
func (s *Str) Length(rule LengthRule) *Issue {
	s.ctx.Trace(compStr, "length")
	n := utf8.RuneCountInString(s.value)
	fields := Fields{"Value": s.shown(), "Actual": n}
	switch rule.violation(n) {
	case "exact":
		fields["Expected"] = *rule.Exact
		return s.ctx.NewIssue(KindValue, compStr, "length_exact", fields)
	case "over":
		fields["Max"] = rule.UpperBound()
		return s.ctx.NewIssue(KindValue, compStr, "length_over", fields)
	case "under":
		fields["Min"] = rule.Min
		return s.ctx.NewIssue(KindValue, compStr, "length_under", fields)
	}
	return nil
}

// Format checks the value against rule. On mismatch it reports illegal body
// characters, an illegal first character and, when enabled, an illegal last
// character. A mismatch no pattern explains yields a generic message.
func (s *Str) Format(rule FormatRule) Issues {
	s.ctx.Trace(compStr, "format")
	rule = rule.withDefaults(DefaultStrAllow, DefaultStrBodyBan, DefaultStrHeadBan)
	return formatIssues(s.ctx, s.value, s.shown(), rule)
}

func formatIssues(ctx Context, value, shown string, rule FormatRule) Issues {
	if rule.Allow.MatchString(value) {
		return nil
	}
	var issues Issues
	if rule.BodyBan != nil {
		if found := rule.BodyBan.FindAllString(value, -1); len(found) > 0 {
			issues.Add(ctx.NewIssue(KindValue, compStr, "illegal_chars", Fields{"Value": shown, "Chars": found}))
		}
	}
	if !rule.SkipHead && rule.HeadBan != nil {
		if found := rule.HeadBan.FindAllString(value, -1); len(found) > 0 {
			issues.Add(ctx.NewIssue(KindValue, compStr, "illegal_head", Fields{"Value": shown, "Chars": found}))
		}
	}
	if rule.CheckTail && rule.TailBan != nil {
		if found := rule.TailBan.FindAllString(value, -1); len(found) > 0 {
			issues.Add(ctx.NewIssue(KindValue, compStr, "illegal_tail", Fields{"Value": shown, "Chars": found}))
		}
	}
	if len(issues) == 0 {
		issues.Add(ctx.NewIssue(KindValue, compStr, "illegal_unknown", Fields{"Value": shown}))
	}
	return issues
}

// ForeignScript flags CJK unified ideographs in the value.
func (s *Str) ForeignScript() *Issue {
	s.ctx.Trace(compStr, "foreign_script")
	found := foreignScript.FindAllString(s.value, -1)
	if len(found) == 0 {
		return nil
	}
	return s.ctx.NewIssue(KindValue, compStr, "foreign_script", Fields{"Value": s.shown(), "Chars": found})
}

// Banned flags every listed substring present in the value.
func (s *Str) Banned(ban []string) *Issue {
	s.ctx.Trace(compStr, "banned")
	var found []string
	for _, b := range ban {
		if strings.Contains(s.value, b) {
			found = append(found, b)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return s.ctx.NewIssue(KindContent, compStr, "banned", Fields{"Value": s.shown(), "Banned": found})
}

// StrCheckOptions selects the checks Str.Check runs.
type StrCheckOptions struct {
	SkipLength   bool
	SkipFormat   bool
	AllowForeign bool
	AllowSpace   bool
	Length       *LengthRule
	Format       FormatRule
	Ban          []string
}

// Check runs the selected checks and returns every failure in order. When
// foreign script is allowed, ideographs are replaced by a letter before the
// format check; allowed spaces are treated the same way.
func (s *Str) Check(opts StrCheckOptions) Issues {
	s.ctx.Trace(compStr, "check")
	work := s.value
	if opts.AllowForeign {
		work = foreignScript.ReplaceAllString(work, "a")
	}
	if opts.AllowSpace {
		work = strings.ReplaceAll(work, " ", "b")
	}
	inner := &Str{ctx: s.ctx.quiet(), value: work, display: s.shown()}

	var issues Issues
	if !opts.SkipLength {
		rule := DefaultStrLength
		if opts.Length != nil {
			rule = *opts.Length
		}
		issues.Add(inner.Length(rule))
	}
	if !opts.SkipFormat {
		issues.Extend(inner.Format(opts.Format))
	}
	if !opts.AllowForeign {
		issues.Add(inner.ForeignScript())
	}
	if opts.Ban != nil {
		issues.Add(inner.Banned(opts.Ban))
	}
	return issues
}
