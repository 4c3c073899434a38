package validation

import (
	"log/slog"

	"github.com/jonathan/tabcheck/internal/catalog"
)

// Context carries the configuration shared by every check of one run: the
// catalog, the display language, a prefix prepended to every message and the
// quiet flag that suppresses call tracing. Checks never mutate it.
type Context struct {
	Catalog *catalog.Catalog
	Lang    catalog.Language
	Prefix  string
	Quiet   bool
	Logger  *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithLanguage sets the display language.
func WithLanguage(lang catalog.Language) Option {
	return func(c *Context) { c.Lang = lang }
}

// WithPrefix sets the text prepended to every message.
func WithPrefix(prefix string) Option {
	return func(c *Context) { c.Prefix = prefix }
}

// WithQuiet disables call tracing.
func WithQuiet(quiet bool) Option {
	return func(c *Context) { c.Quiet = quiet }
}

// WithLogger sets the logger used for tracing and fault reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// NewContext builds a Context and verifies that the catalog defines every
// message the checks can produce for the selected language.
func NewContext(cat *catalog.Catalog, opts ...Option) (Context, error) {
	c := Context{
		Catalog: cat,
		Lang:    catalog.Primary,
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if cat == nil {
		return Context{}, &catalog.ConfigError{Language: c.Lang, Message: "no catalog provided"}
	}
	for component, keys := range requiredKeys {
		if err := cat.Require(c.Lang, component, keys...); err != nil {
			return Context{}, err
		}
	}
	return c, nil
}

// WithPrefix returns a copy of the context using a different message prefix.
func (c Context) WithPrefix(prefix string) Context {
	c.Prefix = prefix
	return c
}

// Bare returns a copy without a prefix and with tracing off, for checks
// whose messages are embedded in a larger message.
func (c Context) Bare() Context {
	c.Prefix = ""
	c.Quiet = true
	return c
}

// Render turns issues into messages. It returns nil when there are none.
func (c Context) Render(issues Issues) []string {
	if len(issues) == 0 {
		return nil
	}
	r := renderer{cat: c.Catalog, lang: c.Lang}
	msgs := make([]string, 0, len(issues))
	for _, i := range issues {
		msgs = append(msgs, r.issue(i))
	}
	return msgs
}

// Message renders a single issue; nil renders as the empty string.
func (c Context) Message(i *Issue) string {
	return renderer{cat: c.Catalog, lang: c.Lang}.issue(i)
}

// Text renders a catalog reference in the context language.
func (c Context) Text(ref catalog.Ref) string {
	return renderer{cat: c.Catalog, lang: c.Lang}.ref(ref)
}

// NewIssue builds an issue carrying the context prefix.
func (c Context) NewIssue(kind Kind, component, key string, fields Fields) *Issue {
	return &Issue{Kind: kind, Component: component, Key: key, Fields: fields, Prefix: c.Prefix}
}

// Trace records a check invocation unless the context is quiet.
func (c Context) Trace(component, check string) {
	if c.Quiet {
		return
	}
	c.Log().Debug("running check", "component", component, "check", check)
}

// Fault logs an unexpected error and returns the generic failure message of
// the check, keyed "<check>_failed" in the component.
func (c Context) Fault(component, check string, err error) *Issue {
	c.Log().Error("check failed unexpectedly",
		"component", component,
		"check", check,
		"error", err)
	return c.NewIssue(KindInternal, component, check+"_failed", nil)
}

// Log returns the context logger, falling back to the default logger.
func (c Context) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c Context) quiet() Context {
	c.Quiet = true
	return c
}
