package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/tabcheck/internal/catalog"
	"github.com/jonathan/tabcheck/internal/config"
	"github.com/jonathan/tabcheck/internal/observability"
	"github.com/jonathan/tabcheck/internal/validation"
)

const compCLI = "cli"

var cliKeys = []string{
	"passed",
	"failed",
	"encoding",
	"binary",
	"unknown_encoding",
	"written",
	"dims",
	"batch_summary",
}

// errChecksFailed makes the process exit non-zero after the failing
// messages have been printed.
var errChecksFailed = errors.New("checks failed")

// appState is built once per invocation from the environment, the profile
// and the root flags.
type appState struct {
	settings config.Settings
	profile  *config.Profile
	ctx      validation.Context
	sep      string
	logger   *slog.Logger
}

var app *appState

func setupApp(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("quiet") {
		settings.Quiet = rootQuiet
	}
	if flags.Changed("catalog") {
		settings.Catalog = rootCatalog
	}
	if flags.Changed("log-level") {
		settings.LogLevel = rootLogLevel
	}
	if flags.Changed("log-format") {
		settings.LogFormat = rootLogFormat
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	profile := &config.Profile{}
	if rootProfile != "" {
		profile, err = config.LoadProfile(rootProfile)
		if err != nil {
			return err
		}
	}

	lang, err := settings.Language()
	if err != nil {
		return err
	}
	if lang, err = profile.Lang(lang); err != nil {
		return err
	}
	if flags.Changed("lang") {
		if lang, err = catalog.ParseLanguage(rootLang); err != nil {
			return err
		}
	}

	sep := "\t"
	if profile.Sep != "" {
		sep = profile.Sep
	}
	if flags.Changed("sep") {
		sep = unescapeSep(rootSep)
	}
	if sep == "" {
		return fmt.Errorf("separator must not be empty")
	}

	cat, err := settings.LoadCatalog()
	if err != nil {
		return err
	}
	if err := cat.Require(lang, compCLI, cliKeys...); err != nil {
		return err
	}

	logger := observability.NewLogger(settings.Level(), settings.LogFormat, cmd.ErrOrStderr())
	ctx, err := validation.NewContext(cat,
		validation.WithLanguage(lang),
		validation.WithPrefix(rootPrefix),
		validation.WithQuiet(settings.Quiet),
		validation.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	app = &appState{
		settings: settings,
		profile:  profile,
		ctx:      ctx,
		sep:      sep,
		logger:   logger,
	}
	logger.Debug("configured", "command", cmd.Name(), "lang", lang, "profile", rootProfile)
	return nil
}

// unescapeSep turns the escapes a shell passes through literally into the
// characters they name.
func unescapeSep(s string) string {
	switch strings.ToLower(s) {
	case `\t`, "tab":
		return "\t"
	case "space":
		return " "
	case "comma":
		return ","
	}
	return s
}

// say prints a cli catalog message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (a *appState) say(w io.Writer, key string, fields map[string]string) {
	fmt.Fprintln(w, catalog.Format(a.ctx.Catalog.MustGet(a.ctx.Lang, compCLI, key), fields))
}

// report prints every issue followed by the pass or fail line for file, and
// returns errChecksFailed when there were issues.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (a *appState) report(w io.Writer, file string, issues validation.Issues) error {
	if issues.OK() {
		a.say(w, "passed", map[string]string{"File": file})
		return nil
	}
	for _, msg := range a.ctx.Render(issues) {
		fmt.Fprintln(w, msg)
	}
	a.say(w, "failed", map[string]string{"File": file, "Count": fmt.Sprint(len(issues))})
	return errChecksFailed
}

// writeLog writes the rendered issues to an error log when path is set.
func (a *appState) writeLog(path string, issues validation.Issues) error {
	if path == "" || issues.OK() {
		return nil
	}
	return newTools().WriteLog(a.ctx.Render(issues), path, true)
}
