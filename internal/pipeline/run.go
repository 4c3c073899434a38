// Package pipeline provides the batch runner that validates many delimited
// files with the base checks followed by the staged content checks.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/tabcheck/internal/charset"
	"github.com/jonathan/tabcheck/internal/types"
	"github.com/jonathan/tabcheck/internal/validation"
)

// StageBase names the base checks in reports.
const StageBase = "base"

// DefaultWorkers bounds concurrent file checks when Options.Workers is unset.
const DefaultWorkers = 4

// ProgressEvent represents a progress update during a batch run
type ProgressEvent struct {
	RunID  string        `json:"run_id"`
	Index  int           `json:"index"`
	Total  int           `json:"total"`
	Report *types.Report `json:"report"`
}

// ProgressCallback is called after each file has been checked. Calls may
// come from several goroutines.
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for a batch run
type Options struct {
	Files []string
	Sep   string

	Context validation.Context
	// Base is applied to every file; Out is replaced per file by the
	// default conversion output.
	Base     validation.BaseOptions
	SkipBase bool
	// Content is applied to every file that passed the base checks. Working
	// copies go to OutDir, which defaults to a temporary directory.
	Content     validation.ContentOptions
	SkipContent bool

	Workers    int
	Profile    string
	OnProgress ProgressCallback
}

// Run checks every file and returns the reports in input order. A path given
// more than once is checked once. Files are
// checked independently; a failing file never stops the others. Run only
// returns an error when the context is cancelled or no working directory
// can be created.
func Run(ctx context.Context, opts Options) (*types.Reports, error) {
	runID := uuid.New().String()
	log := opts.Context.Log().With("run_id", runID)

	if !opts.SkipContent && opts.Content.Preprocess && opts.Content.OutDir == "" {
		dir, err := os.MkdirTemp("", "tabcheck-"+runID[:8]+"-")
		if err != nil {
			return nil, fmt.Errorf("failed to create working directory: %w", err)
		}
		opts.Content.OutDir = dir
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	opts.Files = uniqueFiles(opts.Files)

	names := workingNames(opts.Files)
	reports := make([]types.Report, len(opts.Files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range opts.Files {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			report := checkFile(opts, path, names[i])
			reports[i] = report
			log.Debug("file checked", "file", path, "passed", report.Passed, "stage", report.Stage)
			if opts.OnProgress != nil {
				opts.OnProgress(ProgressEvent{RunID: runID, Index: i, Total: len(opts.Files), Report: &reports[i]})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch run cancelled: %w", err)
	}

	result := &types.Reports{
		RunID:     runID,
		Language:  string(opts.Context.Lang),
		Profile:   opts.Profile,
		CreatedAt: time.Now().UTC(),
		Reports:   reports,
	}
	result.Tally()
	log.Info("batch finished", "total", result.Total, "failed", result.Failed)
	return result, nil
}

// checkFile runs the base stage and, when it passes, the content stage on
// one file.
func checkFile(opts Options, path, name string) types.Report {
	start := time.Now()
	report := types.Report{File: path, Messages: []types.Message{}}

	input := path
	if !opts.SkipBase {
		base := opts.Base
		base.Out = charset.DefaultOutput(path)
		issues := validation.NewFile(opts.Context, path, opts.Sep).CheckBase(base)
		if !issues.OK() {
			report.Stage = StageBase
			report.Messages = Messages(opts.Context, issues)
			report.DurationMs = time.Since(start).Milliseconds()
			return report
		}
		if converted(base) {
			input = base.Out
			report.Output = base.Out
		}
	}

	if !opts.SkipContent {
		content := opts.Content
		content.NewName = name
		res := validation.NewFile(opts.Context, input, opts.Sep).CheckContent(content)
		if content.Preprocess {
			report.Output = res.Path
		}
		if !res.OK() {
			report.Stage = res.Stage
			report.Messages = Messages(opts.Context, res.Issues)
		}
	}

	report.Passed = len(report.Messages) == 0
	report.DurationMs = time.Since(start).Milliseconds()
	return report
}

// converted reports whether a passing CheckBase wrote a converted copy.
func converted(opts validation.BaseOptions) bool {
	if opts.SkipEncoding || opts.NoConvert {
		return false
	}
	if opts.Allowed != nil && len(opts.Allowed) != 1 {
		return false
	}
	_, err := os.Stat(opts.Out)
	return err == nil
}

// uniqueFiles drops repeated paths, keeping the first occurrence. Checking a
// path twice would convert it into the same output concurrently.
func uniqueFiles(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		key := filepath.Clean(f)
		if abs, err := filepath.Abs(f); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

// workingNames returns the working copy name of each file, prefixing the
// position when base names collide.
func workingNames(files []string) []string {
	seen := make(map[string]int, len(files))
	for _, f := range files {
		seen[filepath.Base(f)]++
	}
	names := make([]string, len(files))
	for i, f := range files {
		base := filepath.Base(f)
		if seen[base] > 1 {
			base = fmt.Sprintf("%d_%s", i+1, base)
		}
		names[i] = base
	}
	return names
}

// Messages renders issues for a report.
func Messages(ctx validation.Context, issues validation.Issues) []types.Message {
	msgs := make([]types.Message, 0, len(issues))
	for _, i := range issues {
		msgs = append(msgs, types.Message{
			Kind:  string(i.Kind),
			Check: i.Component + "." + i.Key,
			Text:  ctx.Message(i),
		})
	}
	return msgs
}
