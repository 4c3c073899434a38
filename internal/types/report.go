// Package types provides the report types written by the command line tool.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Message is one rendered check failure.
type Message struct {
	Kind  string `json:"kind"`
	Check string `json:"check"` // component.key of the catalog entry
	Text  string `json:"text"`
}

// Report is the outcome of checking one file.
type Report struct {
	File       string    `json:"file"`
	Output     string    `json:"output,omitempty"` // working copy left by preprocessing
	Passed     bool      `json:"passed"`
	Stage      string    `json:"stage,omitempty"` // stage that stopped the run
	DurationMs int64     `json:"duration_ms,omitempty"`
	Messages   []Message `json:"messages"`
}

// Reports is the document written for a whole run.
type Reports struct {
	RunID     string    `json:"run_id"`
	Language  string    `json:"language"`
	Profile   string    `json:"profile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Total     int       `json:"total"`
	Failed    int       `json:"failed"`
	Reports   []Report  `json:"reports"`
}

// Tally recomputes Total and Failed from the reports.
func (r *Reports) Tally() {
	r.Total = len(r.Reports)
	r.Failed = 0
	for _, rep := range r.Reports {
		if !rep.Passed {
			r.Failed++
		}
	}
}

// Passed reports whether every file passed.
func (r *Reports) Passed() bool {
	for _, rep := range r.Reports {
		if !rep.Passed {
			return false
		}
	}
	return true
}
