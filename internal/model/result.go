package model

import "time"

// NoExitCode is used in Result.ExitCode when the tool never ran
const NoExitCode = -1

// Result describes the outcome of one link download
type Result struct {
	Link       Link
	URL        string
	Status     Status
	ExitCode   int       // tool exit code, NoExitCode if the tool was not started
	Err        error     // launch or exit error, nil on success
	StartedAt  time.Time // when the tool was started
	FinishedAt time.Time // when the tool exited
}

// Duration returns how long the tool ran, or zero if the result is not finished
func (r *Result) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary aggregates the results of one batch run
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Add accounts a finished result in the summary
func (s *Summary) Add(r *Result) {
	if r == nil {
		return
	}
	switch r.Status {
	case StatusSucceeded:
		s.Succeeded++
	case StatusFailed:
		s.Failed++
	}
}

// Attempted returns the number of links the tool was invoked for
func (s Summary) Attempted() int {
	return s.Succeeded + s.Failed
}
