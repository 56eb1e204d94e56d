package models

import (
	"sync"
	"time"
)

// OutcomeStatus is the terminal state of one instrument in one run.
type OutcomeStatus string

const (
	StatusStored  OutcomeStatus = "stored"
	StatusSkipped OutcomeStatus = "skipped"
	StatusFailed  OutcomeStatus = "failed"
)

// Outcome records what happened to an instrument during a run.
type Outcome struct {
	Status         OutcomeStatus `json:"status"`
	Price          float64       `json:"price,omitempty"`
	AlreadyPresent bool          `json:"already_present,omitempty"`
	Reason         string        `json:"reason,omitempty"`
	ErrorKind      string        `json:"error_kind,omitempty"`
	Err            error         `json:"-"`
}

// RunReport is the run context: target date plus per-instrument results.
// Safe for concurrent use by the fetch goroutines of one run.
type RunReport struct {
	RunID      string             `json:"run_id"`
	TargetDate time.Time          `json:"target_date"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Aborted    string             `json:"aborted,omitempty"`
	Outcomes   map[string]Outcome `json:"outcomes"`
	Pruned     map[string]int64   `json:"pruned"`

	mu sync.Mutex
}

// NewRunReport starts an empty report.
func NewRunReport(runID string, target, started time.Time) *RunReport {
	return &RunReport{
		RunID:      runID,
		TargetDate: target,
		StartedAt:  started,
		Outcomes:   make(map[string]Outcome),
		Pruned:     make(map[string]int64),
	}
}

// Stored marks key as persisted (or already present) at price.
func (r *RunReport) Stored(key string, price float64, res UpsertResult) {
	r.set(key, Outcome{Status: StatusStored, Price: price, AlreadyPresent: res == UpsertAlreadyPresent})
}

// Skipped marks key as intentionally not attempted.
func (r *RunReport) Skipped(key, reason string) {
	r.set(key, Outcome{Status: StatusSkipped, Reason: reason})
}

// Failed marks key as attempted and failed with err.
func (r *RunReport) Failed(key string, err error) {
	o := Outcome{Status: StatusFailed, Err: err, ErrorKind: ErrorKind(err)}
	if err != nil {
		o.Reason = err.Error()
	}
	r.set(key, o)
}

// SkipMissing marks every key without an outcome as skipped.
func (r *RunReport) SkipMissing(keys []string, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		if _, ok := r.Outcomes[k]; !ok {
			r.Outcomes[k] = Outcome{Status: StatusSkipped, Reason: reason}
		}
	}
}

// SetPruned records how many rows retention removed for key.
func (r *RunReport) SetPruned(key string, n int64) {
	r.mu.Lock()
	r.Pruned[key] = n
	r.mu.Unlock()
}

// Outcome returns key's outcome, if any.
func (r *RunReport) Outcome(key string) (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.Outcomes[key]
	return o, ok
}

// Counts tallies outcomes by status.
func (r *RunReport) Counts() map[OutcomeStatus]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[OutcomeStatus]int, 3)
	for _, o := range r.Outcomes {
		out[o.Status]++
	}
	return out
}

func (r *RunReport) set(key string, o Outcome) {
	r.mu.Lock()
	r.Outcomes[key] = o
	r.mu.Unlock()
}

// RunSummary is a lock-free copy of a RunReport for serialization.
type RunSummary struct {
	RunID      string             `json:"run_id"`
	TargetDate string             `json:"target_date"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Aborted    string             `json:"aborted,omitempty"`
	Stored     int                `json:"stored"`
	Skipped    int                `json:"skipped"`
	Failed     int                `json:"failed"`
	Outcomes   map[string]Outcome `json:"outcomes"`
	Pruned     map[string]int64   `json:"pruned"`
}

// Summary copies the report under its lock.
func (r *RunReport) Summary() RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := RunSummary{
		RunID:      r.RunID,
		TargetDate: r.TargetDate.Format("2006-01-02"),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Aborted:    r.Aborted,
		Outcomes:   make(map[string]Outcome, len(r.Outcomes)),
		Pruned:     make(map[string]int64, len(r.Pruned)),
	}
	for k, o := range r.Outcomes {
		s.Outcomes[k] = o
		switch o.Status {
		case StatusStored:
			s.Stored++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	for k, n := range r.Pruned {
		s.Pruned[k] = n
	}
	return s
}

// Finish stamps the finish time.
func (r *RunReport) Finish(at time.Time) {
	r.mu.Lock()
	r.FinishedAt = at
	r.mu.Unlock()
}

// Abort records why the remaining fetch work was abandoned.
func (r *RunReport) Abort(reason string) {
	r.mu.Lock()
	if r.Aborted == "" {
		r.Aborted = reason
	}
	r.mu.Unlock()
}

// IsAborted reports whether Abort was called.
func (r *RunReport) IsAborted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Aborted != ""
}
