package monitor

import (
	"sync"
	"time"
)

// Op labels a timed operation kind.
type Op string

const (
	OpFetch Op = "fetch"
	OpDiff  Op = "diff"
)

// Timing is one recorded operation.
type Timing struct {
	Op       Op            `json:"op"`
	Schema   string        `json:"schema,omitempty"`
	Table    string        `json:"table"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration"`
}

// Report accumulates timings for one run. Safe for concurrent appends.
type Report struct {
	mu      sync.Mutex
	timings []Timing
}

// NewReport returns an empty accumulator for a single run.
func NewReport() *Report {
	return &Report{}
}

// Record appends one timing.
func (r *Report) Record(t Timing) {
	r.mu.Lock()
	r.timings = append(r.timings, t)
	r.mu.Unlock()
}

// Timings returns a copy of everything recorded so far.
func (r *Report) Timings() []Timing {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Timing, len(r.timings))
	copy(out, r.timings)
	return out
}

// Total returns the summed duration of all recorded operations of the
// given kind.
func (r *Report) Total(op Op) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total time.Duration
	for _, t := range r.timings {
		if t.Op == op {
			total += t.Duration
		}
	}
	return total
}
