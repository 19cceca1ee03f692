package check

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of checking one expression.
type Status int

const (
	Passed Status = iota
	Failed
	Skipped
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "passed":
		return Passed, nil
	case "failed":
		return Failed, nil
	case "skipped":
		return Skipped, nil
	default:
		return 0, fmt.Errorf("unknown status %q", s)
	}
}

// Result holds the outcome for a single expression.
type Result struct {
	Index       int          `json:"index"`
	Expr        string       `json:"expr"`
	X           float64      `json:"x"`          // Evaluation point
	Value       float64      `json:"value"`      // f(x) from dual numbers
	Derivative  float64      `json:"derivative"` // f'(x) from dual numbers
	Status      Status       `json:"status"`
	Reason      string       `json:"reason,omitempty"` // Why the check failed or was skipped
	Comparisons []Comparison `json:"comparisons,omitempty"`
}

// Report summarises a run.
type Report struct {
	RunID   uuid.UUID `json:"run_id"`
	Started time.Time `json:"started"`
	Results []Result  `json:"results"`
	Passed  int       `json:"passed"`
	Failed  int       `json:"failed"`
	Skipped int       `json:"skipped"`
}

// NewReport creates an empty report with a fresh run id.
func NewReport() *Report {
	return &Report{RunID: uuid.New(), Started: time.Now()}
}

// Add appends a result and updates the counters.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case Passed:
		r.Passed++
	case Failed:
		r.Failed++
	case Skipped:
		r.Skipped++
	}
}

// Total returns the number of results.
func (r *Report) Total() int {
	return len(r.Results)
}

// OK reports whether no check failed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == Failed {
			out = append(out, res)
		}
	}
	return out
}
