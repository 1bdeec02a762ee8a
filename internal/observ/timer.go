// Package observ measures how long each analysis pass takes.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Timer records consecutive phases of one document analysis. It is not
// safe for concurrent use; each goroutine times its own document and the
// reports are merged afterwards.
type Timer struct {
	phases []PhaseReport
	total  time.Duration
}

func NewTimer() *Timer { return &Timer{} }

// Start opens a phase. The returned func closes it with an optional note;
// calling it again has no effect.
func (t *Timer) Start(name string) (stop func(note string)) {
	began := time.Now()
	t.phases = append(t.phases, PhaseReport{Name: name})
	i := len(t.phases) - 1
	done := false
	return func(note string) {
		if done {
			return
		}
		done = true
		d := time.Since(began)
		t.total += d
		t.phases[i].DurationMS = millis(d)
		t.phases[i].Note = note
	}
}

// PhaseReport is the serialisable form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the timing of one document, or the sum over Runs documents
// after Merge.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Runs    int           `json:"runs"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	return Report{
		TotalMS: millis(t.total),
		Runs:    1,
		Phases:  append([]PhaseReport(nil), t.phases...),
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Merge sums reports phase by phase in order of first appearance. Notes
// describe single runs and are dropped.
func Merge(reports ...Report) Report {
	var out Report
	at := make(map[string]int)
	for _, r := range reports {
		for _, p := range r.Phases {
			i, ok := at[p.Name]
			if !ok {
				i = len(out.Phases)
				at[p.Name] = i
				out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
			}
			out.Phases[i].DurationMS += p.DurationMS
		}
		out.TotalMS += r.TotalMS
		out.Runs += r.Runs
	}
	return out
}

// Format renders the report for --timings. Merged reports also show the
// mean per document.
func (r Report) Format() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-10s %9.3f ms", name, ms)
		if r.Runs > 1 {
			fmt.Fprintf(&sb, "  (%.3f ms/doc)", ms/float64(r.Runs))
		}
		if note != "" {
			sb.WriteString("  " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	if r.Runs > 1 {
		fmt.Fprintf(&sb, "  %d documents\n", r.Runs)
	}
	return sb.String()
}
