package observ

import (
	"strings"
	"testing"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	stop := tm.Start("parse")
	stop("12 lines")
	stop("ignored")
	tm.Start("lint")("")

	r := tm.Report()
	if r.Runs != 1 || len(r.Phases) != 2 || r.Phases[0].Note != "12 lines" || r.Phases[1].Name != "lint" {
		t.Fatalf("unexpected report %+v", r)
	}
	if (&Timer{}).Report().Runs != 0 {
		t.Fatalf("empty timer must report no runs")
	}
}

func TestMergeAndFormat(t *testing.T) {
	a := Report{TotalMS: 3, Runs: 1, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "lint", DurationMS: 2}}}
	b := Report{TotalMS: 5, Runs: 1, Phases: []PhaseReport{{Name: "check", DurationMS: 1}, {Name: "parse", DurationMS: 4, Note: "x"}}}
	m := Merge(a, b)
	if m.TotalMS != 8 || m.Runs != 2 || len(m.Phases) != 3 {
		t.Fatalf("unexpected merge %+v", m)
	}
	if m.Phases[0].Name != "parse" || m.Phases[0].DurationMS != 5 || m.Phases[0].Note != "" || m.Phases[2].Name != "check" {
		t.Fatalf("unexpected merged phases %+v", m.Phases)
	}
	out := m.Format()
	for _, want := range []string{"timings:\n", "  parse          5.000 ms  (2.500 ms/doc)\n", "  total          8.000 ms", "  2 documents\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}
