package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff Level = iota
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace flag value. Case is ignored.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("unknown trace level %q (want off|error|phase|detail|debug)", s)
}

// Scope is the granularity of a span. Coarser scopes have smaller values.
type Scope uint8

const (
	// ScopeRequest is one LSP message or one CLI batch.
	ScopeRequest Scope = iota + 1
	// ScopeDocument is the analysis of one document revision.
	ScopeDocument
	// ScopePass is one pass over a document: parse, symbols, check, lint.
	ScopePass
	// ScopeEvent is used for point events.
	ScopeEvent
)

func (s Scope) String() string {
	switch s {
	case ScopeRequest:
		return "request"
	case ScopeDocument:
		return "document"
	case ScopePass:
		return "pass"
	case ScopeEvent:
		return "event"
	}
	return "unknown"
}

// allows reports whether l records events of scope s. Failures pass at
// every level but off.
func (l Level) allows(s Scope, failed bool) bool {
	switch {
	case l == LevelOff:
		return false
	case failed:
		return true
	case l == LevelError:
		return false
	case l == LevelPhase:
		return s <= ScopeDocument
	case l == LevelDetail:
		return s <= ScopePass
	}
	return true
}
