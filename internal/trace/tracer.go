package trace

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	Close() error
}

// Config selects the level, format and destination of a tracer.
type Config struct {
	Level  Level
	Format Format
	// Output takes precedence over OutputPath.
	Output io.Writer
	// OutputPath is a file to create; "" and "-" mean stderr.
	OutputPath string
}

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	w, closer := cfg.Output, io.Closer(nil)
	if w == nil {
		if cfg.OutputPath == "" || cfg.OutputPath == "-" {
			w = os.Stderr
		} else {
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("trace output: %w", err)
			}
			w, closer = f, f
		}
	}
	return &writerTracer{w: w, closer: closer, level: cfg.Level, format: cfg.Format}, nil
}

// writerTracer encodes each event straight to w.
type writerTracer struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	level  Level
	format Format
}

func (t *writerTracer) Emit(ev *Event) {
	if !t.level.allows(ev.Scope, ev.Kind == KindFail) {
		return
	}
	line := t.format.Encode(ev)
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.w.Write(line)
}

func (t *writerTracer) Level() Level { return t.level }

// Close closes the output file opened by New. Writers passed in Config
// are left open.
func (t *writerTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closer == nil {
		return nil
	}
	err := t.closer.Close()
	t.closer = nil
	return err
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Close() error { return nil }

// Nop drops every event.
var Nop Tracer = nopTracer{}
