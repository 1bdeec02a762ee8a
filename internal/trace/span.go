package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var seq, spanIDs atomic.Uint64

type tracerKey struct{}

type spanKey struct{}

// WithTracer returns a context carrying t. A nil t is replaced by Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

func parentOf(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// Span is an open interval of work. The zero value and nil are inert.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	depth   int
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
	done    bool
}

// Start opens a span under the tracer and span carried by ctx and returns
// a context in which the new span is the parent. Spans are opened even
// when the level hides them so a later Fail is still reported.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	t := FromContext(ctx)
	if t.Level() == LevelOff {
		return &Span{}, ctx
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	if p := parentOf(ctx); p != nil {
		s.parent, s.depth = p.id, p.depth+1
	}
	s.emit(KindBegin, "", 0)
	return s, context.WithValue(ctx, spanKey{}, s)
}

// Set attaches an attribute reported with the closing event.
func (s *Span) Set(key, value string) *Span {
	if s != nil && s.tracer != nil {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End closes the span and returns its duration. Only the first End or
// Fail is recorded.
func (s *Span) End(detail string) time.Duration {
	return s.finish(KindEnd, detail)
}

// Fail closes the span with err as its detail. Failures are reported at
// every level except off.
func (s *Span) Fail(err error) time.Duration {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return s.finish(KindFail, detail)
}

// ID is zero for spans that record nothing.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) finish(kind Kind, detail string) time.Duration {
	if s == nil || s.tracer == nil || s.done {
		return 0
	}
	s.done = true
	dur := time.Since(s.started)
	s.emit(kind, detail, dur)
	return dur
}

func (s *Span) emit(kind Kind, detail string, dur time.Duration) {
	ev := &Event{
		Time:     time.Now(),
		Seq:      seq.Add(1),
		Kind:     kind,
		Scope:    s.scope,
		ID:       s.id,
		Parent:   s.parent,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
		Duration: dur,
	}
	if kind != KindBegin {
		ev.Attrs = s.attrs
	}
	s.tracer.Emit(ev)
}

// Point records an instant event under the span carried by ctx.
func Point(ctx context.Context, name, detail string) {
	t := FromContext(ctx)
	if !t.Level().allows(ScopeEvent, false) {
		return
	}
	ev := &Event{
		Time:   time.Now(),
		Seq:    seq.Add(1),
		Kind:   KindPoint,
		Scope:  ScopeEvent,
		Name:   name,
		Detail: detail,
	}
	if p := parentOf(ctx); p != nil {
		ev.Parent, ev.Depth = p.id, p.depth+1
	}
	t.Emit(ev)
}
