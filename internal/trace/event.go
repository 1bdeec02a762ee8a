package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind is the type of an event.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindFail
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindFail:
		return "fail"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Attr is one key/value pair attached to an end event.
type Attr struct {
	Key   string
	Value string
}

// Event is one line of trace output.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	ID       uint64
	Parent   uint64
	Depth    int
	Name     string
	Detail   string
	Duration time.Duration
	Attrs    []Attr
}

// Format selects the encoding of events.
type Format uint8

const (
	FormatText Format = iota
	FormatNDJSON
)

// ParseFormat reads a --trace-format flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatText, fmt.Errorf("unknown trace format %q (want text|ndjson)", s)
}

// Encode renders ev as one newline-terminated line.
func (f Format) Encode(ev *Event) []byte {
	if f == FormatNDJSON {
		return encodeJSON(ev)
	}
	return encodeText(ev)
}

type jsonEvent struct {
	Time   string            `json:"time"`
	Seq    uint64            `json:"seq"`
	Kind   string            `json:"kind"`
	Scope  string            `json:"scope"`
	ID     uint64            `json:"id,omitempty"`
	Parent uint64            `json:"parent,omitempty"`
	Name   string            `json:"name"`
	Detail string            `json:"detail,omitempty"`
	Micros int64             `json:"us,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

func encodeJSON(ev *Event) []byte {
	j := jsonEvent{
		Time:   ev.Time.UTC().Format(time.RFC3339Nano),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		ID:     ev.ID,
		Parent: ev.Parent,
		Name:   ev.Name,
		Detail: ev.Detail,
		Micros: ev.Duration.Microseconds(),
	}
	if len(ev.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			j.Attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(j)
	if err != nil {
		data = fmt.Appendf(nil, `{"seq":%d,"error":%q}`, ev.Seq, err.Error())
	}
	return append(data, '\n')
}

// encodeText writes "hh:mm:ss.mmm <indent>kind scope:name [dur] (detail) k=v".
func encodeText(ev *Event) []byte {
	var sb strings.Builder
	sb.WriteString(ev.Time.Format("15:04:05.000"))
	sb.WriteByte(' ')
	sb.WriteString(strings.Repeat("  ", ev.Depth))
	sb.WriteString(ev.Kind.String())
	sb.WriteByte(' ')
	sb.WriteString(ev.Scope.String())
	sb.WriteByte(':')
	sb.WriteString(ev.Name)
	if ev.Kind == KindEnd || ev.Kind == KindFail {
		fmt.Fprintf(&sb, " [%s]", ev.Duration.Round(time.Microsecond))
	}
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	for _, a := range ev.Attrs {
		fmt.Fprintf(&sb, " %s=%s", a.Key, a.Value)
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
