package driver

import "time"

// Stage names the step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota
	StageAnalyze
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageAnalyze:
		return "analyze"
	}
	return "unknown"
}

// Status reports where a file is within a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

// Event describes a progress boundary for one file. Events are sent on
// Options.Events when it is non-nil; CheckFiles never closes the channel.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}
