package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the value of a tri-state flag such as --color or
// --progress.
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

func parseSwitch(flag, value string) (switchMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on":
		return switchOn, nil
	case "off":
		return switchOff, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled resolves auto by asking whether f is a terminal.
func (m switchMode) enabled(f *os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return isTerminal(f)
}
