// Package config holds the immutable session configuration. A Config is
// built once at startup, validated, and then shared read-only by every
// task in the pipeline.
package config

import (
	"fmt"
	"strings"
)

// ReadMode selects the read primitive used for the whole session.
type ReadMode int

const (
	// ReadModeLine reads one line at a time, delimiter included.
	ReadModeLine ReadMode = iota
	// ReadModeHex reads fixed-size raw chunks for hex dumping.
	ReadModeHex
)

func (m ReadMode) String() string {
	if m == ReadModeHex {
		return "hex"
	}
	return "line"
}

// TimestampMode selects the prefix attached to each output item.
type TimestampMode int

const (
	TimestampOff TimestampMode = iota
	// TimestampFull is a full UTC datetime.
	TimestampFull
	// TimestampShort is UTC time of day with fractional seconds.
	TimestampShort
)

func (m TimestampMode) String() string {
	switch m {
	case TimestampFull:
		return "full"
	case TimestampShort:
		return "short"
	default:
		return "off"
	}
}

// NewlineMode is the operator-input line-ending policy.
type NewlineMode int

const (
	// NewlinePass forwards operator lines byte-for-byte.
	NewlinePass NewlineMode = iota
	NewlineCR
	NewlineLF
	NewlineCRLF
	// NewlineNone strips the terminator and appends nothing.
	NewlineNone
)

var newlineNames = map[NewlineMode]string{
	NewlinePass: "pass",
	NewlineCR:   "cr",
	NewlineLF:   "lf",
	NewlineCRLF: "crlf",
	NewlineNone: "none",
}

var newlineTerminators = map[NewlineMode]string{
	NewlineCR:   "\r",
	NewlineLF:   "\n",
	NewlineCRLF: "\r\n",
	NewlineNone: "",
}

// ParseNewlineMode resolves a mode name to its tagged value.
func ParseNewlineMode(name string) (NewlineMode, error) {
	for mode, n := range newlineNames {
		if n == name {
			return mode, nil
		}
	}
	return NewlinePass, fmt.Errorf("unknown newline mode %q (want pass, cr, lf, crlf or none)", name)
}

func (m NewlineMode) String() string { return newlineNames[m] }

// Apply rewrites one operator input line according to the mode. Pass
// returns the line unmodified, terminator and all; every other mode
// strips trailing whitespace and appends the mode's terminator.
func (m NewlineMode) Apply(line string) []byte {
	if m == NewlinePass {
		return []byte(line)
	}
	return []byte(strings.TrimRight(line, " \t\r\n\v\f") + newlineTerminators[m])
}

// ChunkSize is the fixed read size in hex mode.
const ChunkSize = 16

// Config is the full session configuration. Immutable after Validate.
type Config struct {
	Port      string
	BaudRate  int
	ReadMode  ReadMode
	Newline   NewlineMode
	Blacklist []byte // bytes dropped from line output; nil disables filtering
	SkipBytes int
	SkipLines int
	Timestamp TimestampMode
	ToggleDTR bool
	Verbose   bool
}

// Summary renders the parsed configuration for the --verbose echo.
func (c Config) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "port: %s\n", c.Port)
	fmt.Fprintf(&b, "baudrate: %d\n", c.BaudRate)
	fmt.Fprintf(&b, "read mode: %s\n", c.ReadMode)
	fmt.Fprintf(&b, "newline: %s\n", c.Newline)
	if c.Blacklist != nil {
		fmt.Fprintf(&b, "remove: %q\n", c.Blacklist)
	}
	if c.SkipBytes > 0 || c.SkipLines > 0 {
		fmt.Fprintf(&b, "skip: %d bytes, %d lines\n", c.SkipBytes, c.SkipLines)
	}
	fmt.Fprintf(&b, "timestamp: %s\n", c.Timestamp)
	fmt.Fprintf(&b, "toggle DTR: %t", c.ToggleDTR)
	return b.String()
}
