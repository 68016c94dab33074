// Package ports enumerates attached serial devices and resolves which
// one a session should talk to.
package ports

import (
	"errors"
	"fmt"
	"regexp"

	"go.bug.st/serial/enumerator"
)

// NoHardware marks ports enumerated without an identifiable hardware
// description. Ports with real hardware info are the ones likely to be a
// USB serial bridge.
const NoHardware = "n/a"

// Fallback connection parameters when nothing better is detected.
const (
	DefaultPath     = "/dev/ttyUSB0"
	DefaultBaudRate = 57600
)

var (
	ErrPatternNotFound  = errors.New("no port matches pattern")
	ErrPatternAmbiguous = errors.New("pattern matches more than one port")
)

// Descriptor is an immutable snapshot of one enumerated port.
type Descriptor struct {
	Path        string
	Description string
	Hardware    string
}

// HardwareBacked reports whether the port was enumerated with an
// identifiable hardware description.
func (d Descriptor) HardwareBacked() bool { return d.Hardware != NoHardware }

// detailedPorts is swapped out by tests to inject enumeration fixtures.
var detailedPorts = enumerator.GetDetailedPortsList

// List returns currently attached ports in enumeration order. When
// includeGeneric is false, ports without hardware info are dropped. An
// empty result is not an error.
func List(includeGeneric bool) ([]Descriptor, error) {
	details, err := detailedPorts()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	descs := make([]Descriptor, 0, len(details))
	for _, p := range details {
		d := describe(p)
		if !includeGeneric && !d.HardwareBacked() {
			continue
		}
		descs = append(descs, d)
	}
	return descs, nil
}

func describe(p *enumerator.PortDetails) Descriptor {
	if !p.IsUSB {
		return Descriptor{Path: p.Name, Description: p.Name, Hardware: NoHardware}
	}

	hw := fmt.Sprintf("USB VID:PID=%s:%s", p.VID, p.PID)
	if p.SerialNumber != "" {
		hw += " SER=" + p.SerialNumber
	}
	desc := p.Product
	if desc == "" {
		desc = p.Name
	}
	return Descriptor{Path: p.Name, Description: desc, Hardware: hw}
}

// Default picks the startup port: the first hardware-backed entry, else
// the fixed fallback path.
func Default() Descriptor {
	if descs, err := List(false); err == nil && len(descs) > 0 {
		return descs[0]
	}
	return Descriptor{Path: DefaultPath, Description: DefaultPath, Hardware: NoHardware}
}

// Resolve matches pattern against the paths of hardware-backed ports.
// Exactly one match is required; zero or several is a configuration
// error and no connection is attempted.
func Resolve(pattern string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("port pattern: %w", err)
	}

	descs, err := List(false)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, d := range descs {
		if re.MatchString(d.Path) {
			matches = append(matches, d.Path)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: %s", ErrPatternNotFound, pattern)
	default:
		return "", fmt.Errorf("%w: %s matches %v", ErrPatternAmbiguous, pattern, matches)
	}
}
