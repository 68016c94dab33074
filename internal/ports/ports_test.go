package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func withFixture(t *testing.T, details []*enumerator.PortDetails) {
	t.Helper()
	restore := detailedPorts
	detailedPorts = func() ([]*enumerator.PortDetails, error) { return details, nil }
	t.Cleanup(func() { detailedPorts = restore })
}

func usbFixture() []*enumerator.PortDetails {
	return []*enumerator.PortDetails{
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001", SerialNumber: "A1B2", Product: "FT232R USB UART"},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "2341", PID: "0043", Product: "Arduino Uno"},
		{Name: "/dev/ttyS0"},
	}
}

func TestListFiltersGenericPorts(t *testing.T) {
	withFixture(t, usbFixture())

	descs, err := List(false)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, "/dev/ttyUSB0", descs[0].Path)
	assert.Equal(t, "/dev/ttyACM0", descs[1].Path)
	assert.Equal(t, "FT232R USB UART", descs[0].Description)
	assert.Equal(t, "USB VID:PID=0403:6001 SER=A1B2", descs[0].Hardware)
}

func TestListIncludesGenericPorts(t *testing.T) {
	withFixture(t, usbFixture())

	descs, err := List(true)
	require.NoError(t, err)
	require.Len(t, descs, 3)
	assert.Equal(t, "/dev/ttyS0", descs[2].Path)
	assert.False(t, descs[2].HardwareBacked())
}

func TestListEmptyIsNotAnError(t *testing.T) {
	withFixture(t, nil)

	descs, err := List(false)
	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestDefaultPrefersFirstHardwareBackedPort(t *testing.T) {
	withFixture(t, usbFixture())
	assert.Equal(t, "/dev/ttyUSB0", Default().Path)
}

func TestDefaultFallsBackWithoutPorts(t *testing.T) {
	withFixture(t, nil)

	d := Default()
	assert.Equal(t, DefaultPath, d.Path)
	assert.False(t, d.HardwareBacked())
}

func TestResolveSingleMatch(t *testing.T) {
	withFixture(t, usbFixture())

	path, err := Resolve("ACM")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", path)
}

func TestResolveNoMatch(t *testing.T) {
	withFixture(t, usbFixture())

	_, err := Resolve("XYZ")
	assert.ErrorIs(t, err, ErrPatternNotFound)
}

func TestResolveAmbiguousMatch(t *testing.T) {
	withFixture(t, usbFixture())

	_, err := Resolve("tty")
	assert.ErrorIs(t, err, ErrPatternAmbiguous)
}

func TestResolveIgnoresGenericPorts(t *testing.T) {
	withFixture(t, usbFixture())

	// ttyS0 has no hardware description; the pattern must not see it.
	_, err := Resolve("ttyS0")
	assert.ErrorIs(t, err, ErrPatternNotFound)
}

func TestResolveBadPattern(t *testing.T) {
	withFixture(t, usbFixture())

	_, err := Resolve("(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port pattern")
}

func TestListPropagatesEnumerationFailure(t *testing.T) {
	restore := detailedPorts
	detailedPorts = func() ([]*enumerator.PortDetails, error) { return nil, errors.New("udev unavailable") }
	t.Cleanup(func() { detailedPorts = restore })

	_, err := List(true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enumerate serial ports")
}
