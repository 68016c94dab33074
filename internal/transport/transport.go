// Package transport owns the open serial connection for the process
// lifetime. The reader task uses the read side, the input pump the write
// side; a serial connection is full duplex, so no locking is added.
package transport

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// dtrPulse is how long DTR stays active during ToggleDTR. Long enough to
// reset Arduino-style boards.
const dtrPulse = 250 * time.Millisecond

// devicePort is the subset of serial.Port the transport relies on.
type devicePort interface {
	io.ReadWriteCloser
	SetDTR(bool) error
}

// openPort is swapped out by tests to run against a pty pair.
var openPort = func(path string, mode *serial.Mode) (devicePort, error) {
	return serial.Open(path, mode)
}

// Transport wraps one open serial connection. Reads go through an
// internal buffer so that skip and line assembly are independent of how
// the driver chunks incoming data; writes bypass the buffer entirely.
type Transport struct {
	port devicePort
	br   *bufio.Reader
}

// Open opens the device at path with the given baud rate (8N1).
func Open(path string, baud int) (*Transport, error) {
	port, err := openPort(path, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Transport{port: port, br: bufio.NewReader(port)}, nil
}

// ToggleDTR drives DTR active, holds it for 250 ms and releases it,
// forcing a reset on boards wired that way. Called once, before the
// read/write tasks start.
func (t *Transport) ToggleDTR() error {
	if err := t.port.SetDTR(true); err != nil {
		return fmt.Errorf("set DTR: %w", err)
	}
	time.Sleep(dtrPulse)
	if err := t.port.SetDTR(false); err != nil {
		return fmt.Errorf("clear DTR: %w", err)
	}
	return nil
}

// Skip consumes and discards byteCount raw bytes followed by lineCount
// full lines. Used right after opening to drop boot-banner noise.
func (t *Transport) Skip(byteCount, lineCount int) error {
	if byteCount > 0 {
		if _, err := io.CopyN(io.Discard, t.br, int64(byteCount)); err != nil {
			return fmt.Errorf("skip %d bytes: %w", byteCount, err)
		}
	}
	for i := 0; i < lineCount; i++ {
		if _, err := t.br.ReadBytes('\n'); err != nil {
			return fmt.Errorf("skip line %d: %w", i+1, err)
		}
	}
	return nil
}

// ReadChunk blocks until exactly n bytes arrive. When the connection
// fails mid-chunk the bytes received so far are returned alongside the
// error so the caller can still display them.
func (t *Transport) ReadChunk(n int) ([]byte, error) {
	buf := make([]byte, n)
	rn, err := io.ReadFull(t.br, buf)
	return buf[:rn], err
}

// ReadLine blocks until a full line arrives and returns it including the
// terminator. A partial final line is returned alongside the error.
func (t *Transport) ReadLine() ([]byte, error) {
	return t.br.ReadBytes('\n')
}

// Write sends operator input to the device.
func (t *Transport) Write(p []byte) error {
	if _, err := t.port.Write(p); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (t *Transport) Close() error {
	return t.port.Close()
}
