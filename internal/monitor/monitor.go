// Package monitor runs the session pipeline: a reader task pulling data
// from the transport, a writer task rendering it to the display, and the
// input pump forwarding operator lines back to the device.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/blinkenlight/minimon/internal/config"
	"github.com/blinkenlight/minimon/internal/render"
)

// Conn is the transport surface the pipeline needs. *transport.Transport
// satisfies it; tests substitute a scripted connection.
type Conn interface {
	Skip(byteCount, lineCount int) error
	ReadChunk(n int) ([]byte, error)
	ReadLine() ([]byte, error)
	Write(p []byte) error
}

// Session owns one monitoring run. The reader and writer are daemonic:
// a fatal I/O error in any task terminates the whole run, never a
// partial pipeline.
type Session struct {
	cfg   config.Config
	conn  Conn
	in    io.Reader
	out   io.Writer
	now   func() time.Time
	queue *Queue
	fatal chan error
	done  chan struct{}
}

func New(cfg config.Config, conn Conn, in io.Reader, out io.Writer) *Session {
	return &Session{
		cfg:   cfg,
		conn:  conn,
		in:    in,
		out:   out,
		now:   time.Now,
		queue: NewQueue(),
		fatal: make(chan error, 1),
		done:  make(chan struct{}),
	}
}

// Run starts the reader, writer and input pump and blocks until the
// session ends. It returns nil on operator EOF or interrupt and the
// fatal error otherwise. Background goroutines are not awaited; the
// process is expected to exit right after Run returns.
func (s *Session) Run(interrupt <-chan os.Signal) error {
	go s.readLoop()
	go s.writeLoop()
	go s.pumpLoop()

	select {
	case err := <-s.fatal:
		return err
	case <-s.done:
		return nil
	case <-interrupt:
		return nil
	}
}

// fail records the first fatal error; later ones lose the race and are
// dropped.
func (s *Session) fail(err error) {
	select {
	case s.fatal <- err:
	default:
	}
}

func (s *Session) readLoop() {
	if s.cfg.SkipBytes > 0 || s.cfg.SkipLines > 0 {
		if err := s.conn.Skip(s.cfg.SkipBytes, s.cfg.SkipLines); err != nil {
			s.fail(err)
			return
		}
	}

	for {
		var payload []byte
		var err error
		if s.cfg.ReadMode == config.ReadModeHex {
			payload, err = s.conn.ReadChunk(config.ChunkSize)
		} else {
			payload, err = s.conn.ReadLine()
		}
		// A partial payload delivered alongside the error is still
		// displayed before the session dies.
		if len(payload) > 0 {
			s.queue.Put(Item{Payload: payload, Stamp: render.Stamp(s.cfg.Timestamp, s.now())})
		}
		if err != nil {
			s.fail(fmt.Errorf("read %s: %w", s.cfg.Port, err))
			return
		}
	}
}

func (s *Session) writeLoop() {
	r := render.Renderer{
		Hex:       s.cfg.ReadMode == config.ReadModeHex,
		Blacklist: s.cfg.Blacklist,
	}
	for {
		it, ok := s.queue.Get()
		if !ok {
			return
		}
		// s.out is unbuffered, so every item is visible immediately.
		if _, err := io.WriteString(s.out, r.Render(it.Payload, it.Stamp)); err != nil {
			s.fail(fmt.Errorf("display: %w", err))
			return
		}
	}
}

func (s *Session) pumpLoop() {
	br := bufio.NewReader(s.in)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if werr := s.conn.Write(s.cfg.Newline.Apply(line)); werr != nil {
				s.fail(fmt.Errorf("write %s: %w", s.cfg.Port, werr))
				return
			}
		}
		if err != nil {
			// EOF on the operator stream ends the session cleanly.
			if !errors.Is(err, io.EOF) {
				s.fail(fmt.Errorf("operator input: %w", err))
				return
			}
			close(s.done)
			return
		}
	}
}
