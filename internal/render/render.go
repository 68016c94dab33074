// Package render turns dequeued output items into display text.
package render

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/blinkenlight/minimon/internal/config"
)

const (
	fullStampLayout  = "2006-01-02 15:04:05.000000"
	shortStampLayout = "15:04:05.000000"
)

// Stamp formats t for the given timestamp mode, always in UTC. Returns
// the empty string when timestamping is off.
func Stamp(mode config.TimestampMode, t time.Time) string {
	switch mode {
	case config.TimestampFull:
		return t.UTC().Format(fullStampLayout)
	case config.TimestampShort:
		return t.UTC().Format(shortStampLayout)
	default:
		return ""
	}
}

// Filter drops every payload byte that occurs in blacklist. The match is
// an exact byte comparison; no text decoding is involved, so multi-byte
// characters in the blacklist are treated as their individual bytes.
func Filter(payload, blacklist []byte) []byte {
	if len(blacklist) == 0 {
		return payload
	}
	var drop [256]bool
	for _, b := range blacklist {
		drop[b] = true
	}
	out := make([]byte, 0, len(payload))
	for _, b := range payload {
		if !drop[b] {
			out = append(out, b)
		}
	}
	return out
}

// Renderer renders items for one session. Hex mode and the blacklist are
// mutually exclusive; config validation guarantees that before any item
// is rendered.
type Renderer struct {
	Hex       bool
	Blacklist []byte
}

// Render produces the display text for one item. In hex mode each chunk
// becomes one offset/hex/ASCII block; in line mode the payload passes
// through the blacklist filter and keeps its own line terminator.
func (r Renderer) Render(payload []byte, stamp string) string {
	var b strings.Builder
	if stamp != "" {
		b.WriteString(stamp)
		b.WriteByte(' ')
	}
	if r.Hex {
		b.WriteString(hex.Dump(payload))
		return b.String()
	}
	b.Write(Filter(payload, r.Blacklist))
	return b.String()
}
