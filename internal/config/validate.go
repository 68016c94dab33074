package config

import "errors"

var (
	ErrHexWithFilter = errors.New("hex mode cannot be combined with a character filter")
	ErrBadBaudRate   = errors.New("baud rate must be positive")
	ErrNegativeSkip  = errors.New("skip counts must not be negative")
	ErrNoPort        = errors.New("no port selected")
)

// Validate checks cross-field rules. It must pass before the Config is
// handed to any task; render-time code assumes a valid Config.
func (c Config) Validate() error {
	if c.Port == "" {
		return ErrNoPort
	}
	if c.BaudRate <= 0 {
		return ErrBadBaudRate
	}
	if c.ReadMode == ReadModeHex && c.Blacklist != nil {
		return ErrHexWithFilter
	}
	if c.SkipBytes < 0 || c.SkipLines < 0 {
		return ErrNegativeSkip
	}
	return nil
}
