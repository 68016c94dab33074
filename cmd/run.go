package cmd

import (
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/blinkenlight/minimon/internal/config"
	"github.com/blinkenlight/minimon/internal/monitor"
	"github.com/blinkenlight/minimon/internal/ports"
	"github.com/blinkenlight/minimon/internal/settings"
	"github.com/blinkenlight/minimon/internal/transport"
)

var _ monitor.Conn = (*transport.Transport)(nil)

// buildConfig merges flags over persisted settings over built-in
// defaults into the immutable session configuration.
func buildConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	defaults, err := settings.Load(nil)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()

	baud := ports.DefaultBaudRate
	if defaults.BaudRate > 0 {
		baud = defaults.BaudRate
	}
	if flags.Changed("baudrate") {
		baud = opts.baudrate
	}

	newlineName := "pass"
	if defaults.Newline != "" {
		newlineName = defaults.Newline
	}
	if flags.Changed("newline") {
		newlineName = opts.newline
	}
	newline, err := config.ParseNewlineMode(newlineName)
	if err != nil {
		return config.Config{}, err
	}

	var path string
	switch {
	case opts.portPattern != "":
		if path, err = ports.Resolve(opts.portPattern); err != nil {
			return config.Config{}, err
		}
	case flags.Changed("port"):
		path = opts.port
	case defaults.Port != "":
		path = defaults.Port
	default:
		path = ports.Default().Path
	}

	var blacklist []byte
	switch {
	case flags.Changed("remove"):
		blacklist = []byte(opts.remove)
	case flags.Changed("remove_0"):
		blacklist = append([]byte(opts.remove0), 0)
	}

	readMode := config.ReadModeLine
	if opts.hex {
		readMode = config.ReadModeHex
	}

	stamp := config.TimestampOff
	switch {
	case opts.timestamp:
		stamp = config.TimestampFull
	case opts.shortTimestamp:
		stamp = config.TimestampShort
	}

	cfg := config.Config{
		Port:      path,
		BaudRate:  baud,
		ReadMode:  readMode,
		Newline:   newline,
		Blacklist: blacklist,
		SkipBytes: opts.skipBytes,
		SkipLines: opts.skipLines,
		Timestamp: stamp,
		ToggleDTR: opts.dtr,
		Verbose:   opts.verbose,
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

var configStyle = lipgloss.NewStyle().Faint(true)

func echoConfig(w io.Writer, cfg config.Config) {
	io.WriteString(w, configStyle.Render(cfg.Summary())+"\n")
}

// runMonitor opens the transport and blocks in the session until the
// operator ends it or a transport error kills it.
func runMonitor(cmd *cobra.Command, cfg config.Config) error {
	tr, err := transport.Open(cfg.Port, cfg.BaudRate)
	if err != nil {
		return err
	}
	defer tr.Close()

	if cfg.ToggleDTR {
		if err := tr.ToggleDTR(); err != nil {
			return err
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	sess := monitor.New(cfg, tr, cmd.InOrStdin(), cmd.OutOrStdout())
	return sess.Run(interrupt)
}
