package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blinkenlight/minimon/internal/version"
)

// Execute runs the CLI and returns its error, if any. All diagnostics go
// to stderr; only captured device data and early-exit text reach stdout.
func Execute() error {
	return newRootCmd().Execute()
}

type options struct {
	showVersion bool
	showLicense bool

	port        string
	portPattern string
	baudrate    int

	list    bool
	listAll bool

	hex     bool
	remove  string
	remove0 string

	skipBytes int
	skipLines int

	timestamp      bool
	shortTimestamp bool

	newline string
	dtr     bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "minimon",
		Short:         "Simple serial port monitor",
		Long:          "minimon opens a serial device, displays everything it sends and forwards keyboard input back to it. Device data goes to stdout so it can be piped; diagnostics go to stderr.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := rootCmd.Flags()
	f.BoolVarP(&opts.showVersion, "version", "V", false, "print version and exit")
	f.BoolVar(&opts.showLicense, "license", false, "print license and exit")
	f.StringVarP(&opts.port, "port", "p", "", "serial device path (default: first hardware-backed port)")
	f.StringVarP(&opts.portPattern, "PortPattern", "P", "", "resolve the device by regular expression over detected port paths")
	f.IntVarP(&opts.baudrate, "baudrate", "b", 0, "baud rate (default 57600)")
	f.BoolVarP(&opts.list, "list", "l", false, "list ports that have a hardware description and exit")
	f.BoolVarP(&opts.listAll, "List", "L", false, "list all ports and exit")
	f.BoolVarP(&opts.hex, "hex", "x", false, "hexdump mode")
	f.StringVar(&opts.remove, "remove", "", "characters to drop from line output")
	f.StringVar(&opts.remove0, "remove_0", "", "characters to drop from line output, always including NUL (value optional, use --remove_0=CHARS)")
	f.Lookup("remove_0").NoOptDefVal = "\x00"
	f.IntVar(&opts.skipBytes, "skip_bytes", 0, "discard this many raw bytes right after connecting")
	f.IntVar(&opts.skipLines, "skip_lines", 0, "discard this many lines right after connecting")
	f.BoolVarP(&opts.timestamp, "timestamp", "t", false, "prefix each output item with a full UTC timestamp")
	f.BoolVar(&opts.shortTimestamp, "short_timestamp", false, "prefix each output item with a short UTC timestamp")
	f.StringVarP(&opts.newline, "newline", "n", "", "newline handling for keyboard input: pass, cr, lf, crlf or none (default pass)")
	f.BoolVar(&opts.dtr, "DTR", false, "toggle DTR high then low at startup, useful to trigger Arduino resets")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "echo the parsed configuration to stderr")

	rootCmd.MarkFlagsMutuallyExclusive("port", "PortPattern")
	rootCmd.MarkFlagsMutuallyExclusive("list", "List")
	rootCmd.MarkFlagsMutuallyExclusive("timestamp", "short_timestamp")
	rootCmd.MarkFlagsMutuallyExclusive("hex", "remove")
	rootCmd.MarkFlagsMutuallyExclusive("hex", "remove_0")

	return rootCmd
}

func run(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()

	switch {
	case opts.showVersion:
		_, err := fmt.Fprintf(out, "minimon %s\n", version.Version)
		return err
	case opts.showLicense:
		_, err := fmt.Fprintln(out, version.License)
		return err
	case opts.list || opts.listAll:
		return listPorts(out, opts.listAll)
	}

	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		echoConfig(cmd.ErrOrStderr(), cfg)
	}
	return runMonitor(cmd, cfg)
}
