package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blinkenlight/minimon/internal/ports"
)

type listStyles struct {
	path  lipgloss.Style
	meta  lipgloss.Style
	empty lipgloss.Style
}

func newListStyles() listStyles {
	return listStyles{
		path:  lipgloss.NewStyle().Bold(true),
		meta:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty: lipgloss.NewStyle().Faint(true),
	}
}

// listPorts prints one line per detected port: the path plus its
// description and hardware info in parentheses.
func listPorts(out io.Writer, includeGeneric bool) error {
	descs, err := ports.List(includeGeneric)
	if err != nil {
		return err
	}

	s := newListStyles()
	if len(descs) == 0 {
		fmt.Fprintln(out, s.empty.Render("no serial ports found"))
		return nil
	}
	for _, d := range descs {
		meta := fmt.Sprintf("(%s, %s)", strings.TrimSpace(d.Description), d.Hardware)
		fmt.Fprintf(out, "%s %s\n", s.path.Render(d.Path), s.meta.Render(meta))
	}
	return nil
}
