package display

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/coastalhacks/tideclock/pkg/visualize"
)

var (
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
)

// Console draws frames as colored blocks on a writer.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Render(_ context.Context, f *visualize.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	// Row 0 is the bottom of the display.
	for y := visualize.Rows - 1; y >= 0; y-- {
		for x := 0; x < visualize.Hours; x++ {
			b.WriteString(cell(f.At(x, y)))
		}
		b.WriteString("\n")
	}
	_, err := fmt.Fprint(c.w, b.String())
	return err
}

func (c *Console) Close() error { return nil }

func cell(color visualize.Color) string {
	const block = "██"
	switch color {
	case visualize.Green:
		return greenStyle.Render(block)
	case visualize.Red:
		return redStyle.Render(block)
	case visualize.Yellow:
		return yellowStyle.Render(block)
	default:
		return "  "
	}
}
