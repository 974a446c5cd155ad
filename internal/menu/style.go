package menu

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type styles struct {
	label   lipgloss.Style
	answer  lipgloss.Style
	option  lipgloss.Style
	warning lipgloss.Style
	notice  lipgloss.Style
}

func newStyles(out io.Writer, color string) styles {
	r := lipgloss.NewRenderer(out)
	switch color {
	case "never":
		r.SetColorProfile(termenv.Ascii)
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	}
	return styles{
		label:   r.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
		answer:  r.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		option:  r.NewStyle().Foreground(lipgloss.Color("#B0B0B0")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		notice:  r.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	}
}

// outputWidth returns width when set, otherwise the terminal width of out,
// or zero when out is not a terminal.
func outputWidth(out io.Writer, width int) int {
	if width > 0 {
		return width
	}
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(file.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}
