package transcript

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds the console styles. The zero value renders plain text.
type Styles struct {
	enabled bool

	Date         lipgloss.Style
	Highlight    lipgloss.Style
	Total        lipgloss.Style
	Participants lipgloss.Style
	Heading      lipgloss.Style
	Count        lipgloss.Style
	Note         lipgloss.Style
}

// NewStyles builds console styles bound to w. With color false every style
// renders its input unchanged.
func NewStyles(w io.Writer, color bool) Styles {
	if !color {
		return Styles{}
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return Styles{
		enabled:      true,
		Date:         r.NewStyle().Faint(true),
		Highlight:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		Total:        r.NewStyle().Background(lipgloss.Color("6")),
		Participants: r.NewStyle().Foreground(lipgloss.Color("2")),
		Heading:      r.NewStyle().Foreground(lipgloss.Color("3")),
		Count:        r.NewStyle().Bold(true),
		Note:         r.NewStyle().Faint(true),
	}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// ColorEnabled resolves a color mode for w. Auto enables color only when w
// is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
