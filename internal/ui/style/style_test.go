package style_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/yaac/internal/ui/style"
)

func renderer(profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(profile)
	return r
}

func TestNew_TrueColor(t *testing.T) {
	s := style.New(renderer(termenv.TrueColor))

	assert.Equal(t, "\x1b[38;2;34;160;107m✓\x1b[0m", s.Success.Render(style.Check))
	assert.Equal(t, "\x1b[38;2;217;48;37m✗\x1b[0m", s.Error.Render(style.Cross))
}

func TestNew_Ascii(t *testing.T) {
	s := style.New(renderer(termenv.Ascii))

	assert.Equal(t, "a\tb", s.Warning.Render("a\tb"))
	assert.Equal(t, "plain", s.Muted.Render("plain"))
}

func TestRenderLines(t *testing.T) {
	s := style.New(renderer(termenv.TrueColor))

	got := style.RenderLines(s.Error, "short\n\na much longer line")
	assert.Equal(t,
		"\x1b[38;2;217;48;37mshort\x1b[0m\n\n\x1b[38;2;217;48;37ma much longer line\x1b[0m",
		got)
}
