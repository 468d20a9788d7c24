package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wricardo/termsnake/game/engine"
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	foodStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

var glyphs = map[rune]string{
	engine.GlyphHead:  headStyle.Render("@"),
	engine.GlyphBody:  bodyStyle.Render("o"),
	engine.GlyphFood:  foodStyle.Render("*"),
	engine.GlyphEmpty: emptyStyle.Render("·"),
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	live, ok := m.engine.State().(engine.Live)
	if !ok {
		return m.endedView()
	}

	help := "arrows/wasd/hjkl steer · q quit"
	if m.autopilot {
		help = "autopilot · " + help
	}

	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Snake"),
		renderBoard(engine.Board(live)),
		statusStyle.Render(fmt.Sprintf("Length: %d  Ticks: %d  Best: %d",
			m.engine.Length(), m.engine.Ticks(), m.best)),
		helpStyle.Render(help),
	))
}

func (m Model) endedView() string {
	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		overStyle.Render("Game Over"),
		"",
		fmt.Sprintf("Final length: %d", m.engine.Length()),
		fmt.Sprintf("Cause: %s", m.engine.Cause()),
		fmt.Sprintf("Best: %d  Games: %d", m.best, m.games),
		"",
		helpStyle.Render("r restart · q quit"),
	))
}

// renderBoard styles each board glyph. Cells are followed by a space so
// they come out roughly square in a terminal.
func renderBoard(rows []string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			cell, ok := glyphs[r]
			if !ok {
				cell = string(r)
			}
			b.WriteString(cell)
			b.WriteByte(' ')
		}
	}
	return b.String()
}
