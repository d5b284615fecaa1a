package loop

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tomz197/asteroids-arena/internal/draw"
	"github.com/tomz197/asteroids-arena/internal/game"
)

const controlsHelp = "A/D or ←/→ turn · W/S or ↑/↓ move · SPACE fire · Q quit"

// screens styles the text overlays drawn outside play.
type screens struct {
	title lipgloss.Style
	lost  lipgloss.Style
	won   lipgloss.Style
	text  lipgloss.Style
	hint  lipgloss.Style
}

func newScreens(r *lipgloss.Renderer) screens {
	return screens{
		title: r.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		lost:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		won:   r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		text:  r.NewStyle().Foreground(lipgloss.Color("255")),
		hint:  r.NewStyle().Foreground(lipgloss.Color("245")).Faint(true),
	}
}

type line struct {
	s     string
	style lipgloss.Style
}

// lines returns the overlay for phase; Playing has none.
func (sc screens) lines(phase game.Phase, res game.Result) []line {
	switch phase {
	case game.NotStarted:
		return []line{
			{"A S T E R O I D S", sc.title},
			{"", sc.text},
			{"Survive the arena. Every asteroid you shoot scores a point.", sc.text},
			{"Press ENTER to start", sc.text},
			{"", sc.text},
			{controlsHelp, sc.hint},
		}
	case game.GameOver:
		return []line{
			{"GAME OVER", sc.lost},
			{"", sc.text},
			{fmt.Sprintf("Score: %d", res.Score), sc.text},
			{"", sc.text},
			{"Press ENTER to play again · Q to quit", sc.hint},
		}
	case game.Won:
		return []line{
			{"YOU WIN", sc.won},
			{"", sc.text},
			{fmt.Sprintf("Score: %d  Health left: %d", res.Score, res.Health), sc.text},
			{"", sc.text},
			{"Press ENTER to play again · Q to quit", sc.hint},
		}
	default:
		return nil
	}
}

// draw writes the overlay for phase centred in a cols x rows render area.
// Lines wider than the area are cut.
func (sc screens) draw(cw *draw.ChunkWriter, cols, rows int, phase game.Phase, res game.Result) {
	lines := sc.lines(phase, res)
	top := (rows-len(lines))/2 + 1
	for i, l := range lines {
		row := top + i
		if l.s == "" || row < 1 || row > rows {
			continue
		}
		text := truncate(l.s, cols)
		col := (cols-lipgloss.Width(text))/2 + 1
		cw.WriteAt(col, row, l.style.Render(text))
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}
