package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/timeutil"
)

const minCellWidth = 18

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MLB Scoreboard"))
	if m.loading {
		b.WriteString("  " + m.spinner.View() + dimStyle.Render(" refreshing"))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("refresh failed: "+m.err.Error()) + "\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString(dimStyle.Render("loading board...") + "\n")
	case len(m.board.Days) == 0:
		b.WriteString(dimStyle.Render("no days to show") + "\n")
	default:
		for day := range m.board.Days {
			b.WriteString(m.renderDay(day))
			b.WriteString("\n")
		}
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) cellWidth() int {
	if m.width <= 0 {
		return minCellWidth
	}
	// Two border columns per cell plus room for the scroll markers.
	w := (m.width-4)/m.grid.PageSize() - 2
	return max(w, minCellWidth)
}

func (m *Model) renderDay(day int) string {
	schedule := m.board.Days[day]
	header := dateStyle.Render(schedule.Date.Format("Mon Jan 2, 2006"))
	header += dimStyle.Render(fmt.Sprintf("  %d games", len(schedule.Games)))
	if len(schedule.Games) == 0 {
		return header + "\n" + dimStyle.Render("  no games scheduled") + "\n"
	}

	focusDay, focusIdx, focused := m.grid.Focused()
	begin, end := m.grid.Visible(day)
	width := m.cellWidth()

	cells := make([]string, 0, end-begin+2)
	cells = append(cells, scrollMarker(begin > 0, "‹"))
	for i := begin; i < end; i++ {
		style := cellStyle
		if focused && day == focusDay && i == focusIdx {
			style = focusedCellStyle
		}
		cells = append(cells, style.Width(width).Render(m.cellBody(schedule.Games[i], width)))
	}
	cells = append(cells, scrollMarker(end < len(schedule.Games), "›"))
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Center, cells...) + "\n"
}

func (m *Model) cellBody(record games.GameRecord, width int) string {
	title := truncate(record.Title, width-2)
	return title + "\n" + dimStyle.Render(truncate(m.imageLabel(record), width-2))
}

func (m *Model) imageLabel(record games.GameRecord) string {
	if !record.HasImage() {
		return m.cfg.DefaultImage
	}
	return fmt.Sprintf("[ recap image %.1f KB ]", float64(len(record.Image))/1024)
}

func (m *Model) renderDetail() string {
	record, ok := m.Focused()
	if !ok {
		return detailStyle.Render(dimStyle.Render("nothing focused"))
	}
	day, idx, _ := m.grid.Focused()
	date := m.board.Days[day].Date.Format(timeutil.DateLayout)
	lines := []string{
		titleStyle.Render(record.Title) + dimStyle.Render(fmt.Sprintf("  %s #%d", date, idx+1)),
		summaryStyle.Render(record.Summary),
		dimStyle.Render(m.imageLabel(record)),
	}
	return detailStyle.Render(strings.Join(lines, "\n"))
}

func scrollMarker(show bool, glyph string) string {
	if !show {
		return " "
	}
	return dimStyle.Render(glyph)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
