package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDateFrom labels t by whole calendar days from now: "Today",
// "In 3d", "2w ago" and so on.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := domain.DaysBetween(domain.DateOnly(now), domain.DateOnly(t))
	ago := days < 0
	if ago {
		days = -days
	}

	var span string
	switch {
	case days == 0:
		return "Today"
	case days == 1 && ago:
		return "Yesterday"
	case days == 1:
		return "Tomorrow"
	case days < 14:
		span = fmt.Sprintf("%dd", days)
	case days < 60:
		span = fmt.Sprintf("%dw", days/7)
	default:
		span = fmt.Sprintf("%dmo", days/30)
	}
	if ago {
		return span + " ago"
	}
	return "In " + span
}

// HumanDate formats a calendar date the way every command prints it.
func HumanDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// DateRange renders an inclusive range, dropping the repeated year.
func DateRange(start, end time.Time) string {
	if start.Year() == end.Year() {
		return start.Format("Jan 2") + " → " + HumanDate(end)
	}
	return HumanDate(start) + " → " + HumanDate(end)
}

// FormatDays renders a day count such as "1 day" or "12 days".
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to at most width runes, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
