package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/tasktree"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// GanttOptions controls the terminal chart.
type GanttOptions struct {
	Title       string
	Today       time.Time
	CellsPerDay int // 1..3
	LabelWidth  int
}

const (
	defaultLabelWidth = 28
	barFull           = '█'
	barRemaining      = '░'
	barSummary        = '━'
	todayMark         = '│'
)

type cellKind int

const (
	cellBlank cellKind = iota
	cellToday
	cellDone
	cellRemaining
	cellSummary
)

// RenderGantt draws the visible rows of roots as a text Gantt chart: a
// label column followed by month and day headers and one bar per row.
func RenderGantt(roots []*domain.Task, settings *domain.ProjectSettings, opts GanttOptions) string {
	cells := max(1, min(opts.CellsPerDay, 3))
	labelWidth := opts.LabelWidth
	if labelWidth <= 0 {
		labelWidth = defaultLabelWidth
	}
	start, end := timeline.Range(roots, settings, opts.Today)
	l := timeline.New(start, end, cells, 1)
	rows := tasktree.Visible(roots)

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(StyleHeader.Render(opts.Title))
		b.WriteString("\n")
	}

	gutter := strings.Repeat(" ", labelWidth+1)
	b.WriteString(gutter + StyleHeader.Render(monthLine(l)) + "\n")
	b.WriteString(gutter + Dim(dayLine(l)) + "\n")

	if len(rows) == 0 {
		b.WriteString(Dim("No tasks yet.") + "\n")
		return b.String()
	}

	todayCol := -1
	if t := domain.DateOnly(opts.Today); !t.Before(l.Start) && !t.After(l.End) {
		todayCol = l.Offset(t)
	}

	for _, r := range rows {
		b.WriteString(rowLabel(r, labelWidth))
		b.WriteString(" ")
		b.WriteString(barLine(l, r.Task, todayCol))
		b.WriteString("\n")
	}
	return b.String()
}

func rowLabel(r tasktree.Row, width int) string {
	marker := "  "
	if r.Task.HasChildren() {
		marker = "▾ "
		if !r.Task.IsExpanded() {
			marker = "▸ "
		}
	}
	text := Truncate(strings.Repeat("  ", r.Depth)+marker+r.Task.Title, width)
	pad := strings.Repeat(" ", width-lipgloss.Width(text))
	if r.Task.IsSection() {
		return StyleSection.Render(text) + pad
	}
	return text + pad
}

func barLine(l timeline.Layout, t *domain.Task, todayCol int) string {
	kinds := make([]cellKind, l.Width())
	if todayCol >= 0 {
		for x := todayCol; x < todayCol+l.DayWidth && x < len(kinds); x++ {
			kinds[x] = cellToday
		}
	}

	raw := l.Bar(t)
	if bar, ok := l.Clip(raw); ok {
		done := raw.Left + timeline.ProgressWidth(raw, t.Progress)
		for x := bar.Left; x < bar.Left+bar.Width; x++ {
			switch {
			case bar.Thin:
				kinds[x] = cellSummary
			case x < done:
				kinds[x] = cellDone
			default:
				kinds[x] = cellRemaining
			}
		}
	}

	barStyle := BarStyle(t)
	var b strings.Builder
	for i := 0; i < len(kinds); {
		j := i
		for j < len(kinds) && kinds[j] == kinds[i] {
			j++
		}
		n := j - i
		switch kinds[i] {
		case cellBlank:
			b.WriteString(strings.Repeat(" ", n))
		case cellToday:
			b.WriteString(StyleRed.Render(strings.Repeat(string(todayMark), n)))
		case cellDone:
			b.WriteString(barStyle.Render(strings.Repeat(string(barFull), n)))
		case cellRemaining:
			b.WriteString(barStyle.Render(strings.Repeat(string(barRemaining), n)))
		case cellSummary:
			b.WriteString(barStyle.Render(strings.Repeat(string(barSummary), n)))
		}
		i = j
	}
	return strings.TrimRight(b.String(), " ")
}

// monthLine writes each month label at its offset, cut to the month width.
func monthLine(l timeline.Layout) string {
	line := []rune(strings.Repeat(" ", l.Width()))
	for _, m := range l.Months() {
		label := m.Date.Format("Jan 2006")
		if m.Width < len(label)+1 {
			label = m.Date.Format("Jan")
		}
		for i, r := range []rune(Truncate(label, m.Width)) {
			line[m.Left+i] = r
		}
	}
	return strings.TrimRight(string(line), " ")
}

// dayLine labels every day when a day is at least three cells wide,
// otherwise only Mondays.
func dayLine(l timeline.Layout) string {
	line := []rune(strings.Repeat(" ", l.Width()))
	for _, d := range l.Days() {
		x := l.Offset(d)
		if l.DayWidth < 3 && (d.Weekday() != time.Monday || x+2 > len(line)) {
			continue
		}
		for i, r := range d.Format("02") {
			line[x+i] = r
		}
	}
	return strings.TrimRight(string(line), " ")
}
