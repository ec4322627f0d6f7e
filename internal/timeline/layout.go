// Package timeline maps task date ranges onto chart coordinates.
//
// All calculations are in abstract units: pixels for the image renderers,
// terminal cells for the text renderer (DayWidth 1..3).
package timeline

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/tasktree"
)

// Default geometry for image output.
const (
	DefaultDayWidth  = 40
	DefaultRowHeight = 48
	TaskListWidth    = 320
)

// Layout is the date window and cell geometry of a chart.
type Layout struct {
	Start     time.Time
	End       time.Time
	DayWidth  int
	RowHeight int
}

// Bar is the horizontal placement of one task bar.
type Bar struct {
	Left  int
	Width int
	Thin  bool // nodes with children draw a slim summary bar
}

// Month is one month header cell.
type Month struct {
	Date  time.Time // first day of the month
	Left  int
	Width int
	Days  int
}

// Range picks the chart window: the pinned project range when both ends are
// set, otherwise the span of all nodes, otherwise the current month.
func Range(roots []*domain.Task, settings *domain.ProjectSettings, now time.Time) (time.Time, time.Time) {
	if settings != nil && settings.HasExplicitRange() {
		return domain.DateOnly(*settings.StartDate), domain.DateOnly(*settings.EndDate)
	}
	if start, end, ok := tasktree.Span(roots); ok {
		return domain.DateOnly(start), domain.DateOnly(end)
	}
	return startOfMonth(now), endOfMonth(now)
}

// New builds a layout for the given window, normalizing to whole days and
// falling back to the default geometry for non-positive sizes.
func New(start, end time.Time, dayWidth, rowHeight int) Layout {
	if dayWidth <= 0 {
		dayWidth = DefaultDayWidth
	}
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		end = start
	}
	return Layout{Start: start, End: end, DayWidth: dayWidth, RowHeight: rowHeight}
}

// DayCount is the inclusive number of days in the window.
func (l Layout) DayCount() int {
	return domain.DaysBetween(l.Start, l.End) + 1
}

// Width is the full timeline width.
func (l Layout) Width() int {
	return l.DayCount() * l.DayWidth
}

// Height is the grid height for n rows.
func (l Layout) Height(rows int) int {
	return rows * l.RowHeight
}

// Offset is the x coordinate of the start of day t.
func (l Layout) Offset(t time.Time) int {
	return domain.DaysBetween(l.Start, t) * l.DayWidth
}

// Bar places a task. Bars may extend beyond the window; callers clip.
func (l Layout) Bar(t *domain.Task) Bar {
	return Bar{
		Left:  l.Offset(t.StartDate),
		Width: t.DurationDays() * l.DayWidth,
		Thin:  t.HasChildren(),
	}
}

// Clip restricts a bar to [0, Width). ok is false when nothing is visible.
func (l Layout) Clip(b Bar) (Bar, bool) {
	left, right := b.Left, b.Left+b.Width
	if left < 0 {
		left = 0
	}
	if w := l.Width(); right > w {
		right = w
	}
	if right <= left {
		return Bar{}, false
	}
	return Bar{Left: left, Width: right - left, Thin: b.Thin}, true
}

// ProgressWidth is the filled part of a bar for a 0..100 progress value.
func ProgressWidth(b Bar, progress int) int {
	if progress <= 0 {
		return 0
	}
	if progress >= 100 {
		return b.Width
	}
	return b.Width * progress / 100
}

// Days lists every day in the window.
func (l Layout) Days() []time.Time {
	n := l.DayCount()
	days := make([]time.Time, n)
	for i := range days {
		days[i] = l.Start.AddDate(0, 0, i)
	}
	return days
}

// Months groups the window into month header cells clipped to the window.
func (l Layout) Months() []Month {
	var months []Month
	for cur := startOfMonth(l.Start); !cur.After(l.End); cur = cur.AddDate(0, 1, 0) {
		from := cur
		if from.Before(l.Start) {
			from = l.Start
		}
		to := endOfMonth(cur)
		if to.After(l.End) {
			to = l.End
		}
		days := domain.DaysBetween(from, to) + 1
		months = append(months, Month{
			Date:  cur,
			Left:  l.Offset(from),
			Width: days * l.DayWidth,
			Days:  days,
		})
	}
	return months
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, -1)
}
