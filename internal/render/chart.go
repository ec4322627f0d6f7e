// Package render draws the visible chart as SVG, PNG or a paginated PDF.
package render

import (
	"regexp"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/tasktree"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// Palette, Gruvbox light.
const (
	colorBackground = "#fbf1c7"
	colorGrid       = "#d5c4a1"
	colorText       = "#3c3836"
	colorMuted      = "#7c6f64"
	colorTask       = "#458588"
	colorSection    = "#d65d0e"
	colorProgress   = "#98971a"
	colorToday      = "#cc241d"
	colorWeekend    = "#f2e5bc"
)

// Fixed geometry outside the timeline area.
const (
	titleHeight   = 32
	headerRow     = 24
	headerHeight  = 2 * headerRow
	indentWidth   = 16
	labelPadding  = 8
	minDayLabelPx = 14
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Chart is everything needed to draw one image: the window and the rows.
type Chart struct {
	Title  string
	Layout timeline.Layout
	Rows   []tasktree.Row
	Today  time.Time
}

// New lays out the visible rows of roots.
func New(title string, roots []*domain.Task, settings *domain.ProjectSettings, now time.Time, dayWidth, rowHeight int) Chart {
	start, end := timeline.Range(roots, settings, now)
	return Chart{
		Title:  title,
		Layout: timeline.New(start, end, dayWidth, rowHeight),
		Rows:   tasktree.Visible(roots),
		Today:  domain.DateOnly(now),
	}
}

// Pages splits the chart into charts of at most perPage rows sharing the
// same window. A chart with no rows yields one empty page.
func (c Chart) Pages(perPage int) []Chart {
	if perPage <= 0 || len(c.Rows) <= perPage {
		return []Chart{c}
	}
	var pages []Chart
	for i := 0; i < len(c.Rows); i += perPage {
		end := min(i+perPage, len(c.Rows))
		p := c
		p.Rows = c.Rows[i:end]
		pages = append(pages, p)
	}
	return pages
}

func (c Chart) top() int {
	if c.Title == "" {
		return 0
	}
	return titleHeight
}

// Width is the pixel width of the drawn image.
func (c Chart) Width() int {
	return timeline.TaskListWidth + c.Layout.Width()
}

// Height is the pixel height of the drawn image.
func (c Chart) Height() int {
	return c.top() + headerHeight + c.Layout.Height(len(c.Rows))
}

func (c Chart) gridTop() int {
	return c.top() + headerHeight
}

func (c Chart) rowTop(i int) int {
	return c.gridTop() + i*c.Layout.RowHeight
}

// box is a rectangle in image coordinates.
type box struct {
	X, Y, W, H int
}

// barBox places the bar of row i, clipped to the timeline. Nodes with
// children get a slim bar.
func (c Chart) barBox(i int) (box, bool) {
	t := c.Rows[i].Task
	b, ok := c.Layout.Clip(c.Layout.Bar(t))
	if !ok {
		return box{}, false
	}
	h := c.Layout.RowHeight * 7 / 12
	if b.Thin {
		h = max(c.Layout.RowHeight/5, 2)
	}
	return box{
		X: timeline.TaskListWidth + b.Left,
		Y: c.rowTop(i) + (c.Layout.RowHeight-h)/2,
		W: b.Width,
		H: h,
	}, true
}

// progressBox is the filled part of bar i, measured on the unclipped bar.
func (c Chart) progressBox(i int, bar box) (box, bool) {
	t := c.Rows[i].Task
	full := c.Layout.Bar(t)
	filled := timeline.ProgressWidth(full, t.Progress)
	right := timeline.TaskListWidth + full.Left + filled
	if right <= bar.X {
		return box{}, false
	}
	return box{X: bar.X, Y: bar.Y, W: min(right, bar.X+bar.W) - bar.X, H: bar.H}, true
}

func barColor(t *domain.Task) string {
	if hexColor.MatchString(t.Color) {
		return t.Color
	}
	if t.HasChildren() {
		return colorSection
	}
	return colorTask
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// label truncates a row label to fit the task list column.
func label(r tasktree.Row, charWidth int) string {
	avail := (timeline.TaskListWidth - 2*labelPadding - r.Depth*indentWidth) / charWidth
	title := r.Task.Title
	if r.Task.HasChildren() {
		if r.Task.IsExpanded() {
			title = "- " + title
		} else {
			title = "+ " + title
		}
	}
	runes := []rune(title)
	if avail <= 1 {
		return ""
	}
	if len(runes) > avail {
		return string(runes[:avail-1]) + "…"
	}
	return title
}
