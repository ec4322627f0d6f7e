package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/alexanderramin/gantt/internal/timeline"
)

const svgCharWidth = 7

func fill(color string) string {
	return "fill:" + color
}

// WriteSVG draws the chart as a standalone SVG document.
func WriteSVG(w io.Writer, c Chart) error {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	width, height := c.Width(), c.Height()
	canvas.Start(width, height)
	if c.Title != "" {
		canvas.Title(c.Title)
	}
	canvas.Rect(0, 0, width, height, fill(colorBackground))

	if c.Title != "" {
		canvas.Text(labelPadding, titleHeight-10, c.Title, "font-family:sans-serif;font-size:16px;font-weight:bold;"+fill(colorText))
	}
	drawSVGHeader(canvas, c)
	drawSVGGrid(canvas, c)
	drawSVGRows(canvas, c)

	canvas.End()
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}

func drawSVGHeader(canvas *svg.SVG, c Chart) {
	top := c.top()
	l := c.Layout
	text := "font-family:sans-serif;font-size:11px;" + fill(colorText)
	line := "stroke:" + colorGrid + ";stroke-width:1"

	canvas.Text(labelPadding, top+headerHeight-8, "Task", "font-family:sans-serif;font-size:12px;font-weight:bold;"+fill(colorText))
	for _, m := range l.Months() {
		x := timeline.TaskListWidth + m.Left
		canvas.Line(x, top, x, top+headerRow, line)
		if m.Width >= 60 {
			canvas.Text(x+4, top+headerRow-8, m.Date.Format("January 2006"), text)
		} else {
			canvas.Text(x+2, top+headerRow-8, m.Date.Format("Jan"), text)
		}
	}
	if l.DayWidth >= minDayLabelPx {
		for i, d := range l.Days() {
			x := timeline.TaskListWidth + i*l.DayWidth
			canvas.Text(x+l.DayWidth/2, top+headerHeight-8, strconv.Itoa(d.Day()), text+";text-anchor:middle")
		}
	}
	canvas.Line(0, top+headerRow, c.Width(), top+headerRow, line)
	canvas.Line(0, top+headerHeight, c.Width(), top+headerHeight, line)
}

func drawSVGGrid(canvas *svg.SVG, c Chart) {
	l := c.Layout
	top, bottom := c.gridTop(), c.Height()
	line := "stroke:" + colorGrid + ";stroke-width:1"

	for i, d := range l.Days() {
		x := timeline.TaskListWidth + i*l.DayWidth
		if isWeekend(d) {
			canvas.Rect(x, top, l.DayWidth, bottom-top, fill(colorWeekend))
		}
		canvas.Line(x, top, x, bottom, line)
	}
	for i := range c.Rows {
		y := c.rowTop(i + 1)
		canvas.Line(0, y, c.Width(), y, line)
	}
	canvas.Line(timeline.TaskListWidth, c.top(), timeline.TaskListWidth, bottom, "stroke:"+colorMuted+";stroke-width:1")

	if !c.Today.Before(l.Start) && !c.Today.After(l.End) {
		x := timeline.TaskListWidth + l.Offset(c.Today) + l.DayWidth/2
		canvas.Line(x, top, x, bottom, "stroke:"+colorToday+";stroke-width:2;stroke-dasharray:4,3")
	}
}

func drawSVGRows(canvas *svg.SVG, c Chart) {
	text := "font-family:sans-serif;font-size:12px;" + fill(colorText)
	onBar := "font-family:sans-serif;font-size:11px;fill:#fbf1c7"

	for i, r := range c.Rows {
		y := c.rowTop(i) + c.Layout.RowHeight/2 + 4
		style := text
		if r.Task.HasChildren() {
			style += ";font-weight:bold"
		}
		canvas.Text(labelPadding+r.Depth*indentWidth, y, label(r, svgCharWidth), style)

		bar, ok := c.barBox(i)
		if !ok {
			continue
		}
		canvas.Roundrect(bar.X, bar.Y, bar.W, bar.H, 3, 3, fill(barColor(r.Task)))
		if p, ok := c.progressBox(i, bar); ok {
			canvas.Roundrect(p.X, p.Y, p.W, p.H, 3, 3, fill(colorProgress)+";fill-opacity:0.8")
		}
		if !r.Task.HasChildren() && bar.W > 4*svgCharWidth {
			canvas.Text(bar.X+6, y, fitText(r.Task.Title, (bar.W-12)/svgCharWidth), onBar)
		}
	}
}

// fitText truncates s to n runes.
func fitText(s string, n int) string {
	runes := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
