package render

import (
	"fmt"
	"image"
	"io"
	"strconv"

	"git.sr.ht/~sbinet/gg"
	"github.com/alexanderramin/gantt/internal/timeline"
	"golang.org/x/image/font/basicfont"
)

// basicfont.Face7x13 advances 7px per glyph.
const rasterCharWidth = 7

// Rasterize draws the chart into an RGBA image.
func Rasterize(c Chart) image.Image {
	return draw(c).Image()
}

// WritePNG encodes the rasterized chart as PNG.
func WritePNG(w io.Writer, c Chart) error {
	if err := draw(c).EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func draw(c Chart) *gg.Context {
	dc := gg.NewContext(c.Width(), c.Height())
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetHexColor(colorBackground)
	dc.Clear()

	if c.Title != "" {
		dc.SetHexColor(colorText)
		dc.DrawString(c.Title, labelPadding, float64(titleHeight-12))
	}
	drawRasterGrid(dc, c)
	drawRasterHeader(dc, c)
	drawRasterRows(dc, c)
	return dc
}

func hline(dc *gg.Context, y, x1, x2 int) {
	dc.DrawLine(float64(x1), float64(y)+0.5, float64(x2), float64(y)+0.5)
	dc.Stroke()
}

func vline(dc *gg.Context, x, y1, y2 int) {
	dc.DrawLine(float64(x)+0.5, float64(y1), float64(x)+0.5, float64(y2))
	dc.Stroke()
}

func rect(dc *gg.Context, b box) {
	dc.DrawRectangle(float64(b.X), float64(b.Y), float64(b.W), float64(b.H))
	dc.Fill()
}

func drawRasterHeader(dc *gg.Context, c Chart) {
	top := c.top()
	l := c.Layout
	dc.SetLineWidth(1)

	dc.SetHexColor(colorText)
	dc.DrawString("Task", labelPadding, float64(top+headerHeight-8))
	for _, m := range l.Months() {
		x := timeline.TaskListWidth + m.Left
		dc.SetHexColor(colorGrid)
		vline(dc, x, top, top+headerRow)
		dc.SetHexColor(colorText)
		name := m.Date.Format("January 2006")
		if m.Width < (len(name)+1)*rasterCharWidth {
			name = m.Date.Format("Jan")
		}
		dc.DrawString(fitText(name, (m.Width-4)/rasterCharWidth), float64(x+4), float64(top+headerRow-8))
	}
	if l.DayWidth >= minDayLabelPx {
		dc.SetHexColor(colorMuted)
		for i, d := range l.Days() {
			x := timeline.TaskListWidth + i*l.DayWidth
			dc.DrawStringAnchored(strconv.Itoa(d.Day()), float64(x+l.DayWidth/2), float64(top+headerHeight-8), 0.5, 0)
		}
	}
	dc.SetHexColor(colorGrid)
	hline(dc, top+headerRow, 0, c.Width())
	hline(dc, top+headerHeight, 0, c.Width())
}

func drawRasterGrid(dc *gg.Context, c Chart) {
	l := c.Layout
	top, bottom := c.gridTop(), c.Height()
	dc.SetLineWidth(1)

	for i, d := range l.Days() {
		x := timeline.TaskListWidth + i*l.DayWidth
		if isWeekend(d) {
			dc.SetHexColor(colorWeekend)
			rect(dc, box{X: x, Y: top, W: l.DayWidth, H: bottom - top})
		}
		dc.SetHexColor(colorGrid)
		vline(dc, x, top, bottom)
	}
	for i := range c.Rows {
		hline(dc, c.rowTop(i+1), 0, c.Width())
	}
	dc.SetHexColor(colorMuted)
	vline(dc, timeline.TaskListWidth, c.top(), bottom)

	if !c.Today.Before(l.Start) && !c.Today.After(l.End) {
		dc.SetHexColor(colorToday)
		dc.SetLineWidth(2)
		vline(dc, timeline.TaskListWidth+l.Offset(c.Today)+l.DayWidth/2, top, bottom)
		dc.SetLineWidth(1)
	}
}

func drawRasterRows(dc *gg.Context, c Chart) {
	for i, r := range c.Rows {
		baseline := float64(c.rowTop(i) + c.Layout.RowHeight/2 + 4)
		dc.SetHexColor(colorText)
		dc.DrawString(label(r, rasterCharWidth), float64(labelPadding+r.Depth*indentWidth), baseline)

		bar, ok := c.barBox(i)
		if !ok {
			continue
		}
		dc.SetHexColor(barColor(r.Task))
		dc.DrawRoundedRectangle(float64(bar.X), float64(bar.Y), float64(bar.W), float64(bar.H), 3)
		dc.Fill()
		if p, ok := c.progressBox(i, bar); ok {
			dc.SetHexColor(colorProgress)
			rect(dc, p)
		}
		if !r.Task.HasChildren() && bar.W > 4*rasterCharWidth {
			dc.SetHexColor(colorBackground)
			dc.DrawString(fitText(r.Task.Title, (bar.W-12)/rasterCharWidth), float64(bar.X+6), baseline)
		}
	}
}
