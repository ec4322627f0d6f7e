package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/go-pdf/fpdf"
	"golang.org/x/sync/errgroup"
)

const pdfMargin = 10.0 // mm

// WritePDF rasterizes the chart in pages of perPage rows and places each
// page, scaled to fit, on a landscape A4 sheet.
func WritePDF(ctx context.Context, w io.Writer, c Chart, perPage int) error {
	pages := c.Pages(perPage)
	images := make([][]byte, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, page := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := WritePNG(&buf, page); err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			images[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(c.Title, true)
	pdf.SetCreator("gantt", false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, img := range images {
		pdf.AddPage()
		name := "page-" + strconv.Itoa(i+1)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))

		pageW, pageH := pdf.GetPageSize()
		availW, availH := pageW-2*pdfMargin, pageH-2*pdfMargin
		pw, ph := float64(pages[i].Width()), float64(pages[i].Height())
		scale := min(availW/pw, availH/ph)
		pdf.ImageOptions(name, pdfMargin, pdfMargin, pw*scale, ph*scale, false, opts, 0, "")
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
