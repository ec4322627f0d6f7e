package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile renders the chart to path, choosing SVG, PNG or PDF by
// extension. PDF output is split into pages of perPage rows.
func WriteFile(ctx context.Context, path string, c Chart, perPage int) error {
	var write func(f *os.File) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		write = func(f *os.File) error { return WriteSVG(f, c) }
	case ".png":
		write = func(f *os.File) error { return WritePNG(f, c) }
	case ".pdf":
		write = func(f *os.File) error { return WritePDF(ctx, f, c, perPage) }
	default:
		return fmt.Errorf("unsupported image extension %q (want .svg, .png or .pdf)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
