package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a 0..100 progress value as a bar like [████░░░░] 45%.
// The bar is colored green when complete, yellow past halfway, red otherwise.
func RenderProgress(progress, width int) string {
	progress = clampPercent(progress)
	if width < 2 {
		width = 2
	}

	filled := width * progress / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleRed
	switch {
	case progress >= 100:
		style = StyleGreen
	case progress >= 50:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), progress)
}

func clampPercent(p int) int {
	return max(0, min(p, 100))
}
