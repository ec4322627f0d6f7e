package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() []*domain.Task {
	design := &domain.Task{
		ID: "s1", Title: "Design", Kind: domain.KindSection,
		StartDate: day(11, 3), EndDate: day(11, 7), Expanded: domain.BoolPtr(true),
	}
	design.Children = []*domain.Task{
		{ID: "t1", Title: "Wireframes", Kind: domain.KindTask, ParentID: domain.StrPtr("s1"),
			StartDate: day(11, 3), EndDate: day(11, 4), Progress: 100},
		{ID: "t2", Title: "Mockups", Kind: domain.KindTask, ParentID: domain.StrPtr("s1"),
			StartDate: day(11, 5), EndDate: day(11, 7), Progress: 0},
	}
	build := &domain.Task{
		ID: "s2", Title: "Build", Kind: domain.KindSection,
		StartDate: day(11, 10), EndDate: day(11, 12),
	}
	build.Children = []*domain.Task{
		{ID: "t3", Title: "API", Kind: domain.KindTask, ParentID: domain.StrPtr("s2"),
			StartDate: day(11, 10), EndDate: day(11, 12)},
	}
	return []*domain.Task{design, build}
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(stripANSI(s), "\n"), "\n")
}

func TestRenderGantt_RowsFollowExpansion(t *testing.T) {
	out := lines(RenderGantt(sampleTree(), nil, GanttOptions{
		Title: "Launch", Today: day(11, 5), CellsPerDay: 3, LabelWidth: 16,
	}))

	require.Len(t, out, 3+4, "title, two header lines, four visible rows")
	assert.Equal(t, "Launch", out[0])
	assert.Contains(t, out[1], "Nov 2025")
	assert.True(t, strings.HasPrefix(out[2], strings.Repeat(" ", 17)+"03 04 05"), out[2])

	assert.True(t, strings.HasPrefix(out[3], "▾ Design"))
	assert.True(t, strings.HasPrefix(out[4], "    Wireframes"))
	assert.True(t, strings.HasPrefix(out[6], "▸ Build"))
	assert.NotContains(t, strings.Join(out, "\n"), "API", "collapsed children stay hidden")
}

func TestRenderGantt_BarCells(t *testing.T) {
	out := lines(RenderGantt(sampleTree(), nil, GanttOptions{
		Today: day(12, 25), CellsPerDay: 2, LabelWidth: 16,
	}))

	wireframes := out[3]
	assert.Equal(t, 4, strings.Count(wireframes, string(barFull)), "two days at two cells, fully done")

	mockups := out[4]
	assert.Equal(t, 6, strings.Count(mockups, string(barRemaining)))
	assert.Equal(t, 0, strings.Count(mockups, string(barFull)))

	design := out[2]
	assert.Equal(t, 10, strings.Count(design, string(barSummary)), "parents draw a summary bar")
}

func TestRenderGantt_TodayMarker(t *testing.T) {
	out := lines(RenderGantt(sampleTree(), nil, GanttOptions{
		Today: day(11, 8), CellsPerDay: 1, LabelWidth: 12,
	}))
	for _, row := range out[2:] {
		assert.Contains(t, row, string(todayMark))
	}
}

func TestRenderGantt_Empty(t *testing.T) {
	out := stripANSI(RenderGantt(nil, nil, GanttOptions{Today: day(2, 14)}))
	assert.Contains(t, out, "Feb 2025")
	assert.Contains(t, out, "No tasks yet.")
}

func TestRenderGantt_PinnedRange(t *testing.T) {
	start, end := day(10, 1), day(12, 31)
	out := stripANSI(RenderGantt(sampleTree(), &domain.ProjectSettings{StartDate: &start, EndDate: &end},
		GanttOptions{Today: day(11, 5), CellsPerDay: 1}))
	assert.Contains(t, out, "Oct 2025")
	assert.Contains(t, out, "Dec 2025")
}

func TestRenderTree_ConnectorsAndBadges(t *testing.T) {
	out := lines(FormatTaskList(sampleTree()))

	require.Len(t, out, 5, "the list shows collapsed branches too")
	assert.True(t, strings.HasPrefix(out[0], "Design s1"))
	assert.True(t, strings.HasPrefix(out[1], "├─ Wireframes"))
	assert.True(t, strings.HasPrefix(out[2], "└─ Mockups"))
	assert.True(t, strings.HasPrefix(out[3], "▸ Build"))
	assert.Contains(t, out[0], "[ Nov 3 → Nov 7, 2025 ]")
}

func TestFormatTaskList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatTaskList(nil)), "No tasks yet")
}

func TestFormatTaskDetail(t *testing.T) {
	task := sampleTree()[0]
	task.Dependencies = []string{"t0"}
	task.Color = "#b16286"

	out := stripANSI(FormatTaskDetail(task))
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "section")
	assert.Contains(t, out, "5 days")
	assert.Contains(t, out, "t0")
	assert.Contains(t, out, "#b16286")
	assert.Contains(t, out, "2 (expanded)")
}

func TestFormatTaskTable(t *testing.T) {
	out := lines(FormatTaskTable(sampleTree()))
	require.Len(t, out, 2+5)
	assert.Contains(t, out[0], "TITLE")
	assert.Contains(t, out[3], "  Wireframes")
	assert.Contains(t, out[3], "100%")
}

func TestFormatProject(t *testing.T) {
	out := stripANSI(FormatProject(&domain.ProjectSettings{Name: "Launch"}, sampleTree(), day(11, 5)))
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "(from tasks)")
	assert.Contains(t, out, "In 7d", "the chart ends Nov 12")
	assert.Contains(t, out, "2 sections, 3 tasks")
	assert.Contains(t, out, " 33%")

	start, end := day(10, 1), day(10, 31)
	pinned := stripANSI(FormatProject(&domain.ProjectSettings{StartDate: &start, EndDate: &end}, sampleTree(), day(11, 5)))
	assert.Contains(t, pinned, "(pinned)")
	assert.Contains(t, pinned, "5d ago")

	empty := stripANSI(FormatProject(&domain.ProjectSettings{}, nil, day(11, 5)))
	assert.Contains(t, empty, domain.DefaultProjectName)
	assert.NotContains(t, empty, "OVERALL")
}

func TestBarStyle_FallsBackOnInvalidColor(t *testing.T) {
	task := &domain.Task{Kind: domain.KindSection, Color: "red"}
	assert.Equal(t, StyleSection.GetForeground(), BarStyle(task).GetForeground())
	task.Color = "#abc"
	assert.NotEqual(t, StyleSection.GetForeground(), BarStyle(task).GetForeground())
}
