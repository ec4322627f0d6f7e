package sheet

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_Serial(t *testing.T) {
	assert.Equal(t, day(1899, 12, 31), parseDate("1", importNow))
	assert.Equal(t, day(2024, 1, 1), parseDate("45292", importNow))
	assert.Equal(t, day(2024, 1, 1), parseDate("45292.75", importNow), "time of day is dropped")
}

func TestParseDate_Calendar(t *testing.T) {
	assert.Equal(t, day(2025, 3, 9), parseDate("2025-03-09", importNow))
	assert.Equal(t, day(2025, 3, 9), parseDate("03/09/2025", importNow))
	assert.Equal(t, day(2025, 3, 9), parseDate("3/9/2025", importNow))
	assert.Equal(t, day(2025, 3, 9), parseDate("09-Mar-2025", importNow))
	assert.Equal(t, day(2025, 3, 9), parseDate("2025-03-09T17:00:00Z", importNow))
}

func TestParseDate_Fallback(t *testing.T) {
	assert.Equal(t, importNow, parseDate("", importNow))
	assert.Equal(t, importNow, parseDate("next tuesday", importNow))
	assert.Equal(t, importNow, parseDate("20240115", importNow), "yyyymmdd typed as a number")
	assert.Equal(t, importNow, parseDate("0", importNow))
	assert.Equal(t, importNow, parseDate("-3", importNow))
	assert.Equal(t, importNow, parseDate("1e300", importNow))
	assert.Equal(t, day(9999, 12, 31), parseDate("2958465", importNow))
}

func TestParseProgress(t *testing.T) {
	assert.Equal(t, 0, parseProgress(""))
	assert.Equal(t, 0, parseProgress("lots"))
	assert.Equal(t, 45, parseProgress("45"))
	assert.Equal(t, 45, parseProgress("45.9"))
	assert.Equal(t, 80, parseProgress("80%"))
}

func TestFromRecords_SectionScopes(t *testing.T) {
	records := [][]string{
		{"type", " TITLE ", "Start  Date", "end date", "progress (%)", "dependencies"},
		{"Task", "Kickoff", "2025-01-02", "2025-01-02", "100", ""},
		{"Section", "Design", "", "", "", ""},
		{"Task", "Sketch", "2025-01-06", "2025-01-08", "50", ""},
		{"task", "Review", "2025-01-09", "2025-01-10", "", "a, b"},
		{"", "", "", "", "", ""},
		{"Section", "", "", "", "", ""},
		{"Task", "", "", "", "", ""},
	}

	rows := FromRecords(records, importNow)
	require.Len(t, rows, 6)

	kickoff, design, sketch, review, untitledSection, untitledTask := rows[0], rows[1], rows[2], rows[3], rows[4], rows[5]

	assert.Nil(t, kickoff.ParentID)
	assert.Equal(t, 0, kickoff.Position)
	assert.Equal(t, 100, kickoff.Progress)

	assert.True(t, design.IsSection())
	assert.Nil(t, design.ParentID)
	assert.Equal(t, 1, design.Position)
	assert.True(t, design.IsExpanded())

	require.NotNil(t, sketch.ParentID)
	assert.Equal(t, design.ID, *sketch.ParentID)
	assert.Equal(t, 0, sketch.Position)
	assert.Equal(t, day(2025, 1, 6), sketch.StartDate)

	require.NotNil(t, review.ParentID)
	assert.Equal(t, design.ID, *review.ParentID)
	assert.Equal(t, 1, review.Position)
	assert.Equal(t, []string{"a", "b"}, review.Dependencies)
	assert.Equal(t, 0, review.Progress)

	assert.Equal(t, UntitledSection, untitledSection.Title)
	assert.Equal(t, 2, untitledSection.Position)
	assert.Equal(t, UntitledTask, untitledTask.Title)
	require.NotNil(t, untitledTask.ParentID)
	assert.Equal(t, untitledSection.ID, *untitledTask.ParentID)
	assert.Equal(t, day(2025, 6, 15), untitledTask.StartDate)

	seen := map[string]bool{}
	for _, r := range rows {
		assert.True(t, domain.IsProvisionalID(r.ID))
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestFromRecords_MissingColumnsAndShortRows(t *testing.T) {
	records := [][]string{
		{"Title"},
		{"Only a title"},
	}

	rows := FromRecords(records, importNow)
	require.Len(t, rows, 1)
	assert.Equal(t, "Only a title", rows[0].Title)
	assert.Equal(t, domain.KindTask, rows[0].Kind)
	assert.Equal(t, day(2025, 6, 15), rows[0].EndDate)
}

func TestFromRecords_Empty(t *testing.T) {
	assert.Nil(t, FromRecords(nil, importNow))
	assert.Empty(t, FromRecords([][]string{Header}, importNow))
}
