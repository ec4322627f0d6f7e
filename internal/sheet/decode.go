package sheet

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// serialEpoch is day zero of spreadsheet serial dates.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is 9999-12-31. Larger numbers are not serial dates (a yyyymmdd
// typed as a number, say) and would not survive a round trip through the
// store's YYYY-MM-DD columns.
const maxSerial = 2958465

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"2-Jan-2006",
	time.RFC3339,
}

// FromRecords turns spreadsheet records (header first) into flat task rows
// linked by ParentID. A Section row opens a scope that captures the task
// rows after it until the next section; tasks before the first section are
// roots. Identifiers are provisional and unique within the result.
//
// No row is ever rejected: bad dates fall back to now, bad progress to 0,
// missing titles to a placeholder. Fully blank rows are skipped.
func FromRecords(records [][]string, now time.Time) []*domain.Task {
	if len(records) == 0 {
		return nil
	}
	idx := columnIndex(records[0])
	today := domain.DateOnly(now)

	var (
		out         []*domain.Task
		section     *domain.Task
		rootPos     int
		childPos    int
		provisional int
	)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		cell := func(col string) string {
			i := idx[col]
			if i < 0 || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		provisional++
		t := &domain.Task{
			ID:           domain.ProvisionalPrefix + strconv.Itoa(provisional),
			Kind:         domain.ParseTaskKind(cell(ColType)),
			Title:        cell(ColTitle),
			StartDate:    parseDate(cell(ColStartDate), today),
			EndDate:      parseDate(cell(ColEndDate), today),
			Progress:     parseProgress(cell(ColProgress)),
			Dependencies: splitList(cell(ColDependencies)),
		}

		if t.IsSection() {
			if t.Title == "" {
				t.Title = UntitledSection
			}
			t.Expanded = domain.BoolPtr(true)
			t.Position = rootPos
			rootPos++
			section = t
			childPos = 0
		} else {
			if t.Title == "" {
				t.Title = UntitledTask
			}
			if section != nil {
				t.ParentID = domain.StrPtr(section.ID)
				t.Position = childPos
				childPos++
			} else {
				t.Position = rootPos
				rootPos++
			}
		}
		out = append(out, t)
	}
	return out
}

// parseDate reads a serial day number or a calendar date. Serial fractions
// carry the time of day and are dropped.
func parseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		serial := math.Floor(f)
		if math.IsNaN(f) || serial < 1 || serial > maxSerial {
			return fallback
		}
		return serialEpoch.AddDate(0, 0, int(serial))
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOnly(t)
		}
	}
	return fallback
}

func parseProgress(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func splitList(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
