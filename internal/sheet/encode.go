package sheet

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/tasktree"
)

const exportDateLayout = "2006-01-02"

// ToRecords writes one record per node, depth-first, after the header.
func ToRecords(roots []*domain.Task) [][]string {
	records := [][]string{append([]string(nil), Header...)}
	tasktree.Walk(roots, func(n *domain.Task, _ int) bool {
		kind := TypeTask
		if n.IsSection() {
			kind = TypeSection
		}
		records = append(records, []string{
			kind,
			n.Title,
			n.StartDate.Format(exportDateLayout),
			n.EndDate.Format(exportDateLayout),
			strconv.Itoa(n.Progress),
			strings.Join(n.Dependencies, ","),
		})
		return true
	})
	return records
}
