package domain

import "strings"

type TaskKind string

const (
	KindTask    TaskKind = "task"
	KindSection TaskKind = "section"
)

// ValidTaskKinds is the canonical set of accepted task kind strings.
var ValidTaskKinds = map[string]bool{
	"task": true, "section": true,
}

// ParseTaskKind maps loose user or sheet input ("Section", " task ") onto a
// TaskKind. Anything unrecognized is a task.
func ParseTaskKind(s string) TaskKind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindSection)) {
		return KindSection
	}
	return KindTask
}
