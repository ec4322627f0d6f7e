package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProvisionalPrefix marks identifiers generated client-side before the store
// has assigned a durable one.
const ProvisionalPrefix = "new-"

// Task is a single node of the Gantt tree: either a leaf task or a section
// that groups other nodes.
type Task struct {
	ID           string
	Title        string
	StartDate    time.Time
	EndDate      time.Time
	Progress     int
	Kind         TaskKind
	Dependencies []string
	Color        string
	ParentID     *string
	Children     []*Task
	Expanded     *bool
	Position     int
	OwnerID      string
}

// NewProvisionalID returns a placeholder identifier that persistence replaces.
func NewProvisionalID(now time.Time) string {
	return fmt.Sprintf("%s%d", ProvisionalPrefix, now.UnixNano())
}

// IsProvisionalID reports whether id still needs a durable identifier.
func IsProvisionalID(id string) bool {
	return id == "" || strings.HasPrefix(id, ProvisionalPrefix)
}

// IsSection reports whether the node groups other nodes.
func (t *Task) IsSection() bool {
	return t.Kind == KindSection
}

// HasChildren reports whether the node has at least one child.
func (t *Task) HasChildren() bool {
	return len(t.Children) > 0
}

// IsExpanded treats an unset flag as collapsed.
func (t *Task) IsExpanded() bool {
	return Deref(t.Expanded, false)
}

// ParentIDOrEmpty returns the parent identifier, or "" for roots.
func (t *Task) ParentIDOrEmpty() string {
	if t.ParentID == nil {
		return ""
	}
	return *t.ParentID
}

// DurationDays is the inclusive number of calendar days covered by the task.
func (t *Task) DurationDays() int {
	return DaysBetween(t.StartDate, t.EndDate) + 1
}

// Clone returns a shallow copy of t whose slices and pointers are not shared
// with the original. Children are shared by reference.
func (t *Task) Clone() *Task {
	c := *t
	if t.Dependencies != nil {
		c.Dependencies = append([]string(nil), t.Dependencies...)
	}
	if t.ParentID != nil {
		p := *t.ParentID
		c.ParentID = &p
	}
	if t.Expanded != nil {
		e := *t.Expanded
		c.Expanded = &e
	}
	return &c
}

// Validate checks the fields a task must carry before it is persisted.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !ValidTaskKinds[string(t.Kind)] {
		return fmt.Errorf("kind %q must be one of task|section", t.Kind)
	}
	return nil
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}

// StrPtr returns a pointer to v.
func StrPtr(v string) *string {
	return &v
}
