package domain

import (
	"fmt"
	"time"
)

// DefaultProjectName is used until the owner names the plan.
const DefaultProjectName = "Untitled project"

// ProjectSettings holds per-owner chart metadata. When both StartDate and
// EndDate are set they replace the range computed from the tasks.
type ProjectSettings struct {
	OwnerID   string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	UpdatedAt time.Time
}

// HasExplicitRange reports whether the settings pin the chart range.
func (p *ProjectSettings) HasExplicitRange() bool {
	return p.StartDate != nil && p.EndDate != nil
}

// Validate rejects a pinned range that ends before it starts.
func (p *ProjectSettings) Validate() error {
	if p.HasExplicitRange() && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			p.EndDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	return nil
}

// DisplayName returns the project name or the default.
func (p *ProjectSettings) DisplayName() string {
	return Coalesce(p.Name, DefaultProjectName)
}
