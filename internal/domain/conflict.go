package domain

import "fmt"

// Conflict kinds.
const (
	ConflictKindBlockout  = "blockout"
	ConflictKindCourseRun = "course_run"
)

// ConflictItem describes one existing record that overlaps a proposed
// blockout range. Transient: rendered in 409 responses, never persisted.
type ConflictItem struct {
	Kind      string `json:"kind"`
	ID        uint   `json:"id"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
	Label     string `json:"label"`
}

// BlockoutConflict reduces an existing blockout to a conflict item.
func BlockoutConflict(b *Blockout) ConflictItem {
	return ConflictItem{
		Kind:      ConflictKindBlockout,
		ID:        b.ID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Label:     b.Reason,
	}
}

// CourseRunConflict reduces an active course run to a conflict item.
func CourseRunConflict(r *CourseRun) ConflictItem {
	return ConflictItem{
		Kind:      ConflictKindCourseRun,
		ID:        r.ID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Label:     r.CourseTitle,
	}
}

// ConflictError rejects a proposed blockout that overlaps existing
// blockouts or active course runs. The conflict list carries enough to
// render "why" in a UI. Blockout conflicts and course-run conflicts are
// never mixed in one error: blockout checks short-circuit first.
type ConflictError struct {
	Conflicts []ConflictItem
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("blockout overlaps %d existing record(s)", len(e.Conflicts))
}
