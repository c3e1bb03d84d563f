package domain

import "time"

// Course run statuses. Only ActiveRunStatuses block a trainer blockout;
// drafts and cancelled runs never do.
const (
	RunStatusDraft     = "DRAFT"
	RunStatusActive    = "ACTIVE"
	RunStatusPublished = "PUBLISHED"
	RunStatusOngoing   = "ONGOING"
	RunStatusCompleted = "COMPLETED"
	RunStatusCancelled = "CANCELLED"
)

// ActiveRunStatuses are the statuses considered when checking a
// proposed blockout against the teaching schedule.
var ActiveRunStatuses = []string{RunStatusActive, RunStatusPublished, RunStatusOngoing}

// CourseRun is a scheduled, dated instance of a course assigned to a
// trainer. Consumed read-only by the availability subsystem.
type CourseRun struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TrainerID   uint      `gorm:"column:trainer_id;index" json:"trainerId"`
	CourseTitle string    `gorm:"column:course_title;size:255" json:"courseTitle"`
	StartDate   Date      `gorm:"column:start_date;index" json:"startDate"`
	EndDate     Date      `gorm:"column:end_date;index" json:"endDate"`
	Status      string    `gorm:"column:status;size:32;index" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName returns the table name
func (CourseRun) TableName() string {
	return "course_runs"
}

// Range returns the run's inclusive day range.
func (r *CourseRun) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// IsActive reports whether the run's status blocks trainer blockouts.
func (r *CourseRun) IsActive() bool {
	for _, s := range ActiveRunStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}
