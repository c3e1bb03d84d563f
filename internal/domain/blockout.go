package domain

import "time"

// Blockout types shown in the scheduling UI. The column is an open
// string; values outside this set are stored verbatim.
const (
	BlockoutTypePersonal    = "personal"
	BlockoutTypeUnavailable = "unavailable"
	BlockoutTypeMaintenance = "maintenance"
	BlockoutTypeHoliday     = "holiday"
	BlockoutTypeOther       = "other"
)

// Blockout is a trainer-declared period of unavailability. For one
// trainer, persisted blockouts are pairwise non-overlapping and never
// overlap an active course run; the gate is enforced at create/update
// time, not by a database constraint.
type Blockout struct {
	ID               uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TrainerID        uint      `gorm:"column:trainer_id;index" json:"trainerId"`
	StartDate        Date      `gorm:"column:start_date;index" json:"startDate"`
	EndDate          Date      `gorm:"column:end_date;index" json:"endDate"`
	Reason           string    `gorm:"column:reason;size:255" json:"reason"`
	Type             string    `gorm:"column:type;size:32" json:"type"`
	Description      string    `gorm:"column:description;type:text" json:"description,omitempty"`
	IsRecurring      bool      `gorm:"column:is_recurring" json:"isRecurring"`
	RecurringPattern string    `gorm:"column:recurring_pattern;size:255" json:"recurringPattern,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName returns the table name
func (Blockout) TableName() string {
	return "trainer_blockouts"
}

// Range returns the blockout's inclusive day range.
func (b *Blockout) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// BlockoutRequest is the create/update payload.
type BlockoutRequest struct {
	TrainerID        uint   `json:"trainerId"`
	StartDate        Date   `json:"startDate"`
	EndDate          Date   `json:"endDate"`
	Reason           string `json:"reason"`
	Type             string `json:"type"`
	Description      string `json:"description"`
	IsRecurring      bool   `json:"isRecurring"`
	RecurringPattern string `json:"recurringPattern"`
}

// Range returns the requested inclusive day range.
func (r *BlockoutRequest) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// BlockoutSummary is the per-day calendar entry projected from a
// blockout.
type BlockoutSummary struct {
	ID          uint   `json:"id"`
	TrainerID   uint   `json:"trainerId"`
	TrainerName string `json:"trainerName"`
	Reason      string `json:"reason"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	IsRecurring bool   `json:"isRecurring"`
}

// Summary reduces the blockout to its calendar-grid form.
func (b *Blockout) Summary(trainerName string) BlockoutSummary {
	return BlockoutSummary{
		ID:          b.ID,
		TrainerID:   b.TrainerID,
		TrainerName: trainerName,
		Reason:      b.Reason,
		Type:        b.Type,
		Description: b.Description,
		IsRecurring: b.IsRecurring,
	}
}
