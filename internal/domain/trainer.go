package domain

import "time"

// User roles. Blockouts and course runs can only be attached to users
// holding RoleTrainer.
const (
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
)

// Trainer represents a user who can be scheduled to deliver course runs.
// Trainer CRUD is owned by the user-management side; this subsystem only
// reads trainer records to validate blockout ownership.
type Trainer struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;size:64;uniqueIndex" json:"userId"`
	Name      string    `gorm:"column:name;size:128" json:"name"`
	Email     string    `gorm:"column:email;size:255" json:"email"`
	Role      string    `gorm:"column:role;size:32;index" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName returns the table name
func (Trainer) TableName() string {
	return "trainers"
}

// IsTrainer reports whether the user may own blockouts.
func (t *Trainer) IsTrainer() bool {
	return t.Role == RoleTrainer
}
