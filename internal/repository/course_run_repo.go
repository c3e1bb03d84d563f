package repository

import (
	"github.com/traindesk/traindesk-backend/internal/domain"
	"gorm.io/gorm"
)

// CourseRunRepository reads the course-run schedule. Runs are owned by
// the course-management side; the availability subsystem never writes
// them.
type CourseRunRepository interface {
	WithTx(tx *gorm.DB) CourseRunRepository
	FindByTrainer(trainerID uint, window *domain.DateRange) ([]domain.CourseRun, error)
	FindActiveOverlapping(trainerID uint, rng domain.DateRange) ([]domain.CourseRun, error)
}

type courseRunRepository struct {
	db *gorm.DB
}

// NewCourseRunRepository creates a new CourseRunRepository
func NewCourseRunRepository(db *gorm.DB) CourseRunRepository {
	return &courseRunRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *courseRunRepository) WithTx(tx *gorm.DB) CourseRunRepository {
	return &courseRunRepository{db: tx}
}

// FindByTrainer lists a trainer's runs, optionally narrowed to those
// intersecting the window.
func (r *courseRunRepository) FindByTrainer(trainerID uint, window *domain.DateRange) ([]domain.CourseRun, error) {
	q := r.db.Where("trainer_id = ?", trainerID)
	if window != nil {
		q = q.Where("start_date <= ? AND end_date >= ?", window.End, window.Start)
	}

	var runs []domain.CourseRun
	if err := q.Order("start_date ASC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// FindActiveOverlapping returns the trainer's active runs sharing at
// least one day with rng. Same inclusive-overlap predicate as the
// blockout store; non-active statuses never block.
func (r *courseRunRepository) FindActiveOverlapping(trainerID uint, rng domain.DateRange) ([]domain.CourseRun, error) {
	var runs []domain.CourseRun
	err := r.db.
		Where("trainer_id = ? AND status IN ?", trainerID, domain.ActiveRunStatuses).
		Where("start_date <= ? AND end_date >= ?", rng.End, rng.Start).
		Order("start_date ASC").
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
