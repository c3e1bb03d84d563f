package repository

import (
	"errors"

	"github.com/traindesk/traindesk-backend/internal/domain"
	"gorm.io/gorm"
)

// BlockoutRepository persists trainer blockout periods.
type BlockoutRepository interface {
	WithTx(tx *gorm.DB) BlockoutRepository
	FindByID(id uint) (*domain.Blockout, error)
	FindByTrainer(trainerID uint, window *domain.DateRange) ([]domain.Blockout, error)
	FindOverlapping(trainerID uint, rng domain.DateRange, excludeID uint) ([]domain.Blockout, error)
	Create(blockout *domain.Blockout) error
	Update(blockout *domain.Blockout) error
	Delete(id uint) error
}

type blockoutRepository struct {
	db *gorm.DB
}

// NewBlockoutRepository creates a new BlockoutRepository
func NewBlockoutRepository(db *gorm.DB) BlockoutRepository {
	return &blockoutRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *blockoutRepository) WithTx(tx *gorm.DB) BlockoutRepository {
	return &blockoutRepository{db: tx}
}

// FindByID retrieves a blockout by id, nil if absent.
func (r *blockoutRepository) FindByID(id uint) (*domain.Blockout, error) {
	var blockout domain.Blockout
	err := r.db.First(&blockout, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &blockout, nil
}

// FindByTrainer lists a trainer's blockouts, optionally narrowed to
// those intersecting the window. The window filter uses the same
// inclusive-overlap predicate as FindOverlapping.
func (r *blockoutRepository) FindByTrainer(trainerID uint, window *domain.DateRange) ([]domain.Blockout, error) {
	q := r.db.Where("trainer_id = ?", trainerID)
	if window != nil {
		q = q.Where("start_date <= ? AND end_date >= ?", window.End, window.Start)
	}

	var blockouts []domain.Blockout
	if err := q.Order("start_date ASC").Find(&blockouts).Error; err != nil {
		return nil, err
	}
	return blockouts, nil
}

// FindOverlapping returns the trainer's blockouts sharing at least one
// day with rng. Inclusive on both bounds: ranges touching on a single
// day count as overlapping. excludeID skips the record being updated so
// it cannot conflict with itself.
func (r *blockoutRepository) FindOverlapping(trainerID uint, rng domain.DateRange, excludeID uint) ([]domain.Blockout, error) {
	q := r.db.Where("trainer_id = ? AND start_date <= ? AND end_date >= ?", trainerID, rng.End, rng.Start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var blockouts []domain.Blockout
	if err := q.Order("start_date ASC").Find(&blockouts).Error; err != nil {
		return nil, err
	}
	return blockouts, nil
}

// Create inserts a new blockout.
func (r *blockoutRepository) Create(blockout *domain.Blockout) error {
	return r.db.Create(blockout).Error
}

// Update saves all fields of an existing blockout.
func (r *blockoutRepository) Update(blockout *domain.Blockout) error {
	return r.db.Save(blockout).Error
}

// Delete removes a blockout by id.
func (r *blockoutRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Blockout{}, id).Error
}
