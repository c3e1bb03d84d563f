package repository

import (
	"errors"

	"github.com/traindesk/traindesk-backend/internal/domain"
	"gorm.io/gorm"
)

// TrainerRepository looks up trainer records.
type TrainerRepository interface {
	FindByID(id uint) (*domain.Trainer, error)
	List() ([]domain.Trainer, error)
}

type trainerRepository struct {
	db *gorm.DB
}

// NewTrainerRepository creates a new TrainerRepository
func NewTrainerRepository(db *gorm.DB) TrainerRepository {
	return &trainerRepository{db: db}
}

// FindByID retrieves a trainer by id, nil if absent.
func (r *trainerRepository) FindByID(id uint) (*domain.Trainer, error) {
	var trainer domain.Trainer
	err := r.db.First(&trainer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trainer, nil
}

// List returns all users holding the trainer role, ordered by name.
func (r *trainerRepository) List() ([]domain.Trainer, error) {
	var trainers []domain.Trainer
	err := r.db.
		Where("role = ?", domain.RoleTrainer).
		Order("name ASC").
		Find(&trainers).Error
	if err != nil {
		return nil, err
	}
	return trainers, nil
}
