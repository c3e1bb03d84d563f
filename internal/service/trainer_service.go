package service

import (
	"github.com/traindesk/traindesk-backend/internal/common"
	"github.com/traindesk/traindesk-backend/internal/domain"
	"github.com/traindesk/traindesk-backend/internal/repository"
)

// TrainerService exposes the trainer directory consumed by scheduling
// UIs. Trainer CRUD lives in the user-management service.
type TrainerService struct {
	trainerRepo repository.TrainerRepository
}

// NewTrainerService creates a new TrainerService
func NewTrainerService(trainerRepo repository.TrainerRepository) *TrainerService {
	return &TrainerService{trainerRepo: trainerRepo}
}

// List returns all users holding the trainer role.
func (s *TrainerService) List() ([]domain.Trainer, error) {
	return s.trainerRepo.List()
}

// Get retrieves a trainer by id.
func (s *TrainerService) Get(id uint) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, common.ErrTrainerNotFound
	}
	return trainer, nil
}
