package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/traindesk/traindesk-backend/internal/common"
	"github.com/traindesk/traindesk-backend/internal/domain"
	"github.com/traindesk/traindesk-backend/internal/repository"
	"github.com/traindesk/traindesk-backend/pkg/cache"
	"github.com/traindesk/traindesk-backend/pkg/logger"
	"gorm.io/gorm"
)

// TxRunner abstracts gorm's transaction entrypoint so the service can
// be exercised with fakes in tests. *gorm.DB satisfies it.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// serializable isolation keeps two concurrent proposals for the same
// trainer from both passing the overlap check before either write
// commits.
var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// BlockoutService guards the trainer-availability invariant: for one
// trainer, persisted blockouts never overlap each other or an active
// course run. The overlap check and the write run in a single
// serializable transaction.
type BlockoutService struct {
	db           TxRunner
	blockoutRepo repository.BlockoutRepository
	runRepo      repository.CourseRunRepository
	trainerRepo  repository.TrainerRepository
	cache        cache.Service
}

// NewBlockoutService creates a new BlockoutService
func NewBlockoutService(
	db TxRunner,
	blockoutRepo repository.BlockoutRepository,
	runRepo repository.CourseRunRepository,
	trainerRepo repository.TrainerRepository,
	cacheService cache.Service,
) *BlockoutService {
	return &BlockoutService{
		db:           db,
		blockoutRepo: blockoutRepo,
		runRepo:      runRepo,
		trainerRepo:  trainerRepo,
		cache:        cacheService,
	}
}

// Propose validates and persists a new blockout. On overlap it returns
// *domain.ConflictError listing what the range collided with; nothing
// is written in that case.
func (s *BlockoutService) Propose(ctx context.Context, req *domain.BlockoutRequest) (*domain.Blockout, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.checkTrainer(req.TrainerID); err != nil {
		return nil, err
	}

	blockout := &domain.Blockout{
		TrainerID:        req.TrainerID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Reason:           req.Reason,
		Type:             blockoutType(req.Type),
		Description:      req.Description,
		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkConflicts(tx, blockout.TrainerID, blockout.Range(), 0); err != nil {
			return err
		}
		return s.blockoutRepo.WithTx(tx).Create(blockout)
	}, serializable)
	if err != nil {
		return nil, err
	}

	s.invalidateCalendar(ctx, blockout.TrainerID)
	return blockout, nil
}

// Update re-validates the new range the same way as create, excluding
// the blockout itself from the overlap check.
func (s *BlockoutService) Update(ctx context.Context, id uint, req *domain.BlockoutRequest) (*domain.Blockout, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.blockoutRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, common.ErrBlockoutNotFound
	}

	if err := s.checkTrainer(req.TrainerID); err != nil {
		return nil, err
	}

	previousTrainer := existing.TrainerID
	existing.TrainerID = req.TrainerID
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate
	existing.Reason = req.Reason
	existing.Type = blockoutType(req.Type)
	existing.Description = req.Description
	existing.IsRecurring = req.IsRecurring
	existing.RecurringPattern = req.RecurringPattern

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkConflicts(tx, existing.TrainerID, existing.Range(), existing.ID); err != nil {
			return err
		}
		return s.blockoutRepo.WithTx(tx).Update(existing)
	}, serializable)
	if err != nil {
		return nil, err
	}

	s.invalidateCalendar(ctx, existing.TrainerID)
	if previousTrainer != existing.TrainerID {
		s.invalidateCalendar(ctx, previousTrainer)
	}
	return existing, nil
}

// Get retrieves a blockout by id.
func (s *BlockoutService) Get(id uint) (*domain.Blockout, error) {
	blockout, err := s.blockoutRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if blockout == nil {
		return nil, common.ErrBlockoutNotFound
	}
	return blockout, nil
}

// Delete removes a blockout unconditionally. Removing an availability
// constraint can never create a conflict, so no overlap check runs.
func (s *BlockoutService) Delete(ctx context.Context, id uint) error {
	existing, err := s.blockoutRepo.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return common.ErrBlockoutNotFound
	}

	if err := s.blockoutRepo.Delete(id); err != nil {
		return err
	}

	s.invalidateCalendar(ctx, existing.TrainerID)
	return nil
}

// ListForTrainer returns a trainer's blockouts, optionally narrowed to
// a window.
func (s *BlockoutService) ListForTrainer(trainerID uint, window *domain.DateRange) ([]domain.Blockout, error) {
	if err := s.checkTrainer(trainerID); err != nil {
		return nil, err
	}
	return s.blockoutRepo.FindByTrainer(trainerID, window)
}

// validateRequest rejects malformed proposals before any store lookup.
func validateRequest(req *domain.BlockoutRequest) error {
	if req.TrainerID == 0 {
		return fmt.Errorf("%w: trainerId is required", common.ErrInvalidInput)
	}
	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", common.ErrInvalidInput)
	}
	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", common.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: reason is required", common.ErrInvalidInput)
	}
	if !req.Range().Valid() {
		return fmt.Errorf("%w: start date cannot be after end date", common.ErrInvalidInput)
	}
	return nil
}

func blockoutType(t string) string {
	if t == "" {
		return domain.BlockoutTypeUnavailable
	}
	return t
}

func (s *BlockoutService) checkTrainer(trainerID uint) error {
	trainer, err := s.trainerRepo.FindByID(trainerID)
	if err != nil {
		return err
	}
	if trainer == nil {
		return common.ErrTrainerNotFound
	}
	if !trainer.IsTrainer() {
		return common.ErrNotATrainer
	}
	return nil
}

// checkConflicts applies the availability gate inside the caller's
// transaction. Blockout-vs-blockout conflicts short-circuit: course
// runs are only consulted when no blockout overlaps, and the two
// categories are never merged into one report.
func (s *BlockoutService) checkConflicts(tx *gorm.DB, trainerID uint, rng domain.DateRange, excludeID uint) error {
	candidates, err := s.blockoutRepo.WithTx(tx).FindOverlapping(trainerID, rng, excludeID)
	if err != nil {
		return err
	}
	var conflicts []domain.ConflictItem
	for i := range candidates {
		if rng.Overlaps(candidates[i].Range()) {
			conflicts = append(conflicts, domain.BlockoutConflict(&candidates[i]))
		}
	}
	if len(conflicts) > 0 {
		return &domain.ConflictError{Conflicts: conflicts}
	}

	runs, err := s.runRepo.WithTx(tx).FindActiveOverlapping(trainerID, rng)
	if err != nil {
		return err
	}
	for i := range runs {
		// The store may over-fetch; re-apply the precise predicate.
		if runs[i].IsActive() && rng.Overlaps(runs[i].Range()) {
			conflicts = append(conflicts, domain.CourseRunConflict(&runs[i]))
		}
	}
	if len(conflicts) > 0 {
		return &domain.ConflictError{Conflicts: conflicts}
	}
	return nil
}

func (s *BlockoutService) invalidateCalendar(ctx context.Context, trainerID uint) {
	if err := s.cache.InvalidateTrainerCalendar(ctx, trainerID); err != nil {
		logger.GetLogger().Warn().Err(err).Uint("trainer_id", trainerID).Msg("calendar cache invalidation failed")
	}
}
