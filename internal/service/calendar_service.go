package service

import (
	"context"

	"github.com/traindesk/traindesk-backend/internal/common"
	"github.com/traindesk/traindesk-backend/internal/domain"
	"github.com/traindesk/traindesk-backend/internal/repository"
	"github.com/traindesk/traindesk-backend/pkg/cache"
	"github.com/traindesk/traindesk-backend/pkg/logger"
)

// Calendar views accepted by the calendar endpoint. The view is echoed
// back to the client; the projection itself is always day-keyed.
const (
	ViewMonth = "month"
	ViewWeek  = "week"
	ViewList  = "list"
)

// Calendar bundles the day-keyed projection for one trainer and window.
type Calendar struct {
	Blockouts      map[string][]domain.BlockoutSummary `json:"blockouts"`
	View           string                              `json:"view"`
	TotalBlockouts int                                 `json:"totalBlockouts"`
}

// CalendarService projects blockouts onto a per-day calendar grid.
// Read-side only: it never mutates blockouts.
type CalendarService struct {
	blockoutRepo repository.BlockoutRepository
	runRepo      repository.CourseRunRepository
	trainerRepo  repository.TrainerRepository
	cache        cache.Service
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(
	blockoutRepo repository.BlockoutRepository,
	runRepo repository.CourseRunRepository,
	trainerRepo repository.TrainerRepository,
	cacheService cache.Service,
) *CalendarService {
	return &CalendarService{
		blockoutRepo: blockoutRepo,
		runRepo:      runRepo,
		trainerRepo:  trainerRepo,
		cache:        cacheService,
	}
}

// TrainerCalendar returns the trainer's blockouts expanded per day over
// the window. Projections are cached briefly; mutations invalidate.
func (s *CalendarService) TrainerCalendar(ctx context.Context, trainerID uint, window domain.DateRange, view string) (*Calendar, error) {
	trainer, err := s.trainerRepo.FindByID(trainerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, common.ErrTrainerNotFound
	}

	key := cache.CalendarKey(trainerID, window.Start.String(), window.End.String(), view)
	var cached Calendar
	if err := s.cache.GetCalendar(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	blockouts, err := s.blockoutRepo.FindByTrainer(trainerID, &window)
	if err != nil {
		return nil, err
	}

	cal := &Calendar{
		Blockouts:      ProjectCalendar(blockouts, trainer.Name, window),
		View:           view,
		TotalBlockouts: len(blockouts),
	}

	if err := s.cache.SetCalendar(ctx, key, cal); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("calendar cache write failed")
	}
	return cal, nil
}

// TrainerRuns returns the trainer's course runs intersecting the
// window, all statuses included.
func (s *CalendarService) TrainerRuns(trainerID uint, window *domain.DateRange) ([]domain.CourseRun, error) {
	trainer, err := s.trainerRepo.FindByID(trainerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, common.ErrTrainerNotFound
	}
	return s.runRepo.FindByTrainer(trainerID, window)
}

// ProjectCalendar expands each blockout into one summary per covered
// day, keyed by ISO date and clamped to the window. A blockout spanning
// N days yields N entries; calendar grids consume the day keys
// directly, so the duplication is deliberate. Memory stays bounded by
// (days in window) x (concurrently active blockouts).
func ProjectCalendar(blockouts []domain.Blockout, trainerName string, window domain.DateRange) map[string][]domain.BlockoutSummary {
	out := make(map[string][]domain.BlockoutSummary)
	for i := range blockouts {
		b := &blockouts[i]
		rng := b.Range()
		if !rng.Overlaps(window) {
			continue
		}
		summary := b.Summary(trainerName)
		for _, day := range rng.Clamp(window).Days() {
			key := day.String()
			out[key] = append(out[key], summary)
		}
	}
	return out
}
