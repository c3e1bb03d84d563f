package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/traindesk/traindesk-backend/internal/common"
	"github.com/traindesk/traindesk-backend/internal/domain"
	"github.com/traindesk/traindesk-backend/pkg/cache"
)

func TestProjectCalendarCompleteness(t *testing.T) {
	blockouts := []domain.Blockout{
		{
			ID:        1,
			TrainerID: 1,
			StartDate: date(2024, 4, 1),
			EndDate:   date(2024, 4, 3),
			Reason:    "annual leave",
			Type:      domain.BlockoutTypePersonal,
		},
	}
	window := domain.DateRange{Start: date(2024, 4, 1), End: date(2024, 4, 30)}

	projection := ProjectCalendar(blockouts, "Alice Wong", window)

	assert.Len(t, projection, 3)
	for _, key := range []string{"2024-04-01", "2024-04-02", "2024-04-03"} {
		entries := projection[key]
		assert.Len(t, entries, 1, "day %s", key)
		assert.Equal(t, uint(1), entries[0].ID)
		assert.Equal(t, "Alice Wong", entries[0].TrainerName)
		assert.Equal(t, "annual leave", entries[0].Reason)
	}
}

func TestProjectCalendarClampsToWindow(t *testing.T) {
	blockouts := []domain.Blockout{
		{ID: 2, TrainerID: 1, StartDate: date(2024, 3, 28), EndDate: date(2024, 4, 2), Reason: "training"},
	}
	window := domain.DateRange{Start: date(2024, 4, 1), End: date(2024, 4, 30)}

	projection := ProjectCalendar(blockouts, "Alice Wong", window)

	assert.Len(t, projection, 2)
	assert.Contains(t, projection, "2024-04-01")
	assert.Contains(t, projection, "2024-04-02")
	assert.NotContains(t, projection, "2024-03-31")
}

func TestProjectCalendarSkipsDisjointBlockouts(t *testing.T) {
	blockouts := []domain.Blockout{
		{ID: 3, TrainerID: 1, StartDate: date(2024, 5, 1), EndDate: date(2024, 5, 2), Reason: "leave"},
	}
	window := domain.DateRange{Start: date(2024, 4, 1), End: date(2024, 4, 30)}

	projection := ProjectCalendar(blockouts, "Alice Wong", window)
	assert.Empty(t, projection)
}

func TestProjectCalendarStacksOverlappingDays(t *testing.T) {
	// distinct trainers' blockouts are projected separately, but the
	// grid stacks entries sharing a day key
	blockouts := []domain.Blockout{
		{ID: 4, TrainerID: 1, StartDate: date(2024, 4, 10), EndDate: date(2024, 4, 11), Reason: "leave"},
		{ID: 5, TrainerID: 1, StartDate: date(2024, 4, 11), EndDate: date(2024, 4, 12), Reason: "maintenance"},
	}
	window := domain.DateRange{Start: date(2024, 4, 1), End: date(2024, 4, 30)}

	projection := ProjectCalendar(blockouts, "Alice Wong", window)
	assert.Len(t, projection["2024-04-11"], 2)
	assert.Len(t, projection["2024-04-10"], 1)
	assert.Len(t, projection["2024-04-12"], 1)
}

func newCalendarTestService() (*CalendarService, *MockBlockoutRepository, *MockCourseRunRepository, *MockTrainerRepository) {
	blockoutRepo := new(MockBlockoutRepository)
	runRepo := new(MockCourseRunRepository)
	trainerRepo := new(MockTrainerRepository)
	svc := NewCalendarService(blockoutRepo, runRepo, trainerRepo, cache.NewService(nil))
	return svc, blockoutRepo, runRepo, trainerRepo
}

func TestTrainerCalendar(t *testing.T) {
	svc, blockoutRepo, _, trainerRepo := newCalendarTestService()

	trainerRepo.On("FindByID", uint(1)).Return(validTrainer(1), nil)
	blockoutRepo.On("FindByTrainer", uint(1), mock.Anything).Return([]domain.Blockout{
		{ID: 1, TrainerID: 1, StartDate: date(2024, 4, 1), EndDate: date(2024, 4, 3), Reason: "annual leave"},
	}, nil)

	window := domain.DateRange{Start: date(2024, 4, 1), End: date(2024, 4, 30)}
	calendar, err := svc.TrainerCalendar(context.Background(), 1, window, ViewMonth)

	assert.NoError(t, err)
	assert.Equal(t, ViewMonth, calendar.View)
	assert.Equal(t, 1, calendar.TotalBlockouts)
	assert.Len(t, calendar.Blockouts, 3)
}

func TestTrainerCalendarUnknownTrainer(t *testing.T) {
	svc, blockoutRepo, _, trainerRepo := newCalendarTestService()

	trainerRepo.On("FindByID", uint(9)).Return(nil, nil)

	window := domain.DateRange{Start: date(2024, 4, 1), End: date(2024, 4, 30)}
	_, err := svc.TrainerCalendar(context.Background(), 9, window, ViewMonth)

	assert.ErrorIs(t, err, common.ErrTrainerNotFound)
	blockoutRepo.AssertNotCalled(t, "FindByTrainer", mock.Anything, mock.Anything)
}
