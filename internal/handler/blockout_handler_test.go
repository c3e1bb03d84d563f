package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/traindesk/traindesk-backend/internal/common"
	"github.com/traindesk/traindesk-backend/internal/domain"
	"github.com/traindesk/traindesk-backend/internal/repository"
	"github.com/traindesk/traindesk-backend/internal/service"
	"github.com/traindesk/traindesk-backend/pkg/cache"
)

// In-memory fakes backing the real BlockoutService, so these tests
// cover the full handler -> service -> store path.

type stubTxRunner struct{}

func (stubTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type stubBlockoutRepo struct {
	blockouts map[uint]*domain.Blockout
	nextID    uint
}

func newStubBlockoutRepo() *stubBlockoutRepo {
	return &stubBlockoutRepo{blockouts: map[uint]*domain.Blockout{}, nextID: 1}
}

func (s *stubBlockoutRepo) WithTx(tx *gorm.DB) repository.BlockoutRepository { return s }

func (s *stubBlockoutRepo) FindByID(id uint) (*domain.Blockout, error) {
	if b, ok := s.blockouts[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

func (s *stubBlockoutRepo) FindByTrainer(trainerID uint, window *domain.DateRange) ([]domain.Blockout, error) {
	var out []domain.Blockout
	for _, b := range s.blockouts {
		if b.TrainerID != trainerID {
			continue
		}
		if window != nil && !window.Overlaps(b.Range()) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *stubBlockoutRepo) FindOverlapping(trainerID uint, rng domain.DateRange, excludeID uint) ([]domain.Blockout, error) {
	var out []domain.Blockout
	for _, b := range s.blockouts {
		if b.TrainerID != trainerID || b.ID == excludeID {
			continue
		}
		if rng.Overlaps(b.Range()) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *stubBlockoutRepo) Create(blockout *domain.Blockout) error {
	blockout.ID = s.nextID
	s.nextID++
	copied := *blockout
	s.blockouts[blockout.ID] = &copied
	return nil
}

func (s *stubBlockoutRepo) Update(blockout *domain.Blockout) error {
	copied := *blockout
	s.blockouts[blockout.ID] = &copied
	return nil
}

func (s *stubBlockoutRepo) Delete(id uint) error {
	delete(s.blockouts, id)
	return nil
}

type stubRunRepo struct {
	runs []domain.CourseRun
}

func (s *stubRunRepo) WithTx(tx *gorm.DB) repository.CourseRunRepository { return s }

func (s *stubRunRepo) FindByTrainer(trainerID uint, window *domain.DateRange) ([]domain.CourseRun, error) {
	var out []domain.CourseRun
	for _, r := range s.runs {
		if r.TrainerID == trainerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRunRepo) FindActiveOverlapping(trainerID uint, rng domain.DateRange) ([]domain.CourseRun, error) {
	var out []domain.CourseRun
	for _, r := range s.runs {
		if r.TrainerID == trainerID && r.IsActive() && rng.Overlaps(r.Range()) {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubTrainerRepo struct {
	trainers map[uint]*domain.Trainer
}

func (s *stubTrainerRepo) FindByID(id uint) (*domain.Trainer, error) {
	if tr, ok := s.trainers[id]; ok {
		return tr, nil
	}
	return nil, nil
}

func (s *stubTrainerRepo) List() ([]domain.Trainer, error) {
	var out []domain.Trainer
	for _, tr := range s.trainers {
		out = append(out, *tr)
	}
	return out, nil
}

func setupRouter(blockoutRepo *stubBlockoutRepo, runRepo *stubRunRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	trainerRepo := &stubTrainerRepo{trainers: map[uint]*domain.Trainer{
		1: {ID: 1, UserID: "alice.w", Name: "Alice Wong", Role: domain.RoleTrainer},
	}}
	cacheService := cache.NewService(nil)
	blockoutService := service.NewBlockoutService(stubTxRunner{}, blockoutRepo, runRepo, trainerRepo, cacheService)
	calendarService := service.NewCalendarService(blockoutRepo, runRepo, trainerRepo, cacheService)
	trainerService := service.NewTrainerService(trainerRepo)

	blockoutHandler := NewBlockoutHandler(blockoutService)
	trainerHandler := NewTrainerHandler(trainerService, blockoutService, calendarService)

	router := gin.New()
	router.POST("/blockouts", blockoutHandler.Create)
	router.GET("/blockouts/:id", blockoutHandler.Get)
	router.PUT("/blockouts/:id", blockoutHandler.Update)
	router.DELETE("/blockouts/:id", blockoutHandler.Delete)
	router.GET("/trainer/:trainerId/blockouts", trainerHandler.ListBlockouts)
	router.GET("/trainer/:trainerId/calendar", trainerHandler.Calendar)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBlockout(t *testing.T) {
	router := setupRouter(newStubBlockoutRepo(), &stubRunRepo{})

	w := doJSON(router, http.MethodPost, "/blockouts", gin.H{
		"trainerId": 1,
		"startDate": "2024-02-01",
		"endDate":   "2024-02-05",
		"reason":    "annual leave",
		"type":      "personal",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "2024-02-01", data["startDate"])
	assert.Equal(t, "annual leave", data["reason"])
}

func TestCreateBlockoutReversedRange(t *testing.T) {
	blockoutRepo := newStubBlockoutRepo()
	router := setupRouter(blockoutRepo, &stubRunRepo{})

	w := doJSON(router, http.MethodPost, "/blockouts", gin.H{
		"trainerId": 1,
		"startDate": "2024-02-05",
		"endDate":   "2024-02-01",
		"reason":    "annual leave",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "start date cannot be after end date")
	assert.Empty(t, blockoutRepo.blockouts)
}

func TestCreateBlockoutConflict(t *testing.T) {
	blockoutRepo := newStubBlockoutRepo()
	router := setupRouter(blockoutRepo, &stubRunRepo{})

	first := doJSON(router, http.MethodPost, "/blockouts", gin.H{
		"trainerId": 1,
		"startDate": "2024-02-03",
		"endDate":   "2024-02-04",
		"reason":    "medical leave",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	w := doJSON(router, http.MethodPost, "/blockouts", gin.H{
		"trainerId": 1,
		"startDate": "2024-02-01",
		"endDate":   "2024-02-05",
		"reason":    "annual leave",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
	require.Len(t, resp.Error.Conflicts, 1)
	assert.Equal(t, domain.ConflictKindBlockout, resp.Error.Conflicts[0].Kind)
	assert.Equal(t, "medical leave", resp.Error.Conflicts[0].Label)

	// the rejected proposal was not persisted
	assert.Len(t, blockoutRepo.blockouts, 1)
}

func TestCreateBlockoutRunConflict(t *testing.T) {
	runRepo := &stubRunRepo{runs: []domain.CourseRun{
		{
			ID:          21,
			TrainerID:   1,
			CourseTitle: "Workplace Safety Fundamentals",
			StartDate:   domain.NewDate(2024, 3, 11),
			EndDate:     domain.NewDate(2024, 3, 11),
			Status:      domain.RunStatusPublished,
		},
	}}
	router := setupRouter(newStubBlockoutRepo(), runRepo)

	w := doJSON(router, http.MethodPost, "/blockouts", gin.H{
		"trainerId": 1,
		"startDate": "2024-03-10",
		"endDate":   "2024-03-12",
		"reason":    "annual leave",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Error.Conflicts, 1)
	assert.Equal(t, domain.ConflictKindCourseRun, resp.Error.Conflicts[0].Kind)
	assert.Equal(t, "Workplace Safety Fundamentals", resp.Error.Conflicts[0].Label)
}

func TestCreateBlockoutUnknownTrainer(t *testing.T) {
	router := setupRouter(newStubBlockoutRepo(), &stubRunRepo{})

	w := doJSON(router, http.MethodPost, "/blockouts", gin.H{
		"trainerId": 99,
		"startDate": "2024-02-01",
		"endDate":   "2024-02-05",
		"reason":    "annual leave",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestDeleteBlockout(t *testing.T) {
	blockoutRepo := newStubBlockoutRepo()
	blockoutRepo.blockouts[3] = &domain.Blockout{
		ID: 3, TrainerID: 1,
		StartDate: domain.NewDate(2024, 2, 1),
		EndDate:   domain.NewDate(2024, 2, 2),
		Reason:    "leave",
	}
	router := setupRouter(blockoutRepo, &stubRunRepo{})

	w := doJSON(router, http.MethodDelete, "/blockouts/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "blockout deleted", resp.Message)

	w = doJSON(router, http.MethodDelete, "/blockouts/3", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalendarEndpoint(t *testing.T) {
	blockoutRepo := newStubBlockoutRepo()
	blockoutRepo.blockouts[1] = &domain.Blockout{
		ID: 1, TrainerID: 1,
		StartDate: domain.NewDate(2024, 4, 1),
		EndDate:   domain.NewDate(2024, 4, 3),
		Reason:    "annual leave",
	}
	blockoutRepo.nextID = 2
	router := setupRouter(blockoutRepo, &stubRunRepo{})

	w := doJSON(router, http.MethodGet, "/trainer/1/calendar?startDate=2024-04-01&endDate=2024-04-30&view=month", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    service.Calendar `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "month", resp.Data.View)
	assert.Equal(t, 1, resp.Data.TotalBlockouts)
	assert.Len(t, resp.Data.Blockouts, 3)
	assert.Equal(t, "Alice Wong", resp.Data.Blockouts["2024-04-02"][0].TrainerName)
}

func TestListBlockoutsRejectsHalfWindow(t *testing.T) {
	router := setupRouter(newStubBlockoutRepo(), &stubRunRepo{})

	w := doJSON(router, http.MethodGet, "/trainer/1/blockouts?startDate=2024-04-01", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
