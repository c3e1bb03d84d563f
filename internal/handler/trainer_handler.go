package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traindesk/traindesk-backend/internal/common"
	"github.com/traindesk/traindesk-backend/internal/domain"
	"github.com/traindesk/traindesk-backend/internal/service"
)

// TrainerHandler handles trainer directory and schedule read requests
type TrainerHandler struct {
	trainerService  *service.TrainerService
	blockoutService *service.BlockoutService
	calendarService *service.CalendarService
}

// NewTrainerHandler creates a new TrainerHandler
func NewTrainerHandler(
	trainerService *service.TrainerService,
	blockoutService *service.BlockoutService,
	calendarService *service.CalendarService,
) *TrainerHandler {
	return &TrainerHandler{
		trainerService:  trainerService,
		blockoutService: blockoutService,
		calendarService: calendarService,
	}
}

// List handles GET /trainers
// @Summary List trainers
// @Tags trainers
// @Produce json
// @Success 200 {object} common.Response{data=[]domain.Trainer}
// @Router /trainers [get]
func (h *TrainerHandler) List(c *gin.Context) {
	trainers, err := h.trainerService.List()
	if err != nil {
		respondBlockoutError(c, err)
		return
	}
	common.SuccessResponse(c, trainers)
}

// Get handles GET /trainers/:id
// @Summary Get a trainer
// @Tags trainers
// @Produce json
// @Param id path int true "trainer id"
// @Success 200 {object} common.Response{data=domain.Trainer}
// @Failure 404 {object} common.Response
// @Router /trainers/{id} [get]
func (h *TrainerHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	trainer, err := h.trainerService.Get(id)
	if err != nil {
		respondBlockoutError(c, err)
		return
	}
	common.SuccessResponse(c, trainer)
}

// ListBlockouts handles GET /trainer/:trainerId/blockouts
// @Summary List a trainer's blockouts
// @Tags trainers
// @Produce json
// @Param trainerId path int true "trainer id"
// @Param startDate query string false "window start (YYYY-MM-DD)"
// @Param endDate query string false "window end (YYYY-MM-DD)"
// @Success 200 {object} common.Response{data=[]domain.Blockout}
// @Failure 400 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /trainer/{trainerId}/blockouts [get]
func (h *TrainerHandler) ListBlockouts(c *gin.Context) {
	trainerID, ok := parseTrainerID(c)
	if !ok {
		return
	}
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	blockouts, err := h.blockoutService.ListForTrainer(trainerID, window)
	if err != nil {
		respondBlockoutError(c, err)
		return
	}
	common.SuccessResponse(c, blockouts)
}

// Calendar handles GET /trainer/:trainerId/calendar
// @Summary Trainer calendar projection
// @Description Blockouts expanded into one entry per covered day, keyed by ISO date
// @Tags trainers
// @Produce json
// @Param trainerId path int true "trainer id"
// @Param startDate query string false "window start (YYYY-MM-DD), defaults to current month"
// @Param endDate query string false "window end (YYYY-MM-DD), defaults to current month"
// @Param view query string false "calendar view hint (month, week, list)"
// @Success 200 {object} common.Response{data=service.Calendar}
// @Failure 400 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /trainer/{trainerId}/calendar [get]
func (h *TrainerHandler) Calendar(c *gin.Context) {
	trainerID, ok := parseTrainerID(c)
	if !ok {
		return
	}
	window, ok := parseWindow(c)
	if !ok {
		return
	}
	if window == nil {
		w := currentMonth()
		window = &w
	}

	view := c.DefaultQuery("view", service.ViewMonth)

	calendar, err := h.calendarService.TrainerCalendar(c.Request.Context(), trainerID, *window, view)
	if err != nil {
		respondBlockoutError(c, err)
		return
	}
	common.SuccessResponse(c, calendar)
}

// ListCourseRuns handles GET /trainer/:trainerId/course-runs
// @Summary List a trainer's course runs
// @Tags trainers
// @Produce json
// @Param trainerId path int true "trainer id"
// @Param startDate query string false "window start (YYYY-MM-DD)"
// @Param endDate query string false "window end (YYYY-MM-DD)"
// @Success 200 {object} common.Response{data=[]domain.CourseRun}
// @Failure 400 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /trainer/{trainerId}/course-runs [get]
func (h *TrainerHandler) ListCourseRuns(c *gin.Context) {
	trainerID, ok := parseTrainerID(c)
	if !ok {
		return
	}
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	runs, err := h.calendarService.TrainerRuns(trainerID, window)
	if err != nil {
		respondBlockoutError(c, err)
		return
	}
	common.SuccessResponse(c, runs)
}

func parseTrainerID(c *gin.Context) (uint, bool) {
	raw := c.Param("trainerId")
	if raw == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "trainerId is required", nil)
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid trainerId", err)
		return 0, false
	}
	return uint(id), true
}

// parseWindow reads the optional startDate/endDate query pair. The
// window applies only when both are present; a reversed window is a 400.
func parseWindow(c *gin.Context) (*domain.DateRange, bool) {
	startRaw := c.Query("startDate")
	endRaw := c.Query("endDate")
	if startRaw == "" && endRaw == "" {
		return nil, true
	}
	if startRaw == "" || endRaw == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "startDate and endDate must be provided together", nil)
		return nil, false
	}

	start, err := domain.ParseDate(startRaw)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
		return nil, false
	}
	end, err := domain.ParseDate(endRaw)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
		return nil, false
	}

	window := domain.DateRange{Start: start, End: end}
	if !window.Valid() {
		common.ErrorResponse(c, http.StatusBadRequest, "start date cannot be after end date", nil)
		return nil, false
	}
	return &window, true
}

func currentMonth() domain.DateRange {
	now := time.Now().UTC()
	first := domain.NewDate(now.Year(), now.Month(), 1)
	last := domain.Date{Time: first.AddDate(0, 1, -1)}
	return domain.DateRange{Start: first, End: last}
}
