package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/traindesk/traindesk-backend/internal/common"
	"github.com/traindesk/traindesk-backend/internal/domain"
	"github.com/traindesk/traindesk-backend/internal/middleware"
	"github.com/traindesk/traindesk-backend/internal/service"
	"github.com/traindesk/traindesk-backend/pkg/logger"
)

// BlockoutHandler handles blockout CRUD requests
type BlockoutHandler struct {
	service *service.BlockoutService
}

// NewBlockoutHandler creates a new BlockoutHandler
func NewBlockoutHandler(service *service.BlockoutService) *BlockoutHandler {
	return &BlockoutHandler{service: service}
}

// Create handles POST /blockouts
// @Summary Propose a trainer blockout
// @Description Creates a blockout if it does not overlap existing blockouts or active course runs
// @Tags blockouts
// @Accept json
// @Produce json
// @Param request body domain.BlockoutRequest true "blockout proposal"
// @Success 201 {object} common.Response{data=domain.Blockout}
// @Failure 400 {object} common.Response
// @Failure 404 {object} common.Response
// @Failure 409 {object} common.Response
// @Security BearerAuth
// @Router /blockouts [post]
func (h *BlockoutHandler) Create(c *gin.Context) {
	var req domain.BlockoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	blockout, err := h.service.Propose(c.Request.Context(), &req)
	if err != nil {
		respondBlockoutError(c, err)
		return
	}

	common.CreatedResponse(c, blockout)
}

// Get handles GET /blockouts/:id
// @Summary Get a blockout
// @Tags blockouts
// @Produce json
// @Param id path int true "blockout id"
// @Success 200 {object} common.Response{data=domain.Blockout}
// @Failure 404 {object} common.Response
// @Router /blockouts/{id} [get]
func (h *BlockoutHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	blockout, err := h.service.Get(id)
	if err != nil {
		respondBlockoutError(c, err)
		return
	}

	common.SuccessResponse(c, blockout)
}

// Update handles PUT /blockouts/:id
// @Summary Update a blockout
// @Description Re-validates the new range exactly like create, excluding the blockout itself
// @Tags blockouts
// @Accept json
// @Produce json
// @Param id path int true "blockout id"
// @Param request body domain.BlockoutRequest true "new blockout data"
// @Success 200 {object} common.Response{data=domain.Blockout}
// @Failure 400 {object} common.Response
// @Failure 404 {object} common.Response
// @Failure 409 {object} common.Response
// @Security BearerAuth
// @Router /blockouts/{id} [put]
func (h *BlockoutHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req domain.BlockoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	blockout, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondBlockoutError(c, err)
		return
	}

	common.SuccessResponse(c, blockout)
}

// Delete handles DELETE /blockouts/:id
// @Summary Delete a blockout
// @Description Deletes unconditionally; removing availability constraints is always safe
// @Tags blockouts
// @Produce json
// @Param id path int true "blockout id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Security BearerAuth
// @Router /blockouts/{id} [delete]
func (h *BlockoutHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondBlockoutError(c, err)
		return
	}

	common.MessageResponse(c, "blockout deleted")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return uint(id), true
}

// respondBlockoutError maps service errors onto the envelope.
func respondBlockoutError(c *gin.Context, err error) {
	var conflictErr *domain.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		for _, item := range conflictErr.Conflicts {
			middleware.CountBlockoutConflict(item.Kind)
		}
		common.ConflictResponse(c, "blockout overlaps existing schedule", conflictErr.Conflicts)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, common.ErrNotATrainer):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, common.ErrTrainerNotFound):
		common.ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, common.ErrBlockoutNotFound):
		common.ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	default:
		logger.GetLogger().Error().Err(err).Msg("blockout request failed")
		common.ErrorResponse(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
