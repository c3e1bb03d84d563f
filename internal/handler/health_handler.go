package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/traindesk/traindesk-backend/pkg/cache"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness
type HealthHandler struct {
	db    *gorm.DB
	cache cache.Service
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, cacheService cache.Service) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheService}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	status := gin.H{
		"status": "ok",
		"db":     "ok",
		"redis":  "disabled",
	}
	code := http.StatusOK

	if h.db == nil {
		status["db"] = "down"
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		status["db"] = "down"
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}

	if h.cache.IsAvailable() {
		status["redis"] = "ok"
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			status["redis"] = "down"
		}
	}

	c.JSON(code, status)
}
