package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/drop/internal/services"
)

type HealthHandler struct {
	svc services.MessageService
}

func NewHealthHandler(svc services.MessageService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// InitDB ручной запуск инициализации схемы
func (h *HealthHandler) InitDB(c *gin.Context) {
	if err := h.svc.EnsureSchema(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error initializing database",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database initialized successfully",
	})
}

// Connectivity проверка связи с базой
func (h *HealthHandler) Connectivity(c *gin.Context) {
	if !h.svc.TestConnectivity(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"connected": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true})
}
