package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/drop/internal/handlers/dto"
	"github.com/thereayou/drop/internal/middleware"
	"github.com/thereayou/drop/internal/services"
	"github.com/thereayou/drop/internal/wall"
)

type WallHandler struct {
	svc services.MessageService
}

func NewWallHandler(svc services.MessageService) *WallHandler {
	return &WallHandler{svc: svc}
}

// GetWall загружает стену; пустую заполняет примерами.
// Проблемы с базой не ломают ответ, а приходят предупреждением.
func (h *WallHandler) GetWall(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)

	ctrl := wall.NewController(h.svc, viewer.ID, viewer.Username)
	outcome, err := ctrl.Load(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
	}

	c.JSON(http.StatusOK, dto.WallResponse{
		Notes:   ctrl.Notes(),
		Outcome: string(outcome),
		Warning: ctrl.Warning(),
	})
}
