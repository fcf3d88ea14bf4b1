package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/drop/internal/handlers/dto"
	"github.com/thereayou/drop/internal/middleware"
	"github.com/thereayou/drop/internal/services"
)

type MessageHandler struct {
	svc services.MessageService
}

func NewMessageHandler(svc services.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// ListMessages все записи стены в порядке создания
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.svc.ListMessages(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to get messages")
		return
	}

	c.JSON(http.StatusOK, dto.MessagesResponse{Messages: messages})
}

// CreateMessage создаёт запись от имени вошедшего пользователя
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	viewer, ok := middleware.ViewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.svc.CreateMessage(c.Request.Context(), req.ToNewMessage(viewer.ID, viewer.Username))
	if err != nil {
		respondError(c, err, "failed to save message")
		return
	}

	c.JSON(http.StatusCreated, message)
}

// UpdateMessage обновляет только переданные поля
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	var req dto.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.svc.UpdateMessage(c.Request.Context(), c.Param("id"), req.ToUpdate())
	if err != nil {
		respondError(c, err, "failed to update message")
		return
	}

	c.JSON(http.StatusOK, message)
}

// UpdateMessagePosition сохраняет позицию после перетаскивания
func (h *MessageHandler) UpdateMessagePosition(c *gin.Context) {
	var req dto.PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.UpdateMessagePosition(c.Request.Context(), c.Param("id"), req.ToPosition()); err != nil {
		respondError(c, err, "failed to update message position")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteMessage удаляет запись
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	if err := h.svc.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted successfully"})
}
