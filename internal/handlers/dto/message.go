package dto

import (
	"github.com/thereayou/drop/internal/models"
	"github.com/thereayou/drop/internal/wall"
)

// CreateMessageRequest тело POST /api/messages
type CreateMessageRequest struct {
	Content  string           `json:"content" binding:"required"`
	Position *models.Position `json:"position" binding:"required"`
	Size     *models.Size     `json:"size"`
	Color    string           `json:"color" binding:"required"`
}

func (r CreateMessageRequest) ToNewMessage(userID, author string) models.NewMessage {
	return models.NewMessage{
		Content:  r.Content,
		Position: *r.Position,
		Size:     r.Size,
		Color:    r.Color,
		UserID:   userID,
		Author:   author,
	}
}

// UpdateMessageRequest тело PATCH: отсутствующие поля не меняются
type UpdateMessageRequest struct {
	Content  *string          `json:"content"`
	Position *models.Position `json:"position"`
	Size     *models.Size     `json:"size"`
	Color    *string          `json:"color"`
}

func (r UpdateMessageRequest) ToUpdate() models.MessageUpdate {
	return models.MessageUpdate{
		Content:  r.Content,
		Position: r.Position,
		Size:     r.Size,
		Color:    r.Color,
	}
}

// PositionRequest тело PUT /api/messages/:id/position
type PositionRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

func (r PositionRequest) ToPosition() models.Position {
	return models.Position{X: *r.X, Y: *r.Y}
}

type MessagesResponse struct {
	Messages []models.Message `json:"messages"`
}

// WallResponse стена в виде для отрисовки
type WallResponse struct {
	Notes   []wall.Note `json:"notes"`
	Outcome string      `json:"outcome"`
	Warning string      `json:"warning,omitempty"`
}
