package services

import (
	"context"

	"github.com/thereayou/drop/internal/models"
)

// MessageService контракт хранилища записей стены. Реализуется *database.Database.
type MessageService interface {
	EnsureSchema(ctx context.Context) error
	TestConnectivity(ctx context.Context) bool
	ListMessages(ctx context.Context) ([]models.Message, error)
	CreateMessage(ctx context.Context, in models.NewMessage) (*models.Message, error)
	UpdateMessage(ctx context.Context, id string, upd models.MessageUpdate) (*models.Message, error)
	UpdateMessagePosition(ctx context.Context, id string, pos models.Position) error
	DeleteMessage(ctx context.Context, id string) error
}
