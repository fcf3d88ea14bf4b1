package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message запись на стене, как она лежит в таблице messages
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Position  Position  `gorm:"not null" json:"position"`
	Size      *Size     `json:"size,omitempty"`
	Color     string    `gorm:"type:text;not null" json:"color"`
	UserID    *string   `gorm:"type:text" json:"user_id,omitempty"`
	Author    *string   `gorm:"type:text" json:"author,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// NewMessage поля, которые задаёт клиент при создании
type NewMessage struct {
	Content  string
	Position Position
	Size     *Size
	Color    string
	UserID   string
	Author   string
}

// MessageUpdate частичное обновление: nil значит "не трогать"
type MessageUpdate struct {
	Content  *string
	Position *Position
	Size     *Size
	Color    *string
}

func (u MessageUpdate) IsEmpty() bool {
	return u.Content == nil && u.Position == nil && u.Size == nil && u.Color == nil
}

// Columns возвращает только переданные поля в виде колонок
func (u MessageUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if u.Content != nil {
		cols["content"] = *u.Content
	}
	if u.Position != nil {
		cols["position"] = *u.Position
	}
	if u.Size != nil {
		cols["size"] = *u.Size
	}
	if u.Color != nil {
		cols["color"] = *u.Color
	}
	return cols
}
