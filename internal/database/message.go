package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/drop/internal/models"
	"github.com/thereayou/drop/pkg/log"
)

// ListMessages возвращает все записи стены, старые первыми
func (d *Database) ListMessages(ctx context.Context) (messages []models.Message, err error) {
	const op = "list messages"
	start := time.Now()
	defer func() { err = observe("list", start, err) }()

	l := log.Ctx(ctx).With().Str(log.FieldOp, op).Logger()
	if err := d.checkReady(op); err != nil {
		l.Warn().Err(err).Msg("list rejected")
		return nil, err
	}

	messages = []models.Message{}
	if err := d.conn.DB(ctx).Order("created_at ASC").Find(&messages).Error; err != nil {
		l.Error().Err(err).Msg("failed to fetch messages")
		return nil, newError(KindQuery, op, err)
	}

	return messages, nil
}

// CreateMessage сохраняет новую запись; id и время выставляет сервер
func (d *Database) CreateMessage(ctx context.Context, in models.NewMessage) (created *models.Message, err error) {
	const op = "create message"
	start := time.Now()
	defer func() { err = observe("create", start, err) }()

	l := log.Ctx(ctx).With().Str(log.FieldOp, op).Logger()
	if strings.TrimSpace(in.Content) == "" {
		l.Warn().Msg("create rejected: empty content")
		return nil, newError(KindValidation, op, ErrEmptyContent)
	}
	if strings.TrimSpace(in.Color) == "" {
		l.Warn().Msg("create rejected: empty color")
		return nil, newError(KindValidation, op, ErrEmptyColor)
	}
	if err := d.checkReady(op); err != nil {
		l.Warn().Err(err).Msg("create rejected")
		return nil, err
	}

	message := &models.Message{
		Content:  in.Content,
		Position: in.Position,
		Size:     in.Size,
		Color:    in.Color,
		UserID:   optional(in.UserID),
		Author:   optional(in.Author),
	}

	result := d.conn.DB(ctx).Create(message)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to create message")
		return nil, newError(KindQuery, op, result.Error)
	}
	if result.RowsAffected == 0 {
		l.Error().Msg("no row returned after insert")
		return nil, newError(KindQuery, op, errors.New("no row returned after insert"))
	}

	l.Debug().Str(log.FieldMessageID, message.ID).Msg("message created")
	return message, nil
}

// UpdateMessage переписывает только переданные поля; updated_at обновляется всегда
func (d *Database) UpdateMessage(ctx context.Context, id string, upd models.MessageUpdate) (updated *models.Message, err error) {
	const op = "update message"
	start := time.Now()
	defer func() { err = observe("update", start, err) }()

	l := log.Ctx(ctx).With().Str(log.FieldOp, op).Str(log.FieldMessageID, id).Logger()
	if err := validateID(op, id); err != nil {
		l.Warn().Err(err).Msg("update rejected")
		return nil, err
	}
	if upd.IsEmpty() {
		l.Error().Msg("update called without fields")
		return nil, newError(KindValidation, op, ErrEmptyUpdate)
	}
	if upd.Content != nil && strings.TrimSpace(*upd.Content) == "" {
		l.Warn().Msg("update rejected: empty content")
		return nil, newError(KindValidation, op, ErrEmptyContent)
	}
	if upd.Color != nil && strings.TrimSpace(*upd.Color) == "" {
		l.Warn().Msg("update rejected: empty color")
		return nil, newError(KindValidation, op, ErrEmptyColor)
	}
	if err := d.checkReady(op); err != nil {
		l.Warn().Err(err).Msg("update rejected")
		return nil, err
	}

	cols := upd.Columns()
	cols["updated_at"] = time.Now()

	var message models.Message
	txErr := d.conn.DB(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Message{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMessageNotFound
		}
		return tx.First(&message, "id = ?", id).Error
	})
	if txErr != nil {
		if errors.Is(txErr, ErrMessageNotFound) || errors.Is(txErr, gorm.ErrRecordNotFound) {
			l.Warn().Msg("update target not found")
			return nil, newError(KindNotFound, op, ErrMessageNotFound)
		}
		l.Error().Err(txErr).Msg("failed to update message")
		return nil, newError(KindQuery, op, txErr)
	}

	return &message, nil
}

// UpdateMessagePosition быстрый путь для перетаскивания: меняет только position
func (d *Database) UpdateMessagePosition(ctx context.Context, id string, pos models.Position) (err error) {
	const op = "update message position"
	start := time.Now()
	defer func() { err = observe("update_position", start, err) }()

	l := log.Ctx(ctx).With().Str(log.FieldOp, op).Str(log.FieldMessageID, id).Logger()
	if err := validateID(op, id); err != nil {
		l.Warn().Err(err).Msg("position update rejected")
		return err
	}
	if err := d.checkReady(op); err != nil {
		l.Warn().Err(err).Msg("position update rejected")
		return err
	}

	res := d.conn.DB(ctx).Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"position":   pos,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		l.Error().Err(res.Error).Msg("failed to update message position")
		return newError(KindQuery, op, res.Error)
	}
	if res.RowsAffected == 0 {
		return newError(KindNotFound, op, ErrMessageNotFound)
	}

	return nil
}

// DeleteMessage удаляет запись насовсем
func (d *Database) DeleteMessage(ctx context.Context, id string) (err error) {
	const op = "delete message"
	start := time.Now()
	defer func() { err = observe("delete", start, err) }()

	l := log.Ctx(ctx).With().Str(log.FieldOp, op).Str(log.FieldMessageID, id).Logger()
	if err := validateID(op, id); err != nil {
		l.Warn().Err(err).Msg("delete rejected")
		return err
	}
	if err := d.checkReady(op); err != nil {
		l.Warn().Err(err).Msg("delete rejected")
		return err
	}

	res := d.conn.DB(ctx).Delete(&models.Message{}, "id = ?", id)
	if res.Error != nil {
		l.Error().Err(res.Error).Msg("failed to delete message")
		return newError(KindQuery, op, res.Error)
	}
	if res.RowsAffected == 0 {
		return newError(KindNotFound, op, ErrMessageNotFound)
	}

	l.Debug().Msg("message deleted")
	return nil
}

func validateID(op, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return newError(KindValidation, op, fmt.Errorf("%w %q", ErrInvalidID, id))
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
