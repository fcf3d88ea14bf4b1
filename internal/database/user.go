package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/thereayou/drop/internal/models"
	"github.com/thereayou/drop/pkg/log"
)

func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	const op = "save user"
	if err := d.checkReady(op); err != nil {
		return err
	}

	if err := d.conn.DB(ctx).Create(user).Error; err != nil {
		l := log.Ctx(ctx).With().Str(log.FieldOp, op).Logger()
		l.Error().Err(err).Str("username", user.Username).Msg("failed to save user")
		return newError(KindQuery, op, err)
	}
	return nil
}

func (d *Database) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "find user"
	if err := d.checkReady(op); err != nil {
		return nil, err
	}

	user := models.User{}
	if err := d.conn.DB(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, op, ErrUserNotFound)
		}
		return nil, newError(KindQuery, op, err)
	}
	return &user, nil
}

func (d *Database) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "get user"
	if err := d.checkReady(op); err != nil {
		return nil, err
	}

	user := models.User{}
	if err := d.conn.DB(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, op, ErrUserNotFound)
		}
		return nil, newError(KindQuery, op, err)
	}
	return &user, nil
}

func (d *Database) UpdateLastSeen(ctx context.Context, id string) error {
	const op = "update last seen"
	if err := d.checkReady(op); err != nil {
		return err
	}

	res := d.conn.DB(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now())
	if res.Error != nil {
		return newError(KindQuery, op, res.Error)
	}
	if res.RowsAffected == 0 {
		return newError(KindNotFound, op, ErrUserNotFound)
	}
	return nil
}
