package database

import (
	"context"
	"time"

	"github.com/thereayou/drop/internal/metrics"
	"github.com/thereayou/drop/internal/models"
	"github.com/thereayou/drop/pkg/log"
)

const schemaTimeout = 30 * time.Second

// EnsureSchema создаёт таблицы, если их нет. После первого успеха
// ничего не делает; параллельные вызовы схлопываются в один.
func (d *Database) EnsureSchema(ctx context.Context) error {
	if d.ready.Load() {
		return nil
	}

	// отмена запроса первого вызвавшего не должна ронять остальных
	_, err, _ := d.sf.Do("schema", func() (interface{}, error) {
		if d.ready.Load() {
			return nil, nil
		}
		mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), schemaTimeout)
		defer cancel()
		return nil, d.migrate(mctx)
	})
	return err
}

// Ready сообщает, прошла ли инициализация схемы
func (d *Database) Ready() bool {
	return d.ready.Load()
}

func (d *Database) migrate(ctx context.Context) error {
	l := log.Ctx(ctx)
	l.Info().Msg("running database initialization")

	if err := d.conn.Ping(ctx); err != nil {
		l.Error().Err(err).Msg("database is unreachable")
		return newError(KindConnectivity, "ensure schema", err)
	}

	if err := d.conn.DB(ctx).AutoMigrate(&models.Message{}, &models.User{}); err != nil {
		l.Error().Err(err).Msg("failed to initialize database schema")
		return newError(KindSchema, "ensure schema", err)
	}

	d.ready.Store(true)
	metrics.SchemaReady.Set(1)
	l.Info().Msg("database initialized")
	return nil
}

// TestConnectivity проверяет, что база отвечает на запросы
func (d *Database) TestConnectivity(ctx context.Context) bool {
	l := log.Ctx(ctx)

	if _, err := d.conn.Query(ctx, "SELECT 1"); err != nil {
		l.Error().Err(err).Msg("database connection test failed")
		return false
	}

	l.Debug().Msg("database connection test successful")
	return true
}

func (d *Database) checkReady(op string) error {
	if !d.ready.Load() {
		return newError(KindNotReady, op, ErrNotReady)
	}
	return nil
}

// observe пишет метрики операции и возвращает err без изменений
func observe(op string, start time.Time, err error) error {
	metrics.StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		result = KindOf(err).String()
	}
	metrics.StoreOperations.WithLabelValues(op, result).Inc()
	return err
}
