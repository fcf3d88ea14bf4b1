package database

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Database репозиторий записей и пользователей поверх Connector.
// Все операции, кроме EnsureSchema и TestConnectivity, требуют готовой схемы.
type Database struct {
	conn  *Connector
	ready atomic.Bool
	sf    singleflight.Group
}

func NewDatabase(conn *Connector) *Database {
	return &Database{conn: conn}
}
