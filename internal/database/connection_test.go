package database

import (
	"context"
	"errors"
	"testing"
)

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle", DSN: "x"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestConnectorQuery(t *testing.T) {
	conn := openTestConnector(t)

	rows, err := conn.Query(context.Background(), "SELECT 1 AS one")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if _, ok := rows[0]["one"]; !ok {
		t.Fatalf("expected column one, got %v", rows[0])
	}

	_, err = conn.Query(context.Background(), "SELEC nonsense")
	if KindOf(err) != KindQuery {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestConnectorDialect(t *testing.T) {
	conn := openTestConnector(t)
	if got := conn.Dialect(); got != "sqlite" {
		t.Fatalf("expected sqlite dialect, got %q", got)
	}
}

func TestKindOf(t *testing.T) {
	err := newError(KindNotFound, "delete message", ErrMessageNotFound)
	wrapped := errors.Join(errors.New("handler"), err)

	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("expected not_found, got %s", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatal("plain errors must be unknown")
	}
	if got := err.Error(); got != "delete message: not_found: message not found" {
		t.Fatalf("unexpected message %q", got)
	}
}
