package database

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thereayou/drop/internal/models"
	"github.com/thereayou/drop/pkg/log"
)

func openTestConnector(t *testing.T) *Connector {
	t.Helper()
	conn, err := Open(Config{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "wall.db"),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db := NewDatabase(openTestConnector(t))
	if err := db.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func sampleMessage() models.NewMessage {
	return models.NewMessage{
		Content:  "Welcome to the wall!",
		Position: models.Position{X: 30, Y: 30},
		Size:     &models.Size{Width: -15, Height: 18},
		Color:    "#000000",
		UserID:   "user-1",
		Author:   "alice",
	}
}

func mustCreate(t *testing.T, db *Database, in models.NewMessage) *models.Message {
	t.Helper()
	m, err := db.CreateMessage(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return m
}

func findMessage(t *testing.T, db *Database, id string) models.Message {
	t.Helper()
	messages, err := db.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, m := range messages {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("message %s not listed", id)
	return models.Message{}
}

func TestEnsureSchemaTwice(t *testing.T) {
	db := newTestDB(t)

	if err := db.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if !db.Ready() {
		t.Fatal("expected schema to be ready")
	}
}

func TestEnsureSchemaConcurrent(t *testing.T) {
	db := NewDatabase(openTestConnector(t))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.EnsureSchema(context.Background())
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("ensure schema: %v", err)
		}
	}
	if !db.Ready() {
		t.Fatal("expected schema to be ready")
	}
}

func TestEnsureSchemaUnreachable(t *testing.T) {
	conn := openTestConnector(t)
	if err := conn.Close(); err != nil {
		t.Fatal(err)
	}
	db := NewDatabase(conn)

	err := db.EnsureSchema(context.Background())
	if KindOf(err) != KindConnectivity {
		t.Fatalf("expected connectivity error, got %v", err)
	}
	if db.Ready() {
		t.Fatal("schema must not be ready")
	}
}

func TestOperationsFailFastBeforeSchema(t *testing.T) {
	db := NewDatabase(openTestConnector(t))
	ctx := context.Background()

	if _, err := db.ListMessages(ctx); KindOf(err) != KindNotReady {
		t.Fatalf("list: expected not ready, got %v", err)
	}
	if _, err := db.CreateMessage(ctx, sampleMessage()); KindOf(err) != KindNotReady {
		t.Fatalf("create: expected not ready, got %v", err)
	}
	if err := db.DeleteMessage(ctx, uuid.New().String()); !errors.Is(err, ErrNotReady) {
		t.Fatalf("delete: expected ErrNotReady, got %v", err)
	}
}

func TestListEmpty(t *testing.T) {
	db := newTestDB(t)

	messages, err := db.ListMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if messages == nil || len(messages) != 0 {
		t.Fatalf("expected empty slice, got %#v", messages)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	in := sampleMessage()

	created := mustCreate(t, db, in)
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", created.ID)
	}

	got := findMessage(t, db, created.ID)
	if got.Content != in.Content || got.Color != in.Color || got.Position != in.Position {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Size == nil || *got.Size != *in.Size {
		t.Fatalf("size mismatch: %+v", got.Size)
	}
	if got.UserID == nil || *got.UserID != "user-1" || got.Author == nil || *got.Author != "alice" {
		t.Fatalf("attribution mismatch: %v %v", got.UserID, got.Author)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.Before(got.CreatedAt) {
		t.Fatalf("bad timestamps: created %v updated %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestCreateWithoutOptionalFields(t *testing.T) {
	db := newTestDB(t)

	created := mustCreate(t, db, models.NewMessage{
		Content:  "plain",
		Position: models.Position{X: 1, Y: 2},
		Color:    "red",
	})

	got := findMessage(t, db, created.ID)
	if got.Size != nil {
		t.Fatalf("expected nil size, got %+v", got.Size)
	}
	if got.UserID != nil || got.Author != nil {
		t.Fatalf("expected no attribution, got %v %v", got.UserID, got.Author)
	}
}

func TestCreateValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	in := sampleMessage()
	in.Content = "   "
	if _, err := db.CreateMessage(ctx, in); !errors.Is(err, ErrEmptyContent) || KindOf(err) != KindValidation {
		t.Fatalf("expected empty content error, got %v", err)
	}

	in = sampleMessage()
	in.Color = ""
	if _, err := db.CreateMessage(ctx, in); !errors.Is(err, ErrEmptyColor) {
		t.Fatalf("expected empty color error, got %v", err)
	}
}

func TestListOrderedByCreation(t *testing.T) {
	db := newTestDB(t)

	var ids []string
	for _, text := range []string{"first", "second", "third"} {
		in := sampleMessage()
		in.Content = text
		ids = append(ids, mustCreate(t, db, in).ID)
	}

	messages, err := db.ListMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for i, m := range messages {
		if m.ID != ids[i] {
			t.Fatalf("position %d: expected %s, got %s", i, ids[i], m.ID)
		}
	}
}

func TestUpdateContentOnly(t *testing.T) {
	db := newTestDB(t)
	created := mustCreate(t, db, sampleMessage())
	before := findMessage(t, db, created.ID)

	content := "X"
	updated, err := db.UpdateMessage(context.Background(), created.ID, models.MessageUpdate{Content: &content})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Content != "X" {
		t.Fatalf("expected returned content X, got %q", updated.Content)
	}

	after := findMessage(t, db, created.ID)
	if after.Content != "X" {
		t.Fatalf("expected stored content X, got %q", after.Content)
	}
	if after.Position != before.Position || *after.Size != *before.Size || after.Color != before.Color {
		t.Fatalf("untouched fields changed: before %+v after %+v", before, after)
	}
	if *after.UserID != *before.UserID || *after.Author != *before.Author {
		t.Fatal("attribution changed")
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", before.CreatedAt, after.CreatedAt)
	}
	if after.UpdatedAt.Before(before.UpdatedAt) {
		t.Fatalf("updated_at went back: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestUpdateSeveralFields(t *testing.T) {
	db := newTestDB(t)
	created := mustCreate(t, db, sampleMessage())

	color := "#ff0000"
	upd := models.MessageUpdate{
		Color:    &color,
		Size:     &models.Size{Width: 30, Height: 20},
		Position: &models.Position{X: 80, Y: 10},
	}
	if _, err := db.UpdateMessage(context.Background(), created.ID, upd); err != nil {
		t.Fatal(err)
	}

	got := findMessage(t, db, created.ID)
	if got.Color != color || *got.Size != *upd.Size || got.Position != *upd.Position {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Content != created.Content {
		t.Fatalf("content changed: %q", got.Content)
	}
}

func TestUpdateEmptyRejected(t *testing.T) {
	db := newTestDB(t)
	created := mustCreate(t, db, sampleMessage())

	_, err := db.UpdateMessage(context.Background(), created.ID, models.MessageUpdate{})
	if !errors.Is(err, ErrEmptyUpdate) || KindOf(err) != KindValidation {
		t.Fatalf("expected empty update error, got %v", err)
	}
}

func TestUpdateUnknownAndInvalidID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	content := "X"

	_, err := db.UpdateMessage(ctx, uuid.New().String(), models.MessageUpdate{Content: &content})
	if !errors.Is(err, ErrMessageNotFound) || KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = db.UpdateMessage(ctx, "1", models.MessageUpdate{Content: &content})
	if !errors.Is(err, ErrInvalidID) || KindOf(err) != KindValidation {
		t.Fatalf("expected invalid id, got %v", err)
	}
}

func TestUpdatePositionOnly(t *testing.T) {
	db := newTestDB(t)
	created := mustCreate(t, db, sampleMessage())
	before := findMessage(t, db, created.ID)

	pos := models.Position{X: 12.5, Y: 87.25}
	if err := db.UpdateMessagePosition(context.Background(), created.ID, pos); err != nil {
		t.Fatal(err)
	}

	after := findMessage(t, db, created.ID)
	if after.Position != pos {
		t.Fatalf("expected position %+v, got %+v", pos, after.Position)
	}
	if after.Content != before.Content || after.Color != before.Color || *after.Size != *before.Size {
		t.Fatalf("position update touched other fields: %+v", after)
	}
	if after.UpdatedAt.Before(before.UpdatedAt) {
		t.Fatal("updated_at went back")
	}
}

func TestUpdatePositionUnknown(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateMessagePosition(context.Background(), uuid.New().String(), models.Position{X: 1, Y: 1})
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	keep := mustCreate(t, db, sampleMessage())
	gone := mustCreate(t, db, sampleMessage())

	if err := db.DeleteMessage(ctx, gone.ID); err != nil {
		t.Fatal(err)
	}

	messages, err := db.ListMessages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range messages {
		if m.ID == gone.ID {
			t.Fatal("deleted message still listed")
		}
	}
	if len(messages) != 1 || messages[0].ID != keep.ID {
		t.Fatalf("unexpected messages after delete: %+v", messages)
	}

	if err := db.DeleteMessage(ctx, gone.ID); KindOf(err) != KindNotFound {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
}

func TestTestConnectivity(t *testing.T) {
	conn := openTestConnector(t)
	db := NewDatabase(conn)

	if !db.TestConnectivity(context.Background()) {
		t.Fatal("expected connectivity")
	}

	conn.Close()
	if db.TestConnectivity(context.Background()) {
		t.Fatal("expected no connectivity after close")
	}
}

func TestEnsureSchemaSurvivesCancelledCaller(t *testing.T) {
	db := NewDatabase(openTestConnector(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("cancelled caller must not fail the migration: %v", err)
	}
	if !db.Ready() {
		t.Fatal("expected schema to be ready")
	}
}

func TestTimestampsDefaultInDatabase(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	id := uuid.New().String()

	err := db.conn.DB(ctx).Exec(
		"INSERT INTO messages (id, content, position, color) VALUES (?, ?, ?, ?)",
		id, "written elsewhere", `{"x":5,"y":6}`, "red",
	).Error
	if err != nil {
		t.Fatalf("insert without timestamps: %v", err)
	}

	got := findMessage(t, db, id)
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected default timestamps, got %v %v", got.CreatedAt, got.UpdatedAt)
	}
	if got.Position != (models.Position{X: 5, Y: 6}) {
		t.Fatalf("unexpected position %+v", got.Position)
	}
}

func TestUpdateRejectsBlankFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created := mustCreate(t, db, sampleMessage())

	blank := "  "
	if _, err := db.UpdateMessage(ctx, created.ID, models.MessageUpdate{Content: &blank}); !errors.Is(err, ErrEmptyContent) || KindOf(err) != KindValidation {
		t.Fatalf("expected empty content error, got %v", err)
	}
	if _, err := db.UpdateMessage(ctx, created.ID, models.MessageUpdate{Color: &blank}); !errors.Is(err, ErrEmptyColor) {
		t.Fatalf("expected empty color error, got %v", err)
	}

	got := findMessage(t, db, created.ID)
	if got.Content != created.Content || got.Color != created.Color {
		t.Fatalf("rejected update changed the row: %+v", got)
	}
}

func TestRepositoryLogsOperation(t *testing.T) {
	db := newTestDB(t)
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), zerolog.New(&buf))

	if err := db.DeleteMessage(ctx, "not-a-uuid"); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(buf.String(), `"op":"delete message"`) {
		t.Fatalf("log line missing op: %s", buf.String())
	}
}
