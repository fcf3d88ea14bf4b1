package wall

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/thereayou/drop/internal/database"
	"github.com/thereayou/drop/internal/metrics"
	"github.com/thereayou/drop/internal/models"
	"github.com/thereayou/drop/internal/services"
	"github.com/thereayou/drop/pkg/log"
)

const (
	WarningOffline = "Failed to connect to database. Your messages will not be saved."
	WarningInit    = "Failed to initialize database. Please check your configuration."
	WarningLoad    = "Error loading messages. Please try again later."
)

var (
	ErrEmptyText    = errors.New("note text is empty")
	ErrNoteNotFound = errors.New("note not found on the wall")
)

// Outcome чем закончилась загрузка стены
type Outcome string

const (
	OutcomeStored  Outcome = "stored"
	OutcomeSeeded  Outcome = "seeded"
	OutcomeOffline Outcome = "offline"
	OutcomePreview Outcome = "preview"
	OutcomeFailed  Outcome = "failed"
)

// Controller локальное состояние стены одного зрителя.
// Изменения применяются сразу, а при ошибке хранилища откатываются.
type Controller struct {
	store    services.MessageService
	viewerID string
	author   string
	now      func() time.Time

	mu      sync.Mutex
	notes   []Note
	warning string
	offline bool
	// id записей, которых нет в хранилище: правятся только в памяти
	local map[string]bool
}

func NewController(store services.MessageService, viewerID, author string) *Controller {
	return &Controller{
		store:    store,
		viewerID: viewerID,
		author:   author,
		now:      time.Now,
		local:    make(map[string]bool),
	}
}

// Load готовит схему, проверяет базу и заполняет стену.
// Недоступная база не считается ошибкой: показываем примеры и предупреждение.
func (c *Controller) Load(ctx context.Context) (outcome Outcome, err error) {
	defer func() { metrics.WallLoads.WithLabelValues(string(outcome)).Inc() }()

	l := log.Ctx(ctx)

	if err := c.store.EnsureSchema(ctx); err != nil {
		if database.KindOf(err) == database.KindConnectivity {
			l.Warn().Err(err).Msg("database unreachable, showing sample notes")
			c.setOffline()
			return OutcomeOffline, nil
		}
		l.Error().Err(err).Msg("failed to initialize database")
		c.setState(nil, WarningInit)
		return OutcomeFailed, err
	}

	if !c.store.TestConnectivity(ctx) {
		l.Warn().Msg("database connection test failed, showing sample notes")
		c.setOffline()
		return OutcomeOffline, nil
	}

	messages, err := c.store.ListMessages(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to load messages")
		c.setState(nil, WarningLoad)
		return OutcomeFailed, err
	}

	if len(messages) > 0 {
		notes := make([]Note, len(messages))
		for i, m := range messages {
			notes[i] = FromMessage(m)
		}
		c.setState(notes, "")
		return OutcomeStored, nil
	}

	samples := SampleNotes()
	c.setState(samples, "")
	c.markLocal(samples)

	// анонимный зритель видит примеры, но не пишет их в базу
	if c.viewerID == "" {
		return OutcomePreview, nil
	}

	for _, s := range samples {
		saved, err := c.store.CreateMessage(ctx, ToNewMessage(s, c.viewerID, c.author))
		if err != nil {
			l.Warn().Err(err).Str("text", s.Text).Msg("failed to persist sample note")
			continue
		}
		c.replaceID(s.ID, saved.ID)
	}
	return OutcomeSeeded, nil
}

// Create добавляет запись сразу с временным id и подменяет его на настоящий после сохранения
func (c *Controller) Create(ctx context.Context, text string, pos models.Position, style Style) (Note, error) {
	if strings.TrimSpace(text) == "" {
		return Note{}, ErrEmptyText
	}

	note := Note{
		Text:     text,
		Position: pos,
		Color:    style.Color,
		Rotation: style.Rotation,
		FontSize: style.FontSize,
	}
	if note.Color == "" {
		note.Color = DefaultColor
	}
	if note.FontSize == 0 {
		note.FontSize = DefaultFontSize
	}

	c.mu.Lock()
	note.ID = c.placeholderIDLocked()
	c.notes = append(c.notes, note)
	if c.offline {
		c.local[note.ID] = true
		c.mu.Unlock()
		return note, nil
	}
	c.mu.Unlock()

	saved, err := c.store.CreateMessage(ctx, ToNewMessage(note, c.viewerID, c.author))
	if err != nil {
		c.mu.Lock()
		c.removeLocked(note.ID)
		c.mu.Unlock()
		return Note{}, err
	}

	c.replaceID(note.ID, saved.ID)
	note.ID = saved.ID
	return note, nil
}

// Edit меняет текст и оформление; в хранилище уходят только изменённые поля
func (c *Controller) Edit(ctx context.Context, id, text string, style Style) (Note, error) {
	if strings.TrimSpace(text) == "" {
		return Note{}, ErrEmptyText
	}

	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return Note{}, ErrNoteNotFound
	}
	prev := c.notes[idx]
	next := prev
	next.Text = text
	next.Rotation = style.Rotation
	if style.Color != "" {
		next.Color = style.Color
	}
	if style.FontSize != 0 {
		next.FontSize = style.FontSize
	}
	c.notes[idx] = next
	local := c.local[id]
	c.mu.Unlock()

	upd := changedFields(prev, next)
	if local || upd.IsEmpty() {
		return next, nil
	}

	updated, err := c.store.UpdateMessage(ctx, id, upd)
	if err != nil {
		c.mu.Lock()
		if i := c.indexLocked(id); i >= 0 {
			c.notes[i] = prev
		}
		c.mu.Unlock()
		return prev, err
	}

	next = FromMessage(*updated)
	c.mu.Lock()
	if i := c.indexLocked(id); i >= 0 {
		c.notes[i] = next
	}
	c.mu.Unlock()
	return next, nil
}

// Move двигает запись после перетаскивания
func (c *Controller) Move(ctx context.Context, id string, pos models.Position) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNoteNotFound
	}
	prev := c.notes[idx].Position
	c.notes[idx].Position = pos
	local := c.local[id]
	c.mu.Unlock()

	if local {
		return nil
	}

	if err := c.store.UpdateMessagePosition(ctx, id, pos); err != nil {
		c.mu.Lock()
		if i := c.indexLocked(id); i >= 0 {
			c.notes[i].Position = prev
		}
		c.mu.Unlock()
		return err
	}
	return nil
}

// Remove убирает запись со стены и из хранилища
func (c *Controller) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNoteNotFound
	}
	removed := c.notes[idx]
	c.notes = append(c.notes[:idx], c.notes[idx+1:]...)
	if c.local[id] {
		delete(c.local, id)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.store.DeleteMessage(ctx, id); err != nil {
		c.mu.Lock()
		if idx > len(c.notes) {
			idx = len(c.notes)
		}
		c.notes = append(c.notes[:idx], append([]Note{removed}, c.notes[idx:]...)...)
		c.mu.Unlock()
		return err
	}
	return nil
}

// Notes копия текущего состояния стены
func (c *Controller) Notes() []Note {
	c.mu.Lock()
	defer c.mu.Unlock()

	notes := make([]Note, len(c.notes))
	copy(notes, c.notes)
	return notes
}

func (c *Controller) Warning() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.warning
}

func (c *Controller) setState(notes []Note, warning string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = notes
	c.warning = warning
	c.offline = false
	c.local = make(map[string]bool)
}

// setOffline показывает примеры без хранилища; все правки остаются в памяти
func (c *Controller) setOffline() {
	samples := SampleNotes()
	c.setState(samples, WarningOffline)
	c.markLocal(samples)

	c.mu.Lock()
	c.offline = true
	c.mu.Unlock()
}

func (c *Controller) markLocal(notes []Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range notes {
		c.local[n.ID] = true
	}
}

// Offline true, если стена работает без хранилища
func (c *Controller) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

func (c *Controller) replaceID(oldID, newID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(oldID); i >= 0 {
		c.notes[i].ID = newID
	}
	delete(c.local, oldID)
}

func (c *Controller) indexLocked(id string) int {
	for i := range c.notes {
		if c.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) removeLocked(id string) {
	if i := c.indexLocked(id); i >= 0 {
		c.notes = append(c.notes[:i], c.notes[i+1:]...)
	}
}

func (c *Controller) placeholderIDLocked() string {
	t := c.now()
	id := PlaceholderID(t)
	for c.indexLocked(id) >= 0 {
		t = t.Add(time.Nanosecond)
		id = PlaceholderID(t)
	}
	return id
}

func changedFields(prev, next Note) models.MessageUpdate {
	var upd models.MessageUpdate
	if next.Text != prev.Text {
		upd.Content = &next.Text
	}
	if next.Color != prev.Color {
		upd.Color = &next.Color
	}
	if next.Rotation != prev.Rotation || next.FontSize != prev.FontSize {
		size := next.Size()
		upd.Size = &size
	}
	return upd
}
