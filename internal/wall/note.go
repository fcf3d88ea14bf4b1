package wall

import (
	"strconv"
	"time"

	"github.com/thereayou/drop/internal/models"
)

const (
	DefaultColor    = "#000000"
	DefaultFontSize = 16
)

// Note запись в том виде, в каком её рисует стена.
// Rotation и FontSize хранятся в size.width и size.height.
type Note struct {
	ID       string          `json:"id"`
	Text     string          `json:"text"`
	Position models.Position `json:"position"`
	Color    string          `json:"color"`
	Rotation float64         `json:"rotation"`
	FontSize float64         `json:"fontSize"`
}

// Style оформление записи из редактора
type Style struct {
	Color    string  `json:"color"`
	Rotation float64 `json:"rotation"`
	FontSize float64 `json:"fontSize"`
}

// FromMessage переводит сохранённую запись в Note
func FromMessage(m models.Message) Note {
	n := Note{
		ID:       m.ID,
		Text:     m.Content,
		Position: m.Position,
		Color:    m.Color,
		FontSize: DefaultFontSize,
	}
	if n.ID == "" {
		n.ID = PlaceholderID(time.Now())
	}
	if m.Size != nil {
		n.Rotation = m.Size.Width
		if m.Size.Height != 0 {
			n.FontSize = m.Size.Height
		}
	}
	return n
}

// ToNewMessage готовит Note к сохранению от имени зрителя
func ToNewMessage(n Note, viewerID, author string) models.NewMessage {
	size := n.Size()
	return models.NewMessage{
		Content:  n.Text,
		Position: n.Position,
		Size:     &size,
		Color:    n.Color,
		UserID:   viewerID,
		Author:   author,
	}
}

func (n Note) Size() models.Size {
	fontSize := n.FontSize
	if fontSize == 0 {
		fontSize = DefaultFontSize
	}
	return models.Size{Width: n.Rotation, Height: fontSize}
}

// PlaceholderID временный id записи до ответа хранилища
func PlaceholderID(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

// SampleNotes три записи для пустой или недоступной стены
func SampleNotes() []Note {
	return []Note{
		{
			ID:       "1",
			Text:     "Welcome to the wall!",
			Position: models.Position{X: 30, Y: 30},
			Color:    "#000000",
			Rotation: -2,
			FontSize: 16,
		},
		{
			ID:       "2",
			Text:     "You can add your own messages here.",
			Position: models.Position{X: 60, Y: 40},
			Color:    "#0000ff",
			Rotation: 1,
			FontSize: 14,
		},
		{
			ID:       "3",
			Text:     "Try dragging this message!",
			Position: models.Position{X: 45, Y: 60},
			Color:    "#8b4513",
			Rotation: 3,
			FontSize: 16,
		},
	}
}
