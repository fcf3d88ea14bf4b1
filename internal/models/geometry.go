package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Position координаты в процентах ширины/высоты стены (0-100)
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size хранится как {width, height}, но стена кладёт сюда
// width = поворот в градусах, height = размер шрифта в px.
// Менять смысл полей нельзя: так записаны уже существующие строки.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (p Position) Value() (driver.Value, error) {
	return jsonValue(p)
}

func (p *Position) Scan(value interface{}) error {
	return scanJSON(value, p)
}

func (Position) GormDataType() string {
	return "json"
}

func (Position) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

func (s Size) Value() (driver.Value, error) {
	return jsonValue(s)
}

func (s *Size) Scan(value interface{}) error {
	return scanJSON(value, s)
}

func (Size) GormDataType() string {
	return "json"
}

func (Size) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func scanJSON(value interface{}, dst interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported scan type %T for json column", value)
	}
}

func jsonColumnType(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "JSON"
	default:
		return "TEXT"
	}
}
