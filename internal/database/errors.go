package database

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибки хранилища
type Kind uint8

const (
	KindUnknown Kind = iota
	KindQuery
	KindConnectivity
	KindSchema
	KindValidation
	KindNotFound
	KindNotReady
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindConnectivity:
		return "connectivity"
	case KindSchema:
		return "schema"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindNotReady:
		return "not_ready"
	default:
		return "unknown"
	}
}

var (
	ErrNotReady        = errors.New("database schema is not initialized")
	ErrEmptyUpdate     = errors.New("no fields to update")
	ErrMessageNotFound = errors.New("message not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrEmptyContent    = errors.New("content is required")
	ErrEmptyColor      = errors.New("color is required")
)

// Error ошибка операции с хранилищем
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf возвращает Kind ошибки или KindUnknown, если это не *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
