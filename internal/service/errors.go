package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("request unavailable")
)

// asNotFound maps a gorm miss onto the service-level sentinel and
// passes every other error through.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
