package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// normalizeDuplicate maps driver-specific unique-violation errors to
// gorm.ErrDuplicatedKey. MySQL is translated by gorm itself; the string
// checks cover drivers that predate the ErrorTranslator interface.
func normalizeDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return gorm.ErrDuplicatedKey
	}
	msg := err.Error()
	if strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed") {
		return gorm.ErrDuplicatedKey
	}
	return err
}
