package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName is returned when a name collides case-insensitively.
	ErrDuplicateName = errors.New("name already exists")
	// ErrUnknownCategory is returned when a group references a missing category.
	ErrUnknownCategory = errors.New("unknown category")
)

// translate maps GORM errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrUnknownCategory
	default:
		return err
	}
}
