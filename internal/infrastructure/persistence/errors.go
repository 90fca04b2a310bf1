package persistence

import (
	"errors"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error to the domain sentinel
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// duplicateNumber maps a unique violation on a document number to the domain
// sentinel
func duplicateNumber(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrDuplicateNumber
	}
	return err
}
