package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/onelife-dev/one-backend/internal/models"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"
)

const (
	DefaultSpaceColor = "#FFFFFF"

	// Per-resource default space names.
	DefaultSpaceName     = "Personal"
	DefaultScheduleSpace = "Escuela"
)

// ResolveSpace returns the caller's space with the given name, creating it
// on first reference. Two concurrent first references race on the
// (owner_id, name) unique index; the loser re-reads the winner's row.
func ResolveSpace(ctx context.Context, tx *gorm.DB, ownerID uint, name string) (models.Space, error) {
	var space models.Space

	backoff := retry.WithMaxRetries(3, retry.NewConstant(25*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := tx.Where("owner_id = ? AND name = ?", ownerID, name).First(&space).Error

		if err == nil {
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		space = models.Space{
			ID:         uuid.NewString(),
			OwnerID:    ownerID,
			Name:       name,
			Color:      DefaultSpaceColor,
			SyncFields: models.SyncFields{Version: 1},
		}

		err = tx.Create(&space).Error

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return retry.RetryableError(err)
		}

		return err
	})

	return space, err
}

// SpaceName picks the wire-supplied name or the resource's default.
func SpaceName(espacio *string, fallback string) string {
	if espacio != nil && *espacio != "" {
		return *espacio
	}
	return fallback
}
