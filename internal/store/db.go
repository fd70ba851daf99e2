package store

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/db/controller/setting"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
)

// DB keeps the slot as one row of the settings table.
type DB struct {
	db   *gorm.DB
	slot string
}

// NewDB returns a store writing slot through db.
func NewDB(db *gorm.DB, slot string) *DB {
	if slot == "" {
		slot = config.DefaultSlot
	}

	return &DB{db: db, slot: slot}
}

// Read loads the slot row. A missing row reads as nothing stored.
func (s *DB) Read(ctx context.Context) (settings.Blob, bool) {
	row, err := setting.Get(ctx, s.db, s.slot)
	if err != nil {
		if !errors.Is(err, setting.ErrSettingNotFound) {
			log.Error().Err(err).Str("slot", s.slot).Msg("failed to read persisted settings")
		}

		return nil, false
	}

	return decode(config.BackendDB, s.slot, row.Value)
}

// Write upserts the slot row.
func (s *DB) Write(ctx context.Context, b settings.Blob) error {
	data, err := settings.EncodeBlob(b)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to encode settings")
	}

	if _, err = setting.Set(ctx, s.db, s.slot, data); err != nil {
		return pkgerrors.Wrapf(err, "failed to write slot %q", s.slot)
	}

	return nil
}

// Clear removes the slot, a later Read reports nothing stored.
func (s *DB) Clear(ctx context.Context) error {
	err := setting.Delete(ctx, s.db, s.slot)
	if err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		return pkgerrors.Wrapf(err, "failed to clear slot %q", s.slot)
	}

	return nil
}

// Close closes the underlying connection pool.
func (s *DB) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to get sql db")
	}

	return sqlDB.Close() //nolint:wrapcheck
}
