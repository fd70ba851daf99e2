// Package store keeps the advanced settings blob in a single named slot.
//
// Read never fails: a missing slot, an unreadable backend and a value that is
// not a JSON object all read as "nothing stored". Write overwrites the slot and
// is visible to the next Read in the same process once it returns.
package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/db"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
)

// ErrConfigNil is returned by Open without a configuration.
var ErrConfigNil = errors.New("store config is nil")

// Store is a durable key to JSON blob slot.
type Store interface {
	// Read returns the last written blob, ok=false when there is none.
	Read(ctx context.Context) (settings.Blob, bool)
	// Write overwrites the slot.
	Write(ctx context.Context, b settings.Blob) error
	// Close releases the backend.
	Close() error
}

// Open creates the store selected by cfg.Store.Backend.
func Open(cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendDB, "":
		gdb, err := db.Open(&cfg.DB)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open settings database")
		}

		return NewDB(gdb, cfg.Store.Slot), nil
	case config.BackendKV:
		storage, err := openStorage(cfg)
		if err != nil {
			return nil, err
		}

		return NewKV(storage, cfg.Store.Slot), nil
	default:
		return nil, errors.Wrapf(config.ErrUnknownStoreBackend, "backend %q", cfg.Store.Backend)
	}
}

// decode turns a stored value into a blob, logging and dropping garbage.
func decode(backend, slot string, data []byte) (settings.Blob, bool) {
	if len(data) == 0 {
		return nil, false
	}

	b, err := settings.DecodeBlob(data)
	if err != nil {
		log.Warn().Err(err).Str("backend", backend).Str("slot", slot).
			Msg("ignoring unreadable persisted settings")

		return nil, false
	}

	return b, true
}
