package store

import (
	"context"

	"github.com/gofiber/fiber/v2"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/db/dsn"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
)

// KV keeps the slot in a fiber storage backend without expiration.
type KV struct {
	storage fiber.Storage
	slot    string
}

// NewKV returns a store writing slot to storage.
func NewKV(storage fiber.Storage, slot string) *KV {
	if slot == "" {
		slot = config.DefaultSlot
	}

	return &KV{storage: storage, slot: slot}
}

// Read fetches the slot key from the storage table.
func (s *KV) Read(_ context.Context) (settings.Blob, bool) {
	data, err := s.storage.Get(s.slot)
	if err != nil {
		log.Error().Err(err).Str("slot", s.slot).Msg("failed to read persisted settings")
		return nil, false
	}

	return decode(config.BackendKV, s.slot, data)
}

// Write stores the blob under the slot key without expiry.
func (s *KV) Write(_ context.Context, b settings.Blob) error {
	data, err := settings.EncodeBlob(b)
	if err != nil {
		return errors.Wrap(err, "failed to encode settings")
	}

	// 0: never expires
	if err = s.storage.Set(s.slot, data, 0); err != nil {
		return errors.Wrapf(err, "failed to write slot %q", s.slot)
	}

	return nil
}

// Close closes the storage.
func (s *KV) Close() error {
	return s.storage.Close() //nolint:wrapcheck
}

// openStorage connects the gofiber storage matching the configured engine.
// The storage constructors panic when the server is unreachable, the panic
// is turned into an error.
func openStorage(cfg *config.Config) (storage fiber.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("failed to open %s kv storage: %v", cfg.DB.Engine, r)
		}
	}()

	switch cfg.DB.Engine {
	case config.EngineMySQL:
		return mysqlstorage.New(mysqlstorage.Config{
			ConnectionURI: dsn.MySQL(&cfg.DB),
			Table:         cfg.Store.Table,
		}), nil
	case config.EnginePostgres:
		return postgresstorage.New(postgresstorage.Config{
			ConnectionURI: dsn.Postgres(&cfg.DB),
			Table:         cfg.Store.Table,
		}), nil
	default:
		return nil, errors.Wrapf(config.ErrKVNeedsServerDB, "engine %q", cfg.DB.Engine)
	}
}
