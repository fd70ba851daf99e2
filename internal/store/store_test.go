package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/db"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/db/controller/setting"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
)

// mapStorage is a fiber.Storage kept in a map.
type mapStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet bool
	failSet bool
	closed  bool
}

var errStorage = errors.New("storage unavailable")

func newMapStorage() *mapStorage {
	return &mapStorage{data: map[string][]byte{}}
}

func (m *mapStorage) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failGet {
		return nil, errStorage
	}

	return m.data[key], nil
}

func (m *mapStorage) Set(key string, val []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSet {
		return errStorage
	}

	m.data[key] = val

	return nil
}

func (m *mapStorage) Delete(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()

	return nil
}

func (m *mapStorage) Reset() error {
	m.mu.Lock()
	m.data = map[string][]byte{}
	m.mu.Unlock()

	return nil
}

func (m *mapStorage) Close() error {
	m.closed = true
	return nil
}

func openSQLite(t *testing.T) *DB {
	t.Helper()

	gdb, err := db.Open(&config.DB{Engine: config.EngineSQLite, Path: ":memory:"})
	require.NoError(t, err)

	s := NewDB(gdb, "")
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func sample() settings.Blob {
	return settings.Blob{
		"azure_openai_model_name":    "gpt-4",
		"azure_openai_temperature":   0.2,
		"ui_search_top_k":            float64(5),
		"ui_search_enable_in_domain": false,
	}
}

// exercise runs the behavior every backend shares.
func exercise(t *testing.T, s Store) {
	t.Helper()

	ctx := context.Background()

	_, ok := s.Read(ctx)
	assert.False(t, ok, "fresh store holds nothing")

	require.NoError(t, s.Write(ctx, sample()))

	got, ok := s.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, sample(), got)

	next := sample()
	next["azure_openai_temperature"] = 0.9
	require.NoError(t, s.Write(ctx, next))

	got, ok = s.Read(ctx)
	require.True(t, ok)
	assert.InDelta(t, 0.9, got["azure_openai_temperature"], 1e-9, "write overwrites the slot")
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestDB(t *testing.T) {
	exercise(t, openSQLite(t))
}

func TestKV(t *testing.T) {
	storage := newMapStorage()
	exercise(t, NewKV(storage, ""))

	_, ok := storage.data[config.DefaultSlot]
	assert.True(t, ok, "empty slot name uses the default slot")
}

func TestReadGarbage(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{"{not json", "[1,2]", "null", "42", `"text"`} {
		t.Run(raw, func(t *testing.T) {
			_, ok := NewMemoryWith([]byte(raw)).Read(ctx)
			assert.False(t, ok)

			s := openSQLite(t)
			_, err := setting.Set(ctx, s.db, config.DefaultSlot, []byte(raw))
			require.NoError(t, err)

			_, ok = s.Read(ctx)
			assert.False(t, ok)

			storage := newMapStorage()
			storage.data[config.DefaultSlot] = []byte(raw)
			_, ok = NewKV(storage, "").Read(ctx)
			assert.False(t, ok)
		})
	}
}

func TestKVBackendFailures(t *testing.T) {
	ctx := context.Background()
	storage := newMapStorage()
	s := NewKV(storage, "slot")

	storage.failSet = true
	assert.ErrorIs(t, s.Write(ctx, sample()), errStorage)

	storage.failSet = false
	require.NoError(t, s.Write(ctx, sample()))

	storage.failGet = true
	_, ok := s.Read(ctx)
	assert.False(t, ok, "backend failures read as nothing")

	require.NoError(t, s.Close())
	assert.True(t, storage.closed)
}

func TestDBClear(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	require.NoError(t, s.Clear(ctx), "clearing an empty slot is fine")
	require.NoError(t, s.Write(ctx, sample()))
	require.NoError(t, s.Clear(ctx))

	_, ok := s.Read(ctx)
	assert.False(t, ok)
}

func TestMemoryRawIsCopy(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Write(context.Background(), settings.Blob{"azure_openai_top_p": 0.5}))

	raw := m.Raw()
	raw[0] = 'x'

	_, ok := m.Read(context.Background())
	assert.True(t, ok)
}

func TestOpen(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     *config.Config
		wantErr error
	}{
		{
			name:    "nil config",
			wantErr: ErrConfigNil,
		},
		{
			name: "memory",
			cfg:  &config.Config{Store: config.Store{Backend: config.BackendMemory}},
		},
		{
			name: "sqlite table",
			cfg: &config.Config{
				DB:    config.DB{Engine: config.EngineSQLite, Path: ":memory:"},
				Store: config.Store{Backend: config.BackendDB, Slot: "s"},
			},
		},
		{
			name: "kv on sqlite",
			cfg: &config.Config{
				DB:    config.DB{Engine: config.EngineSQLite},
				Store: config.Store{Backend: config.BackendKV},
			},
			wantErr: config.ErrKVNeedsServerDB,
		},
		{
			name:    "unknown backend",
			cfg:     &config.Config{Store: config.Store{Backend: "redis"}},
			wantErr: config.ErrUnknownStoreBackend,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Open(tc.cfg)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, s)

				return
			}

			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			exercise(t, s)
		})
	}
}
