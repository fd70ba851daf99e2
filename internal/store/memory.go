package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
)

// Memory is a process local store. It keeps the encoded form so readers never
// share maps with the writer.
type Memory struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemory returns an empty memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns a memory store already holding raw.
func NewMemoryWith(raw []byte) *Memory {
	return &Memory{data: append([]byte(nil), raw...)}
}

// Read decodes the held bytes.
func (m *Memory) Read(_ context.Context) (settings.Blob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return decode(config.BackendMemory, "", m.data)
}

// Write replaces the held bytes.
func (m *Memory) Write(_ context.Context, b settings.Blob) error {
	data, err := settings.EncodeBlob(b)
	if err != nil {
		return errors.Wrap(err, "failed to encode settings")
	}

	m.mu.Lock()
	m.data = data
	m.mu.Unlock()

	return nil
}

// Raw returns a copy of the stored bytes.
func (m *Memory) Raw() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]byte(nil), m.data...)
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
