// Package gateway is the only path that changes the advanced settings.
//
// A Gateway owns the current snapshot. Boot reconciles the defaults with the
// persisted blob once; every edit then replaces one field and writes the
// whole projection back before the call returns. Edits are serialized.
package gateway

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/store"
)

// ErrNotReady is returned for edits before Boot.
var ErrNotReady = errors.New("settings are not initialized")

// ErrStoreNil is returned by Boot on a gateway without store.
var ErrStoreNil = errors.New("settings store is nil")

// Gateway serializes edits of the advanced settings.
type Gateway struct {
	mu       sync.RWMutex
	store    store.Store
	defaults settings.Defaults
	current  settings.Snapshot
	ready    bool
}

// New returns an uninitialized gateway over st. d is resolved once and never
// consulted again after Boot.
func New(st store.Store, d settings.Defaults) *Gateway {
	registerMetrics()

	return &Gateway{
		store:    st,
		defaults: d,
	}
}

// Boot reads the persisted blob and builds the initial snapshot. Calling it
// again re-reads the store.
func (g *Gateway) Boot(ctx context.Context) (settings.Snapshot, error) {
	if g.store == nil {
		return settings.Snapshot{}, ErrStoreNil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	blob, ok := g.store.Read(ctx)
	if !ok {
		blob = nil
	}

	g.current = settings.Initialize(g.defaults, blob)
	g.ready = true

	log.Info().
		Bool("persisted", ok).
		Str("schema", blob.Schema().String()).
		Str("model", g.current.Model()).
		Msg("advanced settings initialized")

	return g.current, nil
}

// Ready reports whether Boot has completed.
func (g *Gateway) Ready() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.ready
}

// Snapshot returns the current snapshot, ok=false before Boot.
func (g *Gateway) Snapshot() (settings.Snapshot, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.current, g.ready
}

// Defaults returns what the default source resolved.
func (g *Gateway) Defaults() settings.Defaults {
	d := g.defaults
	d.Models = append([]string(nil), g.defaults.Models...)

	return d
}

// Set applies one edit and writes the result through to the store.
// A failing write is logged and counted; the edit stays in effect.
func (g *Gateway) Set(ctx context.Context, k settings.Key, v any) (settings.Snapshot, error) {
	if !k.Valid() {
		return settings.Snapshot{}, errors.Wrapf(settings.ErrUnknownKey, "%q", k)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.ready {
		return settings.Snapshot{}, ErrNotReady
	}

	g.current = settings.ApplyEdit(g.current, k, v)
	editsTotal.WithLabelValues(k.String()).Inc()

	if err := g.store.Write(ctx, settings.Project(g.current)); err != nil {
		persistFailuresTotal.Inc()
		log.Error().Err(err).Str("key", k.String()).Msg("failed to persist advanced settings")
	}

	log.Debug().Str("key", k.String()).Interface("value", g.current.Value(k)).Msg("advanced setting changed")

	return g.current, nil
}

// SetModel selects the deployment model. An empty name leaves it unchanged.
func (g *Gateway) SetModel(ctx context.Context, name string) (settings.Snapshot, error) {
	return g.Set(ctx, settings.KeyModel, name)
}

// SetTemperature sets the sampling temperature.
func (g *Gateway) SetTemperature(ctx context.Context, v float64) (settings.Snapshot, error) {
	return g.Set(ctx, settings.KeyTemperature, v)
}

// SetTopP sets the nucleus sampling threshold.
func (g *Gateway) SetTopP(ctx context.Context, v float64) (settings.Snapshot, error) {
	return g.Set(ctx, settings.KeyTopP, v)
}

// SetSearchStrictness sets the retrieval strictness.
func (g *Gateway) SetSearchStrictness(ctx context.Context, v int) (settings.Snapshot, error) {
	return g.Set(ctx, settings.KeySearchStrictness, v)
}

// SetTopK sets the number of retrieved documents.
func (g *Gateway) SetTopK(ctx context.Context, v int) (settings.Snapshot, error) {
	return g.Set(ctx, settings.KeyTopK, v)
}

// SetEnableInDomain limits answers to retrieved data.
func (g *Gateway) SetEnableInDomain(ctx context.Context, v bool) (settings.Snapshot, error) {
	return g.Set(ctx, settings.KeyEnableInDomain, v)
}

// Close releases the store.
func (g *Gateway) Close() error {
	if g.store == nil {
		return nil
	}

	return g.store.Close() //nolint:wrapcheck
}
