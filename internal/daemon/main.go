// Package daemon wires configuration, default source, persisted store,
// gateway and web service together.
package daemon

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/defaults"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/gateway"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/store"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/web"
)

// ErrConfigNil is returned without configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	gw         *gateway.Gateway
	webService *web.Service
}

// Boot resolves the defaults, opens the store and initializes a gateway.
// The caller owns the returned gateway and must Close it.
func Boot(ctx context.Context, cfg *config.Config) (*gateway.Gateway, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	d := defaults.Load(defaults.Environ(cfg.EnvFile))

	st, err := store.Open(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open settings store")
	}

	gw := gateway.New(st, d)
	if _, err = gw.Boot(ctx); err != nil {
		_ = st.Close()

		return nil, errors.Wrap(err, "failed to initialize settings")
	}

	log.Info().
		Str("backend", cfg.Store.Backend).
		Str("slot", cfg.Store.Slot).
		Msg("settings store ready")

	return gw, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	gw, err := Boot(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		gw:         gw,
		webService: web.New(cfg, gw),
	}, nil
}

// Gateway returns the settings gateway owned by the daemon.
func (d *Daemon) Gateway() *gateway.Gateway {
	return d.gw
}

// Start serves http until SIGINT or SIGTERM, then releases the store.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Msg("starting web service")

	err := d.webService.Start(addr)

	if errClose := d.gw.Close(); errClose != nil {
		log.Error().Err(errClose).Msg("failed to close settings store")
	}

	return err
}
