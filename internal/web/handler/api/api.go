// Package api serves the advanced settings as JSON for the chat frontend.
package api

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/gateway"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/web/handler"
)

const (
	// Path is the settings resource.
	Path = handler.APIPath + "/settings"

	// KeyPath addresses a single setting.
	KeyPath = Path + "/:key"
)

// Service is the settings API handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	gw        *gateway.Gateway
	validator *validator.Validate
}

type (
	// Field describes one tunable for the panel widgets.
	Field struct {
		Key  string   `json:"key"`
		Kind string   `json:"kind"`
		Step float64  `json:"step,omitempty"`
		Low  *float64 `json:"low,omitempty"`
		High *float64 `json:"high,omitempty"`
	}

	// Payload is everything the settings panel is rendered from.
	Payload struct {
		Settings settings.View `json:"settings"`
		Models   []string      `json:"models"`
		Fields   []Field       `json:"fields"`
	}

	// KeyParams is the path of a single setting edit.
	KeyParams struct {
		Key string `params:"key" validate:"required,oneof=model temperature topP searchStrictness topK enableInDomain"`
	}

	// EditRequest carries the new value in any JSON type. It is coerced to the
	// declared type of the key.
	EditRequest struct {
		Value json.RawMessage `json:"value" validate:"required"`
	}

	// ErrorResponse is the body of every failed request.
	ErrorResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

// Init registers the settings API routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, gw *gateway.Gateway) {
	if app == nil || cfg == nil || gw == nil {
		log.Fatal().Msg(handler.ErrNilAppOrGatewayFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.gw = gw
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Put(KeyPath, s.Put)
}

// Get returns the current snapshot with bounds, steps and the model list.
func (s *Service) Get(c *fiber.Ctx) error {
	snap, ok := s.gw.Snapshot()
	if !ok {
		return fail(c, fiber.StatusServiceUnavailable, gateway.ErrNotReady.Error())
	}

	return c.JSON(NewPayload(snap, s.gw.Defaults().Models))
}

// Put applies one edit through the gateway and answers with the new payload.
func (s *Service) Put(c *fiber.Ctx) error {
	var params KeyParams
	if err := c.ParamsParser(&params); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid path")
	}

	if err := s.validator.Struct(&params); err != nil {
		return fail(c, fiber.StatusBadRequest, "unknown setting "+params.Key)
	}

	var req EditRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	if err := s.validator.Struct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "missing value")
	}

	var value any
	if err := json.Unmarshal(req.Value, &value); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid value")
	}

	snap, err := s.gw.Set(c.UserContext(), settings.Key(params.Key), value)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrNotReady):
			return fail(c, fiber.StatusServiceUnavailable, err.Error())
		case errors.Is(err, settings.ErrUnknownKey):
			return fail(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("key", params.Key).Msg("settings edit failed")
			return fail(c, fiber.StatusInternalServerError, "edit failed")
		}
	}

	return c.JSON(NewPayload(snap, s.gw.Defaults().Models))
}

// NewPayload describes snap for the settings panel.
func NewPayload(snap settings.Snapshot, models []string) Payload {
	if models == nil {
		models = []string{}
	}

	keys := settings.Keys()
	fields := make([]Field, 0, len(keys))

	for _, k := range keys {
		f := Field{
			Key:  k.String(),
			Kind: k.Kind().String(),
			Step: k.Step(),
		}

		if r, ranged := snap.Bounds().For(k); ranged {
			low, high := r.Low, r.High
			f.Low, f.High = &low, &high
		}

		fields = append(fields, f)
	}

	return Payload{
		Settings: snap.View(),
		Models:   models,
		Fields:   fields,
	}
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Message: message,
	})
}
