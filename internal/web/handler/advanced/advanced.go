// Package advanced renders the advanced settings dialog as a server side form.
package advanced

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/gateway"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/web/handler"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/web/navigation"
)

const (
	// Path is the path to the advanced settings page.
	Path = handler.RootPath + "settings"

	// TemplateName is the name of the advanced settings template.
	TemplateName = "settings"

	pageTitle = "Advanced settings"
)

// Service is the advanced settings page handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	gw        *gateway.Gateway
	validator *validator.Validate
}

// Form is the posted dialog. Every field is optional; an empty numeric field
// leaves the setting unchanged. The checkbox is absent when unchecked.
type Form struct {
	Model            string `form:"model"            validate:"max=256"`
	Temperature      string `form:"temperature"      validate:"omitempty,numeric"`
	TopP             string `form:"topP"             validate:"omitempty,numeric"`
	SearchStrictness string `form:"searchStrictness" validate:"omitempty,numeric"`
	TopK             string `form:"topK"             validate:"omitempty,numeric"`
	EnableInDomain   string `form:"enableInDomain"`
}

// Slider is one ranged setting as the template draws it.
type Slider struct {
	Key   string
	Label string
	Value any
	Low   float64
	High  float64
	Step  float64
}

var labels = map[settings.Key]string{ //nolint:gochecknoglobals
	settings.KeyModel:            "Select Model",
	settings.KeyTemperature:      "Temperature",
	settings.KeyTopP:             "Top P",
	settings.KeySearchStrictness: "Search Strictness",
	settings.KeyTopK:             "Top K",
	settings.KeyEnableInDomain:   "Enable In Domain",
}

// Init registers the page routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, gw *gateway.Gateway) {
	if app == nil || cfg == nil || gw == nil {
		log.Fatal().Msg(handler.ErrNilAppOrGatewayFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.gw = gw
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
}

func newNavigation() *navigation.Context {
	return navigation.NewContext(pageTitle, navigation.PageSettings).
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb(pageTitle, Path, true)
}

// Get renders the dialog with the current values.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, fiber.Map{})
}

// Post applies every field that differs from the current snapshot.
func (s *Service) Post(c *fiber.Ctx) error {
	form := &Form{}
	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse advanced settings form")

		return s.render(c, fiber.StatusBadRequest, fiber.Map{"Error": []string{"Invalid form data"}})
	}

	if err := s.validator.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)

		errorMessages := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			errorMessages[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
		}

		log.Debug().Err(err).Msg("validation failed for advanced settings form")

		return s.render(c, fiber.StatusBadRequest, fiber.Map{"Error": errorMessages})
	}

	current, ok := s.gw.Snapshot()
	if !ok {
		return s.render(c, fiber.StatusServiceUnavailable, fiber.Map{})
	}

	changed := make([]string, 0, len(settings.Keys()))

	for _, e := range form.edits() {
		candidate := settings.ApplyEdit(current, e.key, e.value)
		if candidate.Value(e.key) == current.Value(e.key) {
			continue
		}

		next, err := s.gw.Set(c.UserContext(), e.key, e.value)
		if err != nil {
			log.Error().Err(err).Str("key", e.key.String()).Msg("failed to apply advanced setting")

			return s.render(c, fiber.StatusInternalServerError, fiber.Map{"Error": []string{"Failed to save settings"}})
		}

		current = next

		changed = append(changed, e.key.String())
	}

	log.Info().Strs("changed", changed).Msg("advanced settings form applied")

	return s.render(c, fiber.StatusOK, fiber.Map{"Success": "Settings saved"})
}

type edit struct {
	key   settings.Key
	value any
}

// edits lists the submitted values in display order. Blank numeric fields
// are not edits.
func (f *Form) edits() []edit {
	out := make([]edit, 0, len(settings.Keys()))

	if m := strings.TrimSpace(f.Model); m != "" {
		out = append(out, edit{key: settings.KeyModel, value: m})
	}

	for _, field := range []struct {
		key settings.Key
		raw string
	}{
		{settings.KeyTemperature, f.Temperature},
		{settings.KeyTopP, f.TopP},
		{settings.KeySearchStrictness, f.SearchStrictness},
		{settings.KeyTopK, f.TopK},
	} {
		if raw := strings.TrimSpace(field.raw); raw != "" {
			out = append(out, edit{key: field.key, value: raw})
		}
	}

	return append(out, edit{key: settings.KeyEnableInDomain, value: f.EnableInDomain})
}

// render draws the page; before boot it always answers 503.
func (s *Service) render(c *fiber.Ctx, status int, data fiber.Map) error {
	data["Navigation"] = newNavigation()
	data["Title"] = s.cfg.Title

	snap, ok := s.gw.Snapshot()
	if !ok {
		data["Error"] = []string{gateway.ErrNotReady.Error()}

		return c.Status(fiber.StatusServiceUnavailable).Render(TemplateName, data, handler.BaseLayout)
	}

	data["Settings"] = snap.View()
	data["Models"] = modelOptions(s.gw.Defaults().Models, snap.Model())
	data["Sliders"] = sliders(snap)
	data["Labels"] = labelNames()

	return c.Status(status).Render(TemplateName, data, handler.BaseLayout)
}

// modelOptions is the advisory list with the current model added when it is
// not part of it.
func modelOptions(models []string, current string) []string {
	out := make([]string, 0, len(models)+1)
	found := current == ""

	for _, m := range models {
		if m == current {
			found = true
		}

		out = append(out, m)
	}

	if !found {
		out = append(out, current)
	}

	return out
}

func sliders(snap settings.Snapshot) []Slider {
	out := make([]Slider, 0, 4) //nolint:mnd

	for _, k := range settings.Keys() {
		r, ranged := snap.Bounds().For(k)
		if !ranged {
			continue
		}

		out = append(out, Slider{
			Key:   k.String(),
			Label: labels[k],
			Value: snap.Value(k),
			Low:   r.Low,
			High:  r.High,
			Step:  k.Step(),
		})
	}

	return out
}

func labelNames() map[string]string {
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k.String()] = v
	}

	return out
}
