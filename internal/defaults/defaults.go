// Package defaults resolves the server side baseline of the advanced settings
// from ambient configuration. Loading never fails: absent or malformed values
// resolve to fixed fallbacks.
package defaults

import (
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
)

// Ambient value names.
const (
	EnvModelName      = "AZURE_OPENAI_MODEL_NAME"
	EnvTemperature    = "AZURE_OPENAI_TEMPERATURE"
	EnvTopP           = "AZURE_OPENAI_TOP_P"
	EnvStrictness     = "SEARCH_STRICTNESS"
	EnvTopK           = "SEARCH_TOP_K"
	EnvEnableInDomain = "SEARCH_ENABLE_IN_DOMAIN"
	EnvModelList      = "UI_MODEL_LIST"

	EnvTemperatureLow  = "UI_TEMPERATURE_LOW"
	EnvTemperatureHigh = "UI_TEMPERATURE_HIGH"
	EnvTopPLow         = "UI_TOP_P_LOW"
	EnvTopPHigh        = "UI_TOP_P_HIGH"
	EnvStrictnessLow   = "UI_SEARCH_STRICTNESS_LOW"
	EnvStrictnessHigh  = "UI_SEARCH_STRICTNESS_HIGH"
	EnvTopKLow         = "UI_TOP_K_LOW"
	EnvTopKHigh        = "UI_TOP_K_HIGH"
)

// Fallbacks used when an ambient value is absent or malformed.
const (
	FallbackModel            = ""
	FallbackTemperature      = 0.7
	FallbackTopP             = 0.95
	FallbackSearchStrictness = 5
	FallbackTopK             = 10
	FallbackEnableInDomain   = false
)

// FallbackBounds are the bound pairs used when an ambient pair is absent or malformed.
var FallbackBounds = settings.Bounds{ //nolint:gochecknoglobals
	Temperature:      settings.Range{Low: 0, High: 1},
	TopP:             settings.Range{Low: 0.1, High: 1},
	SearchStrictness: settings.Range{Low: 1, High: 10},
	TopK:             settings.Range{Low: 1, High: 40},
}

// Lookup returns an ambient value by name, like os.LookupEnv.
type Lookup func(name string) (string, bool)

// Map serves ambient values from a map.
func Map(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// Environ serves the process environment. Values of envFile, if it can be
// read, fill in names the environment does not set. The process environment
// is not modified.
func Environ(envFile string) Lookup {
	var fromFile map[string]string

	if envFile != "" {
		var err error

		fromFile, err = godotenv.Read(envFile)
		if err != nil {
			log.Debug().Err(err).Str("file", envFile).Msg("no env file for settings defaults")
		}
	}

	return func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}

		v, ok := fromFile[name]

		return v, ok
	}
}

// Load resolves the defaults. Default values outside their bound pair are
// clamped into it.
func Load(lookup Lookup) settings.Defaults {
	if lookup == nil {
		lookup = Map(nil)
	}

	r := reader{lookup: lookup}

	d := settings.Defaults{
		Model:            r.str(EnvModelName, FallbackModel),
		Models:           r.list(EnvModelList),
		Temperature:      r.float(EnvTemperature, FallbackTemperature),
		TopP:             r.float(EnvTopP, FallbackTopP),
		SearchStrictness: r.int(EnvStrictness, FallbackSearchStrictness),
		TopK:             r.int(EnvTopK, FallbackTopK),
		EnableInDomain:   r.bool(EnvEnableInDomain, FallbackEnableInDomain),
		Bounds: settings.Bounds{
			Temperature:      r.pair(EnvTemperatureLow, EnvTemperatureHigh, FallbackBounds.Temperature),
			TopP:             r.pair(EnvTopPLow, EnvTopPHigh, FallbackBounds.TopP),
			SearchStrictness: r.pair(EnvStrictnessLow, EnvStrictnessHigh, FallbackBounds.SearchStrictness),
			TopK:             r.pair(EnvTopKLow, EnvTopKHigh, FallbackBounds.TopK),
		},
	}

	d.Temperature = clamp(settings.KeyTemperature, d.Bounds.Temperature, d.Temperature)
	d.TopP = clamp(settings.KeyTopP, d.Bounds.TopP, d.TopP)
	d.SearchStrictness = int(clamp(settings.KeySearchStrictness, d.Bounds.SearchStrictness, float64(d.SearchStrictness)))
	d.TopK = int(clamp(settings.KeyTopK, d.Bounds.TopK, float64(d.TopK)))

	return d
}

func clamp(k settings.Key, r settings.Range, v float64) float64 {
	if r.Contains(v) {
		return v
	}

	c := r.Clamp(v)
	if k.Kind() == settings.KindInt {
		// stay inside fractional bounds after rounding
		c = math.Max(math.Ceil(r.Low), math.Min(math.Floor(r.High), math.Round(c)))
		if c < float64(math.MinInt) || c >= float64(math.MaxInt) {
			log.Warn().Str("key", k.String()).Float64("value", v).Msg("settings bounds outside the int range, keeping default")
			return v
		}
	}

	log.Warn().Str("key", k.String()).Float64("value", v).Float64("clamped", c).Msg("settings default outside its bounds")

	return c
}

type reader struct {
	lookup Lookup
}

// raw returns the trimmed value and whether it is set and non-empty.
func (r reader) raw(name string) (string, bool) {
	v, ok := r.lookup(name)
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)

	return v, v != ""
}

func (r reader) malformed(name, value string) {
	log.Warn().Str("name", name).Str("value", value).Msg("malformed settings default, using fallback")
}

func (r reader) str(name, fallback string) string {
	if v, ok := r.raw(name); ok {
		return v
	}

	return fallback
}

func (r reader) list(name string) []string {
	v, ok := r.raw(name)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, strings.Count(v, ",")+1)

	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

func (r reader) float(name string, fallback float64) float64 {
	v, ok := r.raw(name)
	if !ok {
		return fallback
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.malformed(name, v)
		return fallback
	}

	return f
}

func (r reader) int(name string, fallback int) int {
	f := r.float(name, math.NaN())
	if math.IsNaN(f) {
		return fallback
	}

	f = math.Round(f)
	if f < float64(math.MinInt) || f >= float64(math.MaxInt) {
		r.malformed(name, cast.ToString(f))
		return fallback
	}

	return int(f)
}

func (r reader) bool(name string, fallback bool) bool {
	v, ok := r.raw(name)
	if !ok {
		return fallback
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		r.malformed(name, v)
		return fallback
	}

	return b
}

// pair reads a bound pair; each side falls back on its own, an inverted
// pair falls back as a whole.
func (r reader) pair(lowName, highName string, fallback settings.Range) settings.Range {
	p := settings.Range{
		Low:  r.float(lowName, fallback.Low),
		High: r.float(highName, fallback.High),
	}

	if !p.Valid() {
		log.Warn().
			Str("low", lowName).
			Str("high", highName).
			Float64("lowValue", p.Low).
			Float64("highValue", p.High).
			Msg("inverted settings bounds, using fallback")

		return fallback
	}

	return p
}
