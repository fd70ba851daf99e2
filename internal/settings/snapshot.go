package settings

import (
	"encoding/json"
)

// Defaults is what the default source resolved at boot.
// Models is advisory: it feeds the model picker and never validates a value.
type Defaults struct {
	Model            string   `json:"model"            toml:"model"`
	Models           []string `json:"models"           toml:"models"`
	Temperature      float64  `json:"temperature"      toml:"temperature"`
	TopP             float64  `json:"topP"             toml:"topP"`
	SearchStrictness int      `json:"searchStrictness" toml:"searchStrictness"`
	TopK             int      `json:"topK"             toml:"topK"`
	EnableInDomain   bool     `json:"enableInDomain"   toml:"enableInDomain"`
	Bounds           Bounds   `json:"bounds"           toml:"bounds"`
}

// Snapshot is an immutable, fully populated set of setting values.
// The zero value is not a valid snapshot, use Initialize.
type Snapshot struct {
	model            string
	temperature      float64
	topP             float64
	searchStrictness int
	topK             int
	enableInDomain   bool
	bounds           Bounds
}

// View is the exported, serializable form of a Snapshot.
type View struct {
	Model            string  `json:"model"            toml:"model"`
	Temperature      float64 `json:"temperature"      toml:"temperature"`
	TopP             float64 `json:"topP"             toml:"topP"`
	SearchStrictness int     `json:"searchStrictness" toml:"searchStrictness"`
	TopK             int     `json:"topK"             toml:"topK"`
	EnableInDomain   bool    `json:"enableInDomain"   toml:"enableInDomain"`
	Bounds           Bounds  `json:"bounds"           toml:"bounds"`
}

// Model returns the selected deployment model.
func (s Snapshot) Model() string { return s.model }

// Temperature returns the sampling temperature.
func (s Snapshot) Temperature() float64 { return s.temperature }

// TopP returns the nucleus sampling threshold.
func (s Snapshot) TopP() float64 { return s.topP }

// SearchStrictness returns the retrieval strictness.
func (s Snapshot) SearchStrictness() int { return s.searchStrictness }

// TopK returns the number of retrieved documents.
func (s Snapshot) TopK() int { return s.topK }

// EnableInDomain reports whether answers are limited to retrieved data.
func (s Snapshot) EnableInDomain() bool { return s.enableInDomain }

// Bounds returns the slider ranges from the default source.
func (s Snapshot) Bounds() Bounds { return s.bounds }

// Value returns the current value of k typed as its Kind
// (string, float64, int or bool), nil for an unknown key.
func (s Snapshot) Value(k Key) any {
	switch k {
	case KeyModel:
		return s.model
	case KeyTemperature:
		return s.temperature
	case KeyTopP:
		return s.topP
	case KeySearchStrictness:
		return s.searchStrictness
	case KeyTopK:
		return s.topK
	case KeyEnableInDomain:
		return s.enableInDomain
	default:
		return nil
	}
}

// Equal compares all six values and the bounds.
func (s Snapshot) Equal(o Snapshot) bool {
	return s == o
}

// View copies the snapshot into its serializable form.
func (s Snapshot) View() View {
	return View{
		Model:            s.model,
		Temperature:      s.temperature,
		TopP:             s.topP,
		SearchStrictness: s.searchStrictness,
		TopK:             s.topK,
		EnableInDomain:   s.enableInDomain,
		Bounds:           s.bounds,
	}
}

// MarshalJSON encodes the snapshot as its View.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.View())
}
