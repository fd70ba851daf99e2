package settings

import (
	"encoding/json"
	"errors"
)

// Blob is the loosely typed JSON object kept in the persisted store.
type Blob map[string]any

// Schema identifies which key naming a blob uses.
type Schema int

// Known persisted schemas.
const (
	SchemaNone    Schema = iota // no recognized key
	SchemaLegacy                // model, temperature, topP, ...
	SchemaCurrent               // azure_openai_model_name, ui_search_top_k, ...
	SchemaMixed                 // keys of both
)

func (s Schema) String() string {
	switch s {
	case SchemaLegacy:
		return "legacy"
	case SchemaCurrent:
		return "current"
	case SchemaMixed:
		return "mixed"
	default:
		return "none"
	}
}

// fieldNames maps a Key to its name in each persisted schema.
type fieldNames struct {
	current string
	legacy  string
}

var persistedNames = map[Key]fieldNames{ //nolint:gochecknoglobals
	KeyModel:            {current: "azure_openai_model_name", legacy: "model"},
	KeyTemperature:      {current: "azure_openai_temperature", legacy: "temperature"},
	KeyTopP:             {current: "azure_openai_top_p", legacy: "topP"},
	KeySearchStrictness: {current: "ui_search_strictness", legacy: "searchStrictness"},
	KeyTopK:             {current: "ui_search_top_k", legacy: "topK"},
	KeyEnableInDomain:   {current: "ui_search_enable_in_domain", legacy: "enableInDomain"},
}

// ErrBlobNotObject is returned by DecodeBlob for valid JSON that is not an object.
var ErrBlobNotObject = errors.New("persisted settings are not a JSON object")

// PersistedName returns the field name k is written under.
func PersistedName(k Key) string {
	return persistedNames[k].current
}

// DecodeBlob parses a stored value. Anything but a JSON object is an error.
func DecodeBlob(data []byte) (Blob, error) {
	var b Blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if b == nil {
		return nil, ErrBlobNotObject
	}

	return b, nil
}

// EncodeBlob serializes a blob for the persisted store.
func EncodeBlob(b Blob) ([]byte, error) {
	return json.Marshal(b) //nolint:wrapcheck
}

// Lookup finds the persisted value of k under either schema; the current
// name wins when both are present. A key holding JSON null counts as absent.
func (b Blob) Lookup(k Key) (any, bool) {
	names, known := persistedNames[k]
	if !known {
		return nil, false
	}

	for _, name := range []string{names.current, names.legacy} {
		if v, ok := b[name]; ok && v != nil {
			return v, true
		}
	}

	return nil, false
}

// Schema reports which naming the blob uses.
func (b Blob) Schema() Schema {
	var legacy, current bool

	for _, names := range persistedNames {
		if _, ok := b[names.current]; ok {
			current = true
		}

		if _, ok := b[names.legacy]; ok {
			legacy = true
		}
	}

	switch {
	case legacy && current:
		return SchemaMixed
	case current:
		return SchemaCurrent
	case legacy:
		return SchemaLegacy
	default:
		return SchemaNone
	}
}

// Project writes the six values of s under the current schema.
// Bounds are never persisted.
func Project(s Snapshot) Blob {
	b := make(Blob, len(persistedNames))
	for _, k := range keys {
		b[PersistedName(k)] = s.Value(k)
	}

	return b
}
