package settings

import (
	"github.com/pkg/errors"
)

// Key names one of the six tunables.
type Key string

// The tunables, named as the settings panel names them.
const (
	KeyModel            Key = "model"
	KeyTemperature      Key = "temperature"
	KeyTopP             Key = "topP"
	KeySearchStrictness Key = "searchStrictness"
	KeyTopK             Key = "topK"
	KeyEnableInDomain   Key = "enableInDomain"
)

// Kind is the declared value type of a Key.
type Kind int

// Value kinds.
const (
	KindString Kind = iota
	KindFloat
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// ErrUnknownKey is returned by ParseKey for names that are not a tunable.
var ErrUnknownKey = errors.New("unknown setting key")

var keys = []Key{ //nolint:gochecknoglobals
	KeyModel,
	KeyTemperature,
	KeyTopP,
	KeySearchStrictness,
	KeyTopK,
	KeyEnableInDomain,
}

// Keys returns all tunables in display order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)

	return out
}

// ParseKey maps a settings panel name to its Key.
func ParseKey(name string) (Key, error) {
	k := Key(name)
	if !k.Valid() {
		return "", errors.Wrapf(ErrUnknownKey, "%q", name)
	}

	return k, nil
}

// Valid reports whether k is one of the six tunables.
func (k Key) Valid() bool {
	for _, known := range keys {
		if k == known {
			return true
		}
	}

	return false
}

// Kind returns the declared value type of k.
func (k Key) Kind() Kind {
	switch k {
	case KeyTemperature, KeyTopP:
		return KindFloat
	case KeySearchStrictness, KeyTopK:
		return KindInt
	case KeyEnableInDomain:
		return KindBool
	default:
		return KindString
	}
}

// Ranged reports whether k has a bound pair.
func (k Key) Ranged() bool {
	return k.Kind() == KindFloat || k.Kind() == KindInt
}

// Step is the slider increment for ranged keys, 0 otherwise.
func (k Key) Step() float64 {
	switch k.Kind() {
	case KindFloat:
		return 0.01 //nolint:mnd
	case KindInt:
		return 1
	default:
		return 0
	}
}

func (k Key) String() string {
	return string(k)
}
