package app

import (
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	formatJSON = "json"
	formatTOML = "toml"
)

// ErrUnknownFormat is returned for a --format other than json or toml.
var ErrUnknownFormat = errors.New("unknown output format")

var outputFormat string

// write encodes v to w in the requested format.
func write(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(v), "failed to encode json")
	case formatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(v), "failed to encode toml")
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}
