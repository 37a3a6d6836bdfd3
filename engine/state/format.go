package state

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format selects the text encoding of a Record.
type Format int

const (
	// FormatJSON is the canonical format.
	FormatJSON Format = iota
	// FormatYAML uses block style with flow-style vectors.
	FormatYAML
	// FormatTOML writes a single flat table.
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name ("json", "yaml", "yml", "toml") to a Format.
//
// Parameters:
//   - name: the format name, case-insensitive
//
// Returns:
//   - Format: the matching format
//   - error: ErrUnknownFormat if the name is not recognized
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return 0, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, errors.Wrapf(ErrUnknownFormat, "%q has no extension", path)
	}
	return ParseFormat(ext)
}
