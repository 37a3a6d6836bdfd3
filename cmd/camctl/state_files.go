package main

import (
	"os"

	"github.com/Carmen-Shannon/oxycam/engine/state"
	"github.com/pkg/errors"
)

// resolveFormat uses name when set, otherwise the extension of path.
func resolveFormat(name, path string) (state.Format, error) {
	if name != "" {
		return state.ParseFormat(name)
	}
	return state.FormatFromPath(path)
}

func readRecord(path, formatName string) (state.Record, error) {
	format, err := resolveFormat(formatName, path)
	if err != nil {
		return state.Record{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return state.Record{}, errors.Wrapf(err, "read %s", path)
	}
	rec, err := state.Decode(data, format)
	return rec, errors.Wrap(err, path)
}

func writeRecord(path string, rec state.Record, format state.Format) error {
	data, err := state.Encode(rec, format)
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}
