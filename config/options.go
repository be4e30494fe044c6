package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"curgen/cursor"
)

// LoadCursorOptions reads cursor theme options from YAML or TOML file,
// format is selected by file extension. Unknown keys are rejected.
func LoadCursorOptions(path string) (*cursor.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cursor options: %w", err)
	}

	opts := &cursor.Options{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(opts); err != nil {
			return nil, fmt.Errorf("failed to decode cursor options (%s): %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(opts); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode cursor options (%s): %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported cursor options format '%s', use .yaml or .toml", ext)
	}
	return opts, nil
}
