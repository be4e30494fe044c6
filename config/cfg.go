package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/andybalholm/cascadia"
	validator "github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/ianaindex"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"curgen/common"
	"curgen/cursor"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	CursorsConfig struct {
		cursor.Options `yaml:",inline"`
		OptionsFile    string `yaml:"options_file,omitempty" sanitize:"assure_file_access"`
		Semantic       bool   `yaml:"semantic"`
	}

	ApplyConfig struct {
		Size  common.SizeTier `yaml:"size"`
		Color string          `yaml:"color" validate:"required"`
		Delay time.Duration   `yaml:"delay" validate:"gte=0"`
	}

	SourceConfig struct {
		Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
		AuthToken SecretString  `yaml:"auth_token,omitempty"`
		Charset   string        `yaml:"charset,omitempty"`
		UserAgent string        `yaml:"user_agent,omitempty"`
	}

	OutputConfig struct {
		Dir           string `yaml:"dir,omitempty"`
		FileName      string `yaml:"file_name" validate:"required"`
		Transliterate bool   `yaml:"transliterate"`
		StyleID       string `yaml:"style_id" validate:"required"`
	}

	AssetsConfig struct {
		SourceDir string `yaml:"source_dir,omitempty"`
		DestDir   string `yaml:"dest_dir,omitempty"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Cursors   CursorsConfig  `yaml:"cursors"`
		Apply     ApplyConfig    `yaml:"apply"`
		Select    ApplyConfig    `yaml:"select"`
		Source    SourceConfig   `yaml:"source"`
		Output    OutputConfig   `yaml:"output"`
		Assets    AssetsConfig   `yaml:"assets"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// NOTE: must match yaml field name above
const FileNameTemplateFieldName = "file_name"

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(FileNameTemplateFieldName),
)

// additionalChecks validates relations between fields which could not be
// expressed with tags.
func additionalChecks(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}

	// only built-in theme restricts colors
	if cfg.Cursors.OptionsFile == "" && cfg.Cursors.Options.IsZero() {
		if _, err := common.ParseColorVariant(cfg.Apply.Color); err != nil {
			sl.ReportError(cfg.Apply.Color, "Apply.Color", "Color", "colorvariant", "")
		}
		if _, err := common.ParseColorVariant(cfg.Select.Color); err != nil {
			sl.ReportError(cfg.Select.Color, "Select.Color", "Color", "colorvariant", "")
		}
	}
	if !cfg.Apply.Size.IsValid() {
		sl.ReportError(cfg.Apply.Size, "Apply.Size", "Size", "sizetier", "")
	}
	if !cfg.Select.Size.IsValid() {
		sl.ReportError(cfg.Select.Size, "Select.Size", "Size", "sizetier", "")
	}
	if cfg.Source.Charset != "" {
		if enc, err := ianaindex.IANA.Encoding(cfg.Source.Charset); err != nil || enc == nil {
			sl.ReportError(cfg.Source.Charset, "Source.Charset", "Charset", "charset", "")
		}
	}
	if cfg.Output.FileName != CleanFileName(cfg.Output.FileName) {
		sl.ReportError(cfg.Output.FileName, "Output.FileName", "FileName", "filename", "")
	}
	if _, err := cascadia.Parse("#" + cfg.Output.StyleID); err != nil {
		sl.ReportError(cfg.Output.StyleID, "Output.StyleID", "StyleID", "cssident", "")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(additionalChecks)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// CursorOptions returns cursor theme options: inline values overlaid with the
// options file if one is configured. Nil is returned when nothing is set, so
// the built-in catalog is used.
func (conf *CursorsConfig) CursorOptions() (*cursor.Options, error) {
	var opts *cursor.Options
	if !conf.Options.IsZero() {
		inline := conf.Options
		opts = &inline
	}
	if conf.OptionsFile == "" {
		return opts, nil
	}
	fromFile, err := LoadCursorOptions(conf.OptionsFile)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		return fromFile, nil
	}
	merged := opts.Overlay(fromFile)
	return &merged, nil
}
