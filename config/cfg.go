package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ResizeConfig struct {
		MinWidth       int       `yaml:"min_width" validate:"min=1"`
		MinHeight      int       `yaml:"min_height" validate:"min=1"`
		SnapThreshold  int       `yaml:"snap_threshold" validate:"gte=0"`
		ReferenceWidth int       `yaml:"reference_width" validate:"min=1"`
		Breakpoints    []float64 `yaml:"breakpoints" validate:"dive,gt=0,lte=1"`
	}

	MobileConfig struct {
		// Breakout is the inline style applied when block spans full mobile
		// width, it negates horizontal padding of the preview document.
		Breakout string `yaml:"breakout" validate:"required"`
	}

	EditorConfig struct {
		MaxDepth      int          `yaml:"max_depth" validate:"min=1,max=64"`
		PreviewLength int          `yaml:"preview_length" validate:"min=1"`
		Resize        ResizeConfig `yaml:"resize"`
		Mobile        MobileConfig `yaml:"mobile"`
	}

	PaletteConfig struct {
		// Path to YAML file with insertable templates, embedded palette is used when empty.
		Path string `yaml:"path" sanitize:"assure_file_access"`
	}

	StoreConfig struct {
		Path    string `yaml:"path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
		History int    `yaml:"history" validate:"gte=0"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Editor    EditorConfig   `yaml:"editor"`
		Palette   PaletteConfig  `yaml:"palette"`
		Store     StoreConfig    `yaml:"store"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

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
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
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
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
