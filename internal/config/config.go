package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tailscale/hujson"

	"github.com/alnah/go-md2json/internal/assets"
	"github.com/alnah/go-md2json/internal/fileutil"
	"github.com/alnah/go-md2json/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("config does not match schema")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for rendering options, wherever they come from.
const (
	MaxMarkerLength     = 50  // "[TOC]", "{{toc}}"
	MaxTOCTitleLength   = 100 // TOC title
	MaxClassLength      = 100 // CSS class list
	MaxPermalinkLength  = 20  // Permalink text, e.g. "¶" or "#"
	MaxStyleLength      = 50  // Chroma style name
	MaxDateFormatLength = 100 // strftime pattern
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-md2json"

// Extensions tried, in order, when resolving a config name.
var configExtensions = []string{".json", ".jsonc", ".yaml", ".yml"}

//go:embed options.schema.json
var schemaSource string

var optionsSchema = jsonschema.MustCompileString("options.schema.json", schemaSource)

// Config holds the rendering options read from an options file.
type Config struct {
	TOC        TOCConfig       `yaml:"toc"`
	Highlight  HighlightConfig `yaml:"highlight"`
	DateFormat string          `yaml:"dateFormat"`
	Sanitize   bool            `yaml:"sanitize"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Marker          string           `yaml:"marker"`
	Title           string           `yaml:"title"` // null or empty = no title
	TitleClass      string           `yaml:"titleClass"`
	TOCClass        string           `yaml:"tocClass"`
	AnchorLink      bool             `yaml:"anchorlink"`
	AnchorLinkClass string           `yaml:"anchorlinkClass"`
	Permalink       PermalinkSetting `yaml:"permalink"`
	PermalinkClass  string           `yaml:"permalinkClass"`
}

// HighlightConfig defines code highlighting options.
type HighlightConfig struct {
	Style string `yaml:"style"` // Chroma style name
}

// PermalinkSetting accepts either a boolean or the link text.
// A non-empty string enables permalinks with that text.
type PermalinkSetting struct {
	Enabled bool
	Text    string
}

// UnmarshalYAML implements goccy/go-yaml's InterfaceUnmarshaler.
func (p *PermalinkSetting) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*p = PermalinkSetting{}
	case bool:
		*p = PermalinkSetting{Enabled: x}
	case string:
		*p = PermalinkSetting{Enabled: x != "", Text: x}
	default:
		return fmt.Errorf("permalink: expected boolean or string, got %T", v)
	}
	return nil
}

// Validate checks field lengths. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"toc.marker", c.TOC.Marker, MaxMarkerLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"toc.titleClass", c.TOC.TitleClass, MaxClassLength},
		{"toc.tocClass", c.TOC.TOCClass, MaxClassLength},
		{"toc.anchorlinkClass", c.TOC.AnchorLinkClass, MaxClassLength},
		{"toc.permalink", c.TOC.Permalink.Text, MaxPermalinkLength},
		{"toc.permalinkClass", c.TOC.PermalinkClass, MaxClassLength},
		{"highlight.style", c.Highlight.Style, MaxStyleLength},
		{"dateFormat", c.DateFormat, MaxDateFormatLength},
	}
	for _, chk := range checks {
		if err := validateFieldLength(chk.field, chk.value, chk.max); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads options from a file path or config name.
// If nameOrPath contains a path separator or a known extension, it's
// treated as a file path. Otherwise, it's treated as a config name and
// searched in standard locations, then among the built-in presets.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			// Built-in presets are the last place a name is looked up
			if preset, perr := assets.LoadPreset(nameOrPath); perr == nil {
				return Parse(preset.Data, preset.Ext)
			}
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data, filepath.Ext(configPath))
}

// Parse decodes options file contents. ext selects the syntax: ".yaml" and
// ".yml" are YAML, anything else is JSON with comments allowed.
func Parse(data []byte, ext string) (*Config, error) {
	jsonData, err := toJSON(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := optionsSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, schemaMessage(err))
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(jsonData, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func toJSON(data []byte, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yamlutil.ToJSON(data)
	default:
		return hujson.Standardize(data)
	}
}

// schemaMessage flattens a schema validation error to its leaf causes.
func schemaMessage(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	var msgs []string
	collectCauses(verr, &msgs)
	if len(msgs) == 0 {
		return verr.Message
	}
	return strings.Join(msgs, "; ")
}

func collectCauses(v *jsonschema.ValidationError, msgs *[]string) {
	if len(v.Causes) == 0 {
		loc := v.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, loc+": "+v.Message)
		return
	}
	for _, c := range v.Causes {
		collectCauses(c, msgs)
	}
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	for _, known := range configExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .json, .jsonc, .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2json/
// Built-in presets are not consulted here; see LoadConfig.
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(configExtensions)*2) // 2 locations

	for _, ext := range configExtensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range configExtensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s and built-in presets (%s)",
		ErrConfigNotFound, strings.Join(triedPaths, ", "), strings.Join(assets.Presets(), ", "))
}
