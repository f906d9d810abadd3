// Package config loads the generator settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = ".jsdocmd.yaml"

// ErrConfiguration marks missing or invalid settings.
var ErrConfiguration = errors.New("invalid configuration")

// Config holds the settings read from .jsdocmd.yaml.
type Config struct {
	Glob         Patterns `yaml:"glob" validate:"omitempty,dive,required"`
	InputDir     string   `yaml:"inputDir"`
	TemplateFile string   `yaml:"templateFile"`
	OutputDir    string   `yaml:"outputDir"`
	OutputFile   string   `yaml:"outputFile" validate:"required"`
	JSDoc        string   `yaml:"jsdoc"`
	Records      string   `yaml:"records"`
	Format       string   `yaml:"format" validate:"omitempty,oneof=markdown html"`
}

// Patterns accepts either a single string or a list in YAML.
type Patterns []string

func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*p = Patterns{node.Value}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*p = list
	return nil
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Glob:     Patterns{"**/*.js"},
		InputDir: ".",
		Format:   "markdown",
	}
}

// Load reads path over the defaults. A missing DefaultFile is not an error; a
// missing explicitly named file is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrConfiguration, path, err)
	}
	// Relative paths in the file are relative to the file itself.
	base := filepath.Dir(path)
	cfg.InputDir = resolve(base, cfg.InputDir)
	cfg.TemplateFile = resolve(base, cfg.TemplateFile)
	cfg.OutputDir = resolve(base, cfg.OutputDir)
	cfg.Records = resolve(base, cfg.Records)
	return cfg, nil
}

func resolve(base, p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	resolved := filepath.Join(base, p)
	if hasTrailingSeparator(p) {
		resolved += string(filepath.Separator)
	}
	return resolved
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required settings. Failures wrap ErrConfiguration.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s must be provided", lowerFirst(fe.Field())))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", lowerFirst(fe.Field()), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(msgs, "; "))
}

// Destination is the output path: OutputFile resolved against OutputDir. A
// trailing separator is kept so the publisher can append README.md.
func (c Config) Destination() string {
	if c.OutputFile == "" {
		return ""
	}
	if filepath.IsAbs(c.OutputFile) || c.OutputDir == "" {
		return c.OutputFile
	}
	dest := filepath.Join(c.OutputDir, c.OutputFile)
	if hasTrailingSeparator(c.OutputFile) {
		dest += string(filepath.Separator)
	}
	return dest
}

func hasTrailingSeparator(p string) bool {
	return strings.HasSuffix(p, "/") || strings.HasSuffix(p, `\`)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
