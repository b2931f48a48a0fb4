package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

// Color settings.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	Prompt         string `json:"prompt"`
	StatusVariable string `json:"status_variable" validate:"required,excludesall=="`
	VariableSigil  string `json:"variable_sigil" validate:"required"`

	MaxVariables  int `json:"max_variables" validate:"gte=1"`
	MaxArguments  int `json:"max_arguments" validate:"gte=1"`
	MaxLineLength int `json:"max_line_length" validate:"gte=1"`

	HereDocOpener    string `json:"heredoc_opener" validate:"required,ne=<,ne=>,ne=&"`
	HereDocDelimiter string `json:"heredoc_delimiter" validate:"required"`

	NullDevice string `json:"null_device" validate:"required"`

	Quoting                bool   `json:"quoting"`
	ReportAssignmentErrors bool   `json:"report_assignment_errors"`
	Color                  string `json:"color" validate:"oneof=always auto never"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	validate.RegisterStructValidation(validateSigil, Configuration{})

	return validate.Struct(c)
}

// validateSigil rejects a status variable that can't be referenced because
// its name contains the variable sigil.
func validateSigil(sl validator.StructLevel) {
	c := sl.Current().Interface().(Configuration)
	if c.VariableSigil != "" && strings.Contains(c.StatusVariable, c.VariableSigil) {
		sl.ReportError(c.StatusVariable, "status_variable", "StatusVariable", "excludes_sigil", c.VariableSigil)
	}
}

// Fs returns the filesystem the configuration was loaded from.
func (c *Configuration) Fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Default returns the built-in configuration.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewOsFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
