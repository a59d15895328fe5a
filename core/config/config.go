package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephlewis42/replrc/core/pretty"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	DefaultDirName    = ".replrc"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	HistoryFile  string `json:"history_file" validate:"required"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0"`
	TabComplete  bool   `json:"tab_complete"`
	Banner       bool   `json:"banner"`
	Color        string `json:"color" validate:"oneof=always auto never"`

	Pprint Pprint `json:"pprint"`
}

type Pprint struct {
	Enabled   bool `json:"enabled"`
	Indent    int  `json:"indent" validate:"gte=0"`
	Width     int  `json:"width" validate:"gte=1"`
	Depth     int  `json:"depth" validate:"gte=0"` // 0 is unlimited
	Compact   bool `json:"compact"`
	SortDicts bool `json:"sort_dicts"`
}

// Options converts the settings to formatter options.
func (p Pprint) Options() pretty.Options {
	return pretty.Options{
		Indent:   p.Indent,
		Width:    p.Width,
		Depth:    p.Depth,
		Compact:  p.Compact,
		SortKeys: p.SortDicts,
	}
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Fs returns the filesystem the configuration was loaded from.
func (c *Configuration) Fs() afero.Fs {
	return c.fs()
}

// HistoryPath returns the history file location with ~ expanded to the
// home directory.
func (c *Configuration) HistoryPath() (string, error) {
	return homedir.Expand(c.HistoryFile)
}

// DefaultDir returns the configuration directory in the user's home.
func DefaultDir() (string, error) {
	return homedir.Expand("~/" + DefaultDirName)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
