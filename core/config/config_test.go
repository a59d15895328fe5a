package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/josephlewis42/replrc/core/pretty"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_pprintMatchesFormatter(t *testing.T) {
	assert.Equal(t, pretty.DefaultOptions(), defaultConfig().Pprint.Options())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Configuration){
		"empty-history-file":     func(c *Configuration) { c.HistoryFile = "" },
		"negative-history-limit": func(c *Configuration) { c.HistoryLimit = -1 },
		"unknown-color":          func(c *Configuration) { c.Color = "sometimes" },
		"zero-width":             func(c *Configuration) { c.Pprint.Width = 0 },
		"negative-indent":        func(c *Configuration) { c.Pprint.Indent = -2 },
		"negative-depth":         func(c *Configuration) { c.Pprint.Depth = -1 },
	}

	for tn, mutate := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestHistoryPath(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", "/home/tester")

	cfg := defaultConfig()
	path, err := cfg.HistoryPath()
	assert.NoError(t, err)
	assert.Equal(t, "/home/tester/.replrc_history", path)

	cfg.HistoryFile = "/var/tmp/hist"
	path, err = cfg.HistoryPath()
	assert.NoError(t, err)
	assert.Equal(t, "/var/tmp/hist", path)
}
