package config

import (
	"io/ioutil"
	"log"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger := log.New(ioutil.Discard, "", 0)

	cfg, err := Initialize(fs, "/cfg", logger)
	assert.NoError(t, err)
	assert.Equal(t, defaultConfig().HistoryFile, cfg.HistoryFile)

	contents, err := afero.ReadFile(fs, filepath.Join("/cfg", ConfigurationName))
	assert.NoError(t, err)
	assert.Equal(t, defaultConfigData, contents)

	t.Run("keeps existing", func(t *testing.T) {
		assert.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte("banner: false\n"), 0600))

		cfg, err := Initialize(fs, "/cfg", logger)
		assert.NoError(t, err)
		assert.False(t, cfg.Banner)
	})
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte("history_limit: 5\npprint:\n  width: 40\n"), 0600))

	t.Run("directory", func(t *testing.T) {
		cfg, err := Load(fs, "/cfg")
		assert.NoError(t, err)
		assert.Equal(t, 5, cfg.HistoryLimit)
		assert.Equal(t, 40, cfg.Pprint.Width)

		// Unset values keep their defaults.
		assert.True(t, cfg.TabComplete)
		assert.Equal(t, 1, cfg.Pprint.Indent)
		assert.Equal(t, fs, cfg.Fs())
	})

	t.Run("file", func(t *testing.T) {
		cfg, err := Load(fs, "/cfg/config.yaml")
		assert.NoError(t, err)
		assert.Equal(t, 5, cfg.HistoryLimit)
	})
}

func TestLoad_errors(t *testing.T) {
	cases := map[string]string{
		"unknown-field": "no_such_field: 1\n",
		"bad-yaml":      "history_limit: [\n",
		"invalid-value": "color: sometimes\n",
	}

	for tn, contents := range cases {
		t.Run(tn, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			assert.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte(contents), 0600))

			_, err := Load(fs, "/cfg")
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(afero.NewMemMapFs(), "/missing")
	assert.NoError(t, err)
	assert.Equal(t, defaultConfig().HistoryLimit, cfg.HistoryLimit)
}
