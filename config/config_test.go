package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"veil/stegano/audio"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yml")

	conf := DefaultConfig()
	conf.StegConfig.FrameDuration = 0.25
	conf.StegConfig.Header = "1111000011110000"
	conf.ServerConfig.Address = "127.0.0.1:9000"

	assert.NoError(t, SaveConfig(filename, conf))

	loaded, err := LoadConfig(filename)
	assert.NoError(t, err)
	assert.Equal(t, conf, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yml")
	partial := DefaultConfig()
	partial.StegConfig = StegoConfig{FrameDuration: 0.5}
	assert.NoError(t, SaveConfig(filename, partial))

	loaded, err := LoadConfig(filename)
	assert.NoError(t, err)
	assert.Equal(t, 0.5, loaded.StegConfig.FrameDuration)
	// the address comes from the file since SaveConfig writes the
	// whole struct, but zeroed stego fields fall back in Options
	opts := loaded.Options()
	assert.Equal(t, 0.5, opts.FrameDuration)
	assert.Equal(t, audio.DefaultCompareFraction, opts.CompareFraction)
	assert.Equal(t, audio.DefaultHeader, opts.Header)
	assert.Equal(t, audio.DefaultFooter, opts.Footer)
}

func TestOptionsMapping(t *testing.T) {
	conf := DefaultConfig()
	conf.StegConfig.FrameDuration = 0.05
	conf.StegConfig.CompareFraction = 0.25
	conf.StegConfig.Header = "1100110011001100"
	conf.StegConfig.Footer = "0011001100110011"

	opts := conf.Options()
	assert.Equal(t, 0.05, opts.FrameDuration)
	assert.Equal(t, 0.25, opts.CompareFraction)
	assert.Equal(t, "1100110011001100", opts.Header)
	assert.Equal(t, "0011001100110011", opts.Footer)
}
