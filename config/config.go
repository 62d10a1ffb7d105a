package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"veil/media"
	"veil/stegano/audio"
	"veil/util"
)

/*
 * yaml configuration. Everything has a sensible default so the tool
 * works without any config file at all; the file exists for users who
 * keep custom framing parameters and don't want to retype them.
 */

type StegoConfig struct {
	FrameDuration   float64 `yaml:"frame_duration"`
	CompareFraction float64 `yaml:"compare_fraction"`
	Header          string  `yaml:"header"`
	Footer          string  `yaml:"footer"`
	SampleRate      int     `yaml:"sample_rate"`
	FFmpegPath      string  `yaml:"ffmpeg_path"`
}

/*
 * configuration of the local API server.
 */
type ServerConfiguration struct {
	Address       string `yaml:"address"`
	MaxUploadSize int64  `yaml:"max_upload_size"`
}

type FullConfig struct {
	StegConfig   StegoConfig         `yaml:"steganography_config"`
	ServerConfig ServerConfiguration `yaml:"local_server_config"`
	Logger       util.LoggerInfo     `yaml:"logger_config"`
}

func DefaultConfig() *FullConfig {
	return &FullConfig{
		StegConfig: StegoConfig{
			FrameDuration:   audio.DefaultFrameDuration,
			CompareFraction: audio.DefaultCompareFraction,
			Header:          audio.DefaultHeader,
			Footer:          audio.DefaultFooter,
			SampleRate:      media.DefaultSampleRate,
			FFmpegPath:      "ffmpeg",
		},
		ServerConfig: ServerConfiguration{
			Address:       "127.0.0.1:8791",
			MaxUploadSize: 512 << 20,
		},
		Logger: util.LoggerInfo{
			IsColored: true,
			Mode:      util.Error | util.Warning | util.Info,
		},
	}
}

// Options maps the stego section onto codec options.
func (c *FullConfig) Options() audio.Options {
	opts := audio.DefaultOptions()
	if c.StegConfig.FrameDuration > 0 {
		opts.FrameDuration = c.StegConfig.FrameDuration
	}
	if c.StegConfig.CompareFraction > 0 {
		opts.CompareFraction = c.StegConfig.CompareFraction
	}
	if c.StegConfig.Header != "" {
		opts.Header = c.StegConfig.Header
	}
	if c.StegConfig.Footer != "" {
		opts.Footer = c.StegConfig.Footer
	}
	return opts
}

func LoadConfig(filename string) (*FullConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	conf := DefaultConfig()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func SaveConfig(filename string, c *FullConfig) error {
	data, err := yaml.Marshal(*c)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0600)
}
