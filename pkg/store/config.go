package store

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries everything the store and the background poller need.
type Config interface {
	BasePath() string
	GeminiAPIKey() string
	PollInterval() time.Duration
	Lookback() time.Duration
}

// LoadConfig reads the .atelier config file, honoring ATELIER_* environment
// overrides. A missing config file is fine; defaults apply.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.atelier.db")
	viper.SetDefault("poll_interval", "3s")
	viper.SetDefault("lookback", "24h")
	viper.SetConfigName(".atelier") // .yaml is implicit
	viper.SetEnvPrefix("ATELIER")
	viper.AutomaticEnv()

	if override := os.Getenv("ATELIER_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:   path,
		APIKey: viper.GetString("gemini_api_key"),
		Poll:   viper.GetDuration("poll_interval"),
		Back:   viper.GetDuration("lookback"),
	}, nil
}

type fileConfig struct {
	Path   string        `json:"path"`
	APIKey string        `json:"gemini_api_key"`
	Poll   time.Duration `json:"poll_interval"`
	Back   time.Duration `json:"lookback"`
}

func (f *fileConfig) BasePath() string { return f.Path }

func (f *fileConfig) GeminiAPIKey() string { return f.APIKey }

func (f *fileConfig) PollInterval() time.Duration { return f.Poll }

func (f *fileConfig) Lookback() time.Duration { return f.Back }
