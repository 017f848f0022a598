package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// ConfigPathEnv overrides where the config file is searched for.
	ConfigPathEnv = "THRIVE_CONFIG_PATH"

	defaultPath = "~/.thrivesense"
)

type Config interface {
	BasePath() string
}

// LoadConfig reads .thrivesense.yaml from $THRIVE_CONFIG_PATH or the
// working directory. THRIVE_PATH overrides the storage location.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetConfigName(".thrivesense") // .yaml is implicit
	v.SetEnvPrefix("THRIVE")
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("expand storage path: %w", err)
	}

	return &fileConfig{Path: path, File: v.ConfigFileUsed()}, nil
}

type fileConfig struct {
	Path string `json:"path"`
	File string `json:"file,omitempty"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

// ConfigFile returns the config file that was read, if any.
func (f *fileConfig) ConfigFile() string {
	return f.File
}

// PathConfig is a Config fixed to a directory.
type PathConfig string

func (p PathConfig) BasePath() string {
	return string(p)
}
