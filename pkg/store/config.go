package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultKey is the storage key holding the encoded task list.
	DefaultKey = "todos"

	BackendDiskv  = "diskv"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config locates the task list.
type Config interface {
	BasePath() string
	Key() string
}

// Settings is the resolved configuration read through viper.
type Settings struct {
	Path       string `json:"path"`
	StoreKey   string `json:"key"`
	Store      string `json:"backend"`
	RedisAddr  string `json:"redisAddr,omitempty"`
	RedisDB    int    `json:"redisDB,omitempty"`
	LogLevel   string `json:"logLevel,omitempty"`
	LogFile    string `json:"logFile,omitempty"`
	ClearInput bool   `json:"clearInput"`
	ConfigFile string `json:"configFile,omitempty"`
}

// SetDefaults registers the default configuration values on viper.
func SetDefaults() {
	viper.SetDefault("path", "~/.todo.db")
	viper.SetDefault("key", DefaultKey)
	viper.SetDefault("backend", BackendDiskv)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("ui.clear-input", true)
}

// LoadConfig reads .todo.yaml from the working directory or from
// $TODO_CONFIG_PATH and overlays TODO_* environment variables.
func LoadConfig() (*Settings, error) {
	SetDefaults()
	viper.SetConfigName(".todo") // .yaml is implicit
	viper.SetEnvPrefix("TODO")
	viper.AutomaticEnv()

	if override := os.Getenv("TODO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &Settings{
		Path:       path,
		StoreKey:   viper.GetString("key"),
		Store:      viper.GetString("backend"),
		RedisAddr:  viper.GetString("redis.addr"),
		RedisDB:    viper.GetInt("redis.db"),
		LogLevel:   viper.GetString("log.level"),
		LogFile:    viper.GetString("log.file"),
		ClearInput: viper.GetBool("ui.clear-input"),
		ConfigFile: viper.ConfigFileUsed(),
	}, nil
}

func (s *Settings) BasePath() string {
	return s.Path
}

func (s *Settings) Key() string {
	if s.StoreKey == "" {
		return DefaultKey
	}
	return s.StoreKey
}

// Backend names the storage implementation, defaulting to diskv.
func (s *Settings) Backend() string {
	if s.Store == "" {
		return BackendDiskv
	}
	return s.Store
}

// LogPath is where logs go while the terminal UI owns the screen.
func (s *Settings) LogPath() string {
	if s.LogFile != "" {
		return s.LogFile
	}
	return filepath.Join(s.Path, "todo.log")
}
