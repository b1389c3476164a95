// Package config loads the settings of the game from the environment, an
// optional .env file and the command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the settings of the game.
type Config struct {
	Debug       bool
	LogFile     string
	Sound       bool
	AudioFolder string
	Snapshots   string
	MongoURI    string
	MongoDB     string
	InfoDelay   time.Duration
}

// Load reads the .env file if it exists, then the environment, then the
// arguments. Later sources override earlier ones.
func Load(envFile string, args []string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		Debug:       GetEnvAsBool("CONNECT_DEBUG", false),
		LogFile:     GetEnv("CONNECT_LOG_FILE", "log.txt"),
		Sound:       GetEnvAsBool("CONNECT_SOUND", true),
		AudioFolder: GetEnv("CONNECT_AUDIO_FOLDER", "audio"),
		Snapshots:   GetEnv("CONNECT_SNAPSHOTS", ""),
		MongoURI:    GetEnv("CONNECT_MONGO_URI", ""),
		MongoDB:     GetEnv("CONNECT_MONGO_DB", "connect4"),
		InfoDelay:   GetEnvAsDuration("CONNECT_INFO_DELAY", 1500*time.Millisecond),
	}

	flags := flag.NewFlagSet("connect", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write a debug log")
	flags.StringVar(&cfg.LogFile, "log", cfg.LogFile, "debug log file")
	flags.BoolVar(&cfg.Sound, "sound", cfg.Sound, "announce results with speech")
	flags.StringVar(&cfg.AudioFolder, "audio", cfg.AudioFolder, "folder for speech files")
	flags.StringVar(&cfg.Snapshots, "snapshots", cfg.Snapshots, "folder for images of finished games")
	flags.StringVar(&cfg.MongoURI, "mongo", cfg.MongoURI, "mongo uri for the match history")
	flags.StringVar(&cfg.MongoDB, "mongo-db", cfg.MongoDB, "mongo database for the match history")
	flags.DurationVar(&cfg.InfoDelay, "info-delay", cfg.InfoDelay, "how long messages stay on screen")

	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.InfoDelay <= 0 {
		return Config{}, fmt.Errorf("info delay must be positive: %s", cfg.InfoDelay)
	}

	return cfg, nil
}

// =============================================================================

// GetEnv returns the value of the environment variable or the default.
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvAsBool returns the environment variable as a bool. Values that don't
// parse fall back to the default.
func GetEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvAsDuration returns the environment variable as a duration. Values
// that don't parse fall back to the default.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
