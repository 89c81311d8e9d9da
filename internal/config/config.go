// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and an
// optional TOML config file.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `toml:"address"`

	// StorePath is the path of the JSON document backing the key-value store.
	StorePath string `toml:"store_path"`

	// LogLevel sets the zap log level (Debug/Info/Warn/Error).
	LogLevel string `toml:"log_level"`

	// Config is the path to the config file.
	Config string `toml:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.StorePath, "s", "taskmaster.json", "path to the storage file")
	flag.StringVar(&options.LogLevel, "l", "Info", "log level")
	flag.StringVar(&options.Config, "config", "config.toml", "path to config file")
	flag.StringVar(&options.Config, "c", "config.toml", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the config file and environment
// variables to set configuration values. It returns a pointer to the Options
// struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			if _, err := toml.DecodeFile(options.Config, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if storePath := os.Getenv("STORE_PATH"); storePath != "" {
		options.StorePath = storePath
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		options.LogLevel = logLevel
	}

	return options
}
