package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/phtlc/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const configFile = "config.toml"

// Config is the daemon configuration, read from a TOML file in the home
// directory. Every value can be overridden with a command line flag.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Home is the directory holding the configuration and the state.
	Home     string `toml:"home"`
	LogLevel string `toml:"log_level"`
	// MetricsAddr is the address of the prometheus endpoint. Metrics are
	// not served if empty.
	MetricsAddr string `toml:"metrics_addr"`
	// Debug returns full error details, including stack traces, to the
	// clients.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig(home string) Config {
	return Config{
		Bind:        "tcp://localhost:26658",
		Home:        home,
		LogLevel:    "info",
		MetricsAddr: "localhost:9090",
	}
}

// LoadConfig reads the configuration file from the home directory. Missing
// file results in the default configuration.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig(home)
	path := filepath.Join(home, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "cannot read %s: %s", path, err)
	}
	return conf, conf.Validate()
}

// WriteConfig stores the configuration in the home directory. An existing
// file is never overwritten.
func WriteConfig(conf Config) error {
	if err := os.MkdirAll(conf.Home, 0o750); err != nil {
		return errors.Wrap(err, "cannot create home directory")
	}
	path := filepath.Join(conf.Home, configFile)
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(errors.ErrDuplicate, "%s already exists", path)
		}
		return errors.Wrap(err, "cannot create config file")
	}
	defer fd.Close()
	if err := toml.NewEncoder(fd).Encode(conf); err != nil {
		return errors.Wrap(err, "cannot write config file")
	}
	return nil
}

func (c Config) Validate() error {
	if c.Bind == "" {
		return errors.Wrap(errors.ErrEmpty, "bind")
	}
	if c.Home == "" {
		return errors.Wrap(errors.ErrEmpty, "home")
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		return errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return nil
}

// DBPath returns the location of the state database.
func (c Config) DBPath() string {
	return filepath.Join(c.Home, "state.db")
}
