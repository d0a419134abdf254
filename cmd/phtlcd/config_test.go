package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/phtlc/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	home := t.TempDir()

	conf, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(home), conf)

	conf.Bind = "tcp://0.0.0.0:36658"
	conf.LogLevel = "debug"
	conf.Debug = true
	require.NoError(t, WriteConfig(conf))

	err = WriteConfig(conf)
	assert.True(t, errors.ErrDuplicate.Is(err), "%+v", err)

	loaded, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, conf, loaded)
	assert.Equal(t, filepath.Join(home, "state.db"), loaded.DBPath())
}

func TestConfigValidation(t *testing.T) {
	home := t.TempDir()
	raw := "bind = \"tcp://localhost:1\"\nlog_level = \"loud\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, configFile), []byte(raw), 0o600))

	_, err := LoadConfig(home)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	require.NoError(t, os.WriteFile(filepath.Join(home, configFile), []byte("bind = 12"), 0o600))
	_, err = LoadConfig(home)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	conf := DefaultConfig(home)
	conf.Bind = ""
	assert.True(t, errors.ErrEmpty.Is(conf.Validate()))
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("info")
	assert.NoError(t, err)
	_, err = newLogger("verbose")
	assert.True(t, errors.ErrInput.Is(err))
}
