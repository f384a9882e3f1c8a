package logger

import (
	"os"
	"path/filepath"
	"testing"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	config := wifid.DefaultServerConfig()

	log, err := New(config)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	config.LogLevel = "warn"
	log, err = New(config)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	config.Verbose = true
	log, err = New(config)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	config = wifid.DefaultServerConfig()
	config.LogLevel = "chatty"
	log, err = New(config)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewFormats(t *testing.T) {
	config := wifid.DefaultServerConfig()

	config.LogFormat = "json"
	log, err := New(config)
	require.NoError(t, err)
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	config.LogFormat = "TEXT"
	log, err = New(config)
	require.NoError(t, err)
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	config.LogFormat = "xml"
	_, err = New(config)
	assert.Error(t, err)
}

func TestNewFileOutput(t *testing.T) {
	config := wifid.DefaultServerConfig()
	config.LogFormat = "json"
	config.LogFile = filepath.Join(t.TempDir(), "nested", "wifid.log")

	log, err := New(config)
	require.NoError(t, err)
	log.WithField("ssid", "HomeNet").Info("connected")

	b, err := os.ReadFile(config.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"ssid":"HomeNet"`)
	assert.Contains(t, string(b), `"msg":"connected"`)
}
