package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// New builds the process logger from config. An unknown level falls
// back to info (with a warning); an unknown format is an error.
func New(config wifid.ServerConfig) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		defer log.Warnf("Invalid log level '%s', using 'info'", config.LogLevel)
	}
	if config.Verbose && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	switch strings.ToLower(config.LogFormat) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	default:
		return nil, fmt.Errorf("unsupported log format: %s", config.LogFormat)
	}

	out, err := output(config.LogFile)
	if err != nil {
		return nil, err
	}
	log.SetOutput(out)

	return log, nil
}

// Logs go to stderr unless a file is given, in which case they are
// written to both and the file is rotated.
func output(path string) (io.Writer, error) {
	if path == "" {
		return os.Stderr, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}), nil
}
