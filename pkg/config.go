package wifid

import (
	"fmt"
	"time"
)

const (
	DefaultBind           = "0.0.0.0"
	DefaultPort           = 8000
	DefaultToolPath       = "nmcli"
	DefaultScanTimeout    = 8 * time.Second
	DefaultConnectTimeout = 15 * time.Second
)

// ServerConfig is built once at startup and handed to every
// component that needs it. Nothing mutates it afterwards.
type ServerConfig struct {
	Bind           string
	Port           int
	Interface      string // empty means let nmcli pick the adapter
	ToolPath       string
	ScanTimeout    time.Duration
	ConnectTimeout time.Duration
	UiDir          string // empty serves the embedded page
	LogLevel       string
	LogFormat      string
	LogFile        string
	Verbose        bool
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Bind:           DefaultBind,
		Port:           DefaultPort,
		ToolPath:       DefaultToolPath,
		ScanTimeout:    DefaultScanTimeout,
		ConnectTimeout: DefaultConnectTimeout,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// InterfaceOrAuto is used in log lines.
func (c ServerConfig) InterfaceOrAuto() string {
	if c.Interface == "" {
		return "auto"
	}
	return c.Interface
}

func (c ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ToolPath == "" {
		return fmt.Errorf("nmcli path must not be empty")
	}
	if c.ScanTimeout <= 0 || c.ConnectTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive (scan %s, connect %s)", c.ScanTimeout, c.ConnectTimeout)
	}
	return nil
}
