package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

// newViper knows every config key with its default. Keys are the
// lowercased environment variable names, so AutomaticEnv maps
// wifi_iface to WIFI_IFACE and so on.
func newViper() *viper.Viper {
	d := wifid.DefaultServerConfig()

	v := viper.New()
	v.SetDefault("host", d.Bind)
	v.SetDefault("port", d.Port)
	v.SetDefault("wifi_iface", d.Interface)
	v.SetDefault("nmcli_path", d.ToolPath)
	v.SetDefault("scan_timeout", d.ScanTimeout)
	v.SetDefault("connect_timeout", d.ConnectTimeout)
	v.SetDefault("ui_dir", d.UiDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("verbose", d.Verbose)
	v.AutomaticEnv()
	return v
}

// loadEnvFile reads KEY=value pairs and installs them as defaults, so
// real environment variables and flags still win. Without an explicit
// path ./.env is used if it exists.
func loadEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	for k, val := range values {
		v.SetDefault(strings.ToLower(k), val)
	}
	return nil
}

func loadConfig(v *viper.Viper) (wifid.ServerConfig, error) {
	config := wifid.ServerConfig{
		Bind:           v.GetString("host"),
		Port:           v.GetInt("port"),
		Interface:      strings.TrimSpace(v.GetString("wifi_iface")),
		ToolPath:       v.GetString("nmcli_path"),
		ScanTimeout:    getSeconds(v, "scan_timeout"),
		ConnectTimeout: getSeconds(v, "connect_timeout"),
		UiDir:          v.GetString("ui_dir"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		LogFile:        v.GetString("log_file"),
		Verbose:        v.GetBool("verbose"),
	}
	return config, config.Validate()
}

// getSeconds reads a duration like "8s", but also takes a bare number
// of seconds as the old deployments set SCAN_TIMEOUT=8.
func getSeconds(v *viper.Viper, key string) time.Duration {
	if s, ok := v.Get(key).(string); ok {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return time.Duration(n * float64(time.Second))
		}
	}
	return v.GetDuration(key)
}
