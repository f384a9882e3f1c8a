package cmd

import (
	"fmt"
	"os"

	"github.com/dogeorg/wifid/cmd/wifid/utils"
	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/dogeorg/wifid/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	v       = newViper()
	envFile string

	// set in PersistentPreRun, read by every subcommand
	config wifid.ServerConfig
	log    *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wifid",
	Short: "wifid scans for and joins wifi networks through NetworkManager",
	Long: `wifid serves a small web UI and JSON API for scanning and joining
wifi networks on a Linux host. All the work is done by nmcli.

Configuration comes from flags, then the environment (WIFI_IFACE,
HOST, PORT, ...), then an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := loadEnvFile(v, envFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			utils.ExitBad(utils.UnderSystemd())
		}

		c, err := loadConfig(v)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			utils.ExitBad(utils.UnderSystemd())
		}
		config = c

		l, err := logger.New(config)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to set up logging:", err)
			utils.ExitBad(utils.UnderSystemd())
		}
		log = l
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "Load configuration from this file (default: ./.env if present)")
	flags.String("iface", "", "Pin operations to this wifi interface (env WIFI_IFACE)")
	flags.String("nmcli", wifid.DefaultToolPath, "Path to the nmcli binary (env NMCLI_PATH)")
	flags.Duration("scan-timeout", wifid.DefaultScanTimeout, "Timeout for nmcli queries (env SCAN_TIMEOUT)")
	flags.Duration("connect-timeout", wifid.DefaultConnectTimeout, "Timeout for nmcli connect (env CONNECT_TIMEOUT)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.String("log-format", "text", "Log format: text or json (env LOG_FORMAT)")
	flags.String("log-file", "", "Also write logs to this file, rotated (env LOG_FILE)")
	flags.BoolP("verbose", "v", false, "Be verbose (env VERBOSE)")

	v.BindPFlag("wifi_iface", flags.Lookup("iface"))
	v.BindPFlag("nmcli_path", flags.Lookup("nmcli"))
	v.BindPFlag("scan_timeout", flags.Lookup("scan-timeout"))
	v.BindPFlag("connect_timeout", flags.Lookup("connect-timeout"))
	v.BindPFlag("log_level", flags.Lookup("log-level"))
	v.BindPFlag("log_format", flags.Lookup("log-format"))
	v.BindPFlag("log_file", flags.Lookup("log-file"))
	v.BindPFlag("verbose", flags.Lookup("verbose"))
}
