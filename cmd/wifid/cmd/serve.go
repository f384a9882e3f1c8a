package cmd

import (
	"context"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/dogeorg/wifid/pkg/conductor"
	"github.com/dogeorg/wifid/pkg/metrics"
	network_nmcli "github.com/dogeorg/wifid/pkg/system/network/nmcli"
	network_wifi "github.com/dogeorg/wifid/pkg/system/network/wifi"
	"github.com/dogeorg/wifid/pkg/version"
	"github.com/dogeorg/wifid/pkg/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and JSON API",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		Server(config, log).Start()
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.String("host", wifid.DefaultBind, "Address to listen on (env HOST)")
	flags.IntP("port", "p", wifid.DefaultPort, "Port to listen on (env PORT)")
	flags.String("ui-dir", "", "Serve the UI from this directory instead of the built-in page (env UI_DIR)")

	v.BindPFlag("host", flags.Lookup("host"))
	v.BindPFlag("port", flags.Lookup("port"))
	v.BindPFlag("ui_dir", flags.Lookup("ui-dir"))

	rootCmd.AddCommand(serveCmd)
}

type server struct {
	config wifid.ServerConfig
	log    *logrus.Logger
}

func Server(config wifid.ServerConfig, log *logrus.Logger) server {
	return server{config, log}
}

func (t server) Start() {
	t.log.WithFields(logrus.Fields{
		"release": version.GetRelease().Release,
		"addr":    t.config.Addr(),
		"iface":   t.config.InterfaceOrAuto(),
	}).Info("Starting wifid")

	m := metrics.New()
	runner := network_nmcli.NewExecRunner(t.config.ToolPath, t.log, m)

	t.preflight(runner)

	nm := network_nmcli.NewNetworkManager(t.config, runner, t.log)
	ifaces := network_wifi.NewInterfaceLister()
	rest := web.RESTAPI(t.config, nm, ifaces, m, t.log)

	opts := []conductor.Option{
		conductor.HookSignals(),
		conductor.SystemdNotify(),
		conductor.WithLogger(t.log),
	}
	if t.config.Verbose {
		opts = append(opts, conductor.Noisy())
	}

	c := conductor.NewConductor(opts...)
	c.Service("REST API", rest)
	<-c.Start()
}

// preflight only warns. nmcli may come up after us, and requests
// report their own errors anyway.
func (t server) preflight(runner wifid.CommandRunner) {
	ctx := context.Background()

	tv, err := network_nmcli.ProbeToolVersion(ctx, runner, t.config.ScanTimeout)
	switch {
	case err != nil:
		t.log.WithError(err).Warn("Could not determine nmcli version")
	case !tv.Supported():
		t.log.Warnf("nmcli %s is older than supported, output may not parse", tv)
	default:
		t.log.Infof("Using nmcli %s", tv)
	}

	if t.config.Interface == "" {
		return
	}
	ok, err := network_wifi.InterfaceExists(ctx, t.config.Interface)
	if err != nil {
		t.log.WithError(err).Warn("Could not list network interfaces")
	} else if !ok {
		t.log.Warnf("Interface %s does not exist (yet)", t.config.Interface)
	}
}
