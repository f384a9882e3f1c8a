package network_nmcli

import (
	"context"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/sirupsen/logrus"
)

var _ wifid.NetworkManager = &NetworkManagerNmcli{}

type NetworkManagerNmcli struct {
	config wifid.ServerConfig
	runner wifid.CommandRunner
	log    logrus.FieldLogger
}

func NewNetworkManager(config wifid.ServerConfig, runner wifid.CommandRunner, log logrus.FieldLogger) NetworkManagerNmcli {
	return NetworkManagerNmcli{
		config: config,
		runner: runner,
		log:    log,
	}
}

func (t NetworkManagerNmcli) Scan(ctx context.Context, rescan bool) ([]wifid.NetworkRecord, error) {
	if rescan {
		// Best effort: nmcli refuses to rescan too often, in which case
		// the cached list is still worth returning.
		_, err := t.runner.Run(ctx, wifid.Invocation{
			Name:    "rescan",
			Args:    RescanArgs(t.config.Interface),
			Timeout: t.config.ScanTimeout,
		})
		if err != nil {
			t.log.WithError(err).Info("rescan failed, listing cached results")
		}
	}

	out, err := t.runner.Run(ctx, wifid.Invocation{
		Name:    "scan",
		Args:    ScanArgs(),
		Timeout: t.config.ScanTimeout,
	})
	if err != nil {
		return nil, err
	}

	networks := ParseNetworkList(out)
	t.log.WithField("count", len(networks)).Debug("scan complete")
	return networks, nil
}

func (t NetworkManagerNmcli) Connect(ctx context.Context, req wifid.ConnectRequest) (wifid.ConnectResult, error) {
	if req.Ssid == "" {
		return wifid.ConnectResult{}, wifid.ErrSSIDRequired
	}

	_, err := t.runner.Run(ctx, wifid.Invocation{
		Name:    "connect",
		Args:    ConnectArgs(req.Ssid, t.config.Interface, req.Password),
		Timeout: t.config.ConnectTimeout,
	})
	if err != nil {
		return wifid.ConnectResult{}, err
	}

	log := t.log.WithField("ssid", req.Ssid)
	log.Info("connected to wifi network")

	iface := t.resolveInterface(ctx, req.Ssid)
	var ip *string
	if iface != nil {
		ip = t.resolveAddress(ctx, *iface)
	}

	log.WithFields(logrus.Fields{
		"iface": deref(iface),
		"ip":    deref(ip),
	}).Debug("resolved connection details")

	return wifid.ConnectResult{OK: true, Iface: iface, IP: ip}, nil
}

// The pinned interface wins; otherwise ask nmcli which device picked up
// the connection. Failures here only cost us the detail, not the connect.
func (t NetworkManagerNmcli) resolveInterface(ctx context.Context, ssid string) *string {
	if t.config.Interface != "" {
		iface := t.config.Interface
		return &iface
	}

	out, err := t.runner.Run(ctx, wifid.Invocation{
		Name:    "active-connections",
		Args:    ActiveConnectionsArgs(),
		Timeout: t.config.ScanTimeout,
	})
	if err != nil {
		t.log.WithError(err).Warn("could not list active connections")
		return nil
	}
	return FindActiveDevice(out, ssid)
}

func (t NetworkManagerNmcli) resolveAddress(ctx context.Context, iface string) *string {
	out, err := t.runner.Run(ctx, wifid.Invocation{
		Name:    "device-show",
		Args:    DeviceAddressArgs(iface),
		Timeout: t.config.ScanTimeout,
	})
	if err != nil {
		t.log.WithError(err).WithField("iface", iface).Warn("could not read interface address")
		return nil
	}
	return ParseIPv4Address(out)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
