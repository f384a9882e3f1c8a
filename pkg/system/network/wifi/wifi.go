package network_wifi

import (
	"context"
	"fmt"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/mdlayher/wifi"
	psnet "github.com/shirou/gopsutil/v4/net"
)

var _ wifid.InterfaceLister = &NL80211Lister{}

// NL80211Lister asks the kernel (over nl80211 generic netlink) which
// wireless adapters exist. It does not need NetworkManager.
type NL80211Lister struct{}

func NewInterfaceLister() NL80211Lister {
	return NL80211Lister{}
}

func (t NL80211Lister) WirelessInterfaces() ([]wifid.WirelessInterface, error) {
	wifiClient, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("could not init a wifi interface client: %w", err)
	}
	defer wifiClient.Close()

	wifiInterfaces, err := wifiClient.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("could not list wifi interfaces: %w", err)
	}

	return toWirelessInterfaces(wifiInterfaces), nil
}

func toWirelessInterfaces(in []*wifi.Interface) []wifid.WirelessInterface {
	out := []wifid.WirelessInterface{}
	for _, wifiInterface := range in {
		// P2P devices and the like show up without a netdev name.
		if wifiInterface == nil || wifiInterface.Name == "" {
			continue
		}

		hw := ""
		if wifiInterface.HardwareAddr != nil {
			hw = wifiInterface.HardwareAddr.String()
		}

		out = append(out, wifid.WirelessInterface{
			Name:         wifiInterface.Name,
			HardwareAddr: hw,
			PHY:          wifiInterface.PHY,
		})
	}
	return out
}

// InterfaceExists reports whether the host has a network interface
// called name, wireless or not.
func InterfaceExists(ctx context.Context, name string) (bool, error) {
	allInterfaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to fetch system interfaces: %w", err)
	}

	for _, iface := range allInterfaces {
		if iface.Name == name {
			return true, nil
		}
	}
	return false, nil
}
