package cmd

import (
	"os"

	"github.com/dogeorg/wifid/cmd/wifid/utils"
	wifid "github.com/dogeorg/wifid/pkg"
	network_wifi "github.com/dogeorg/wifid/pkg/system/network/wifi"
	"github.com/spf13/cobra"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List wireless interfaces as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			ifaces []wifid.WirelessInterface
			err    error
		)
		if c, ok := remoteClient(cmd); ok {
			ifaces, err = c.Interfaces()
		} else {
			ifaces, err = network_wifi.NewInterfaceLister().WirelessInterfaces()
		}
		if err != nil {
			return err
		}

		if ifaces == nil {
			ifaces = []wifid.WirelessInterface{}
		}
		return utils.PrintJSON(os.Stdout, ifaces)
	},
}

func init() {
	addRemoteFlag(interfacesCmd)
	rootCmd.AddCommand(interfacesCmd)
}
