package cmd

import (
	"context"
	"os"

	"github.com/dogeorg/wifid/cmd/wifid/utils"
	wifid "github.com/dogeorg/wifid/pkg"
	network_nmcli "github.com/dogeorg/wifid/pkg/system/network/nmcli"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List visible wifi networks as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rescan, _ := cmd.Flags().GetBool("rescan")

		var (
			networks []wifid.NetworkRecord
			err      error
		)
		if c, ok := remoteClient(cmd); ok {
			networks, err = c.Scan(rescan)
		} else {
			networks, err = localManager().Scan(context.Background(), rescan)
		}
		if err != nil {
			return err
		}

		if networks == nil {
			networks = []wifid.NetworkRecord{}
		}
		return utils.PrintJSON(os.Stdout, networks)
	},
}

func init() {
	scanCmd.Flags().Bool("rescan", false, "Ask NetworkManager for a fresh scan first")
	addRemoteFlag(scanCmd)
	rootCmd.AddCommand(scanCmd)
}

// localManager drives nmcli directly, without metrics.
func localManager() wifid.NetworkManager {
	runner := network_nmcli.NewExecRunner(config.ToolPath, log, nil)
	return network_nmcli.NewNetworkManager(config, runner, log)
}
