package cmd

import (
	"context"
	"os"

	"github.com/dogeorg/wifid/cmd/wifid/utils"
	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect <ssid>",
	Short: "Join a wifi network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		req := wifid.ConnectRequest{Ssid: args[0], Password: password}

		var (
			res wifid.ConnectResult
			err error
		)
		if c, ok := remoteClient(cmd); ok {
			res, err = c.Connect(req)
		} else {
			res, err = localManager().Connect(context.Background(), req)
		}
		if err != nil {
			return err
		}
		return utils.PrintJSON(os.Stdout, res)
	},
}

func init() {
	connectCmd.Flags().String("password", "", "Network passphrase, omit for open networks")
	addRemoteFlag(connectCmd)
	rootCmd.AddCommand(connectCmd)
}
