package cmd

import (
	"time"

	"github.com/dogeorg/wifid/pkg/client"
	"github.com/spf13/cobra"
)

const remoteTimeout = 30 * time.Second

// addRemoteFlag lets a command talk to a running wifid instead of
// calling nmcli itself.
func addRemoteFlag(cmd *cobra.Command) {
	cmd.Flags().String("remote", "", "Base URL of a running wifid, ie. http://dogebox.local:8000")
}

func remoteClient(cmd *cobra.Command) (client.Client, bool) {
	url, _ := cmd.Flags().GetString("remote")
	if url == "" {
		return client.Client{}, false
	}
	return client.New(url, remoteTimeout), true
}
