package cmd

import (
	"fmt"
	"os"

	"github.com/dogeorg/wifid/cmd/wifid/utils"
	"github.com/dogeorg/wifid/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wifid version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		info := version.GetRelease()
		if asJSON {
			return utils.PrintJSON(os.Stdout, info)
		}

		dirty := ""
		if info.Git.Dirty {
			dirty = " (dirty)"
		}
		fmt.Printf("wifid %s %s%s\n", info.Release, info.Git.Commit, dirty)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Print as JSON")
	rootCmd.AddCommand(versionCmd)
}
