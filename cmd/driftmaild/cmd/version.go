package cmd

import (
	"strings"

	"github.com/coreos/go-semver/semver"
	"github.com/spf13/cobra"
)

// Version is stamped at build time via
// -ldflags "-X .../cmd.Version=v1.2.3".
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the driftmaild version",
	Run: func(cmd *cobra.Command, _ []string) {
		v, err := semver.NewVersion(strings.TrimPrefix(Version, "v"))
		if err != nil {
			// An unparsable stamp is still worth printing.
			cmd.Println(Version)
			return
		}
		cmd.Println(v.String())
	},
}
