package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "driftmaild",
	Short: "Disposable-mailbox server: receives mail over SMTP, serves it over HTTP",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
