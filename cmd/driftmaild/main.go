package main

import (
	"github.com/spf13/cobra"

	"github.com/driftmail/driftmail/cmd/driftmaild/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
