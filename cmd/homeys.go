package cmd

import (
	"github.com/spf13/cobra"
)

var homeysCmd = &cobra.Command{
	Use:     "homeys",
	Aliases: []string{"homey"},
	Short:   "Manage the Homeys linked to your account",
}

func init() {
	rootCmd.AddCommand(homeysCmd)
}
