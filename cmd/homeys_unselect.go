package cmd

import (
	"github.com/spf13/cobra"
)

var homeysUnselectCmd = &cobra.Command{
	Use:   "unselect",
	Short: "Forget the active Homey",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := f.Resolver()
		if err != nil {
			return err
		}
		if err := resolver.Unselect(); err != nil {
			return logError(err, "failed to clear the active homey")
		}
		return nil
	},
}

func init() {
	homeysCmd.AddCommand(homeysUnselectCmd)
}
