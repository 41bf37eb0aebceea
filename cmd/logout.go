package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the active Homey",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := f.Sessions()
		if err != nil {
			return err
		}
		if err := sessions.Logout(cmd.Context()); err != nil {
			return logError(err, "failed to log out")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
