package cmd

import (
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with your Homey account",
	Long: `Logs in against the Athom cloud using an account token.
Grab the token from your Homey dashboard and paste it when asked; it is
stored locally so future invocations stay authenticated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := f.Sessions()
		if err != nil {
			return err
		}
		return sessions.Login(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
