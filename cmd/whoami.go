package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := f.Sessions()
		if err != nil {
			return err
		}
		user, err := sessions.Profile(cmd.Context())
		if err != nil {
			return logError(err, "failed to fetch your profile")
		}

		fmt.Printf("%s %s\n", bold(user.Fullname()), faint("("+user.ID()+")"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
