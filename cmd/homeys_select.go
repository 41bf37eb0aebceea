package cmd

import (
	"github.com/spf13/cobra"

	"github.com/darmiel/homeyctl/internal/service"
)

var (
	selectID     string
	selectName   string
	selectFilter string
)

var homeysSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Choose the Homey to work on",
	Long: `Marks one of your Homeys as the active one. All other commands target
the active Homey. Without --id or --name an interactive list is shown,
by default limited to Homeys that are online.`,
	Example: `  # pick interactively
  homeyctl homeys select

  # pick by name or id directly
  homeyctl homeys select --name "Home"
  homeyctl homeys select --id 5f1c8a...

  # offer everything reachable locally, online or not
  homeyctl homeys select --filter 'Local or State startsWith "online"'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := f.Resolver()
		if err != nil {
			return err
		}

		err = resolver.Select(cmd.Context(), service.SelectOptions{
			ID:     selectID,
			Name:   selectName,
			Filter: selectFilter,
		})
		if err != nil {
			return logError(err, "failed to select a homey")
		}
		return nil
	},
}

func init() {
	homeysCmd.AddCommand(homeysSelectCmd)

	homeysSelectCmd.Flags().StringVar(&selectID, "id", "", "Select by Homey ID")
	homeysSelectCmd.Flags().StringVar(&selectName, "name", "", "Select by display name (first match wins)")
	homeysSelectCmd.Flags().StringVar(&selectFilter, "filter", "", "Expression narrowing the interactive list (fields: ID, Name, State, Local)")
	homeysSelectCmd.MarkFlagsMutuallyExclusive("id", "name")
}
