package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/homeyctl/internal/service"
)

var (
	listLocal   bool
	listNoCache bool
)

var homeysListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all Homeys linked to your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		directory, err := f.Directory()
		if err != nil {
			return err
		}

		log.Debug().Msg("Retrieving homeys...")
		hubs, err := directory.GetHomeys(cmd.Context(), service.GetHomeysOptions{
			Cache: !listNoCache,
			Local: listLocal,
		})
		if err != nil {
			return logError(err, "failed to list your homeys")
		}

		resolver, err := f.Resolver()
		if err != nil {
			return err
		}
		active, _ := resolver.Selection()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"", "ID", "Name", "State", "Reachability"})

		for _, hub := range hubs {
			marker := ""
			if active != nil && active.ID == hub.ID {
				marker = greenCheck
			}

			reach := faint("cloud relay")
			if hub.LocalAddress != "" {
				reach = "local @ " + hub.LocalAddress
			}

			t.AppendRow(table.Row{
				marker,
				faint(truncate(hub.ID, 26)),
				bold(hub.Name),
				service.ColorState(hub.State),
				reach,
			})
		}

		applyTableFormat(t)
		t.Render()
		return nil
	},
}

func init() {
	homeysCmd.AddCommand(homeysListCmd)

	homeysListCmd.Flags().BoolVar(&listLocal, "local", false, "Probe the local network for directly reachable Homeys")
	homeysListCmd.Flags().BoolVar(&listNoCache, "no-cache", false, "Force a fresh fetch from the cloud")
}
