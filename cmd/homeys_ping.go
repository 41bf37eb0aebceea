package cmd

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var homeysPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the connection to the active Homey",
	Long: `Resolves the active Homey and pings it over whichever path the
resolver picked: the local network when discovery found the Homey
nearby, the cloud relay otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := f.Resolver()
		if err != nil {
			return err
		}

		handle, err := resolver.GetActiveHomey(cmd.Context())
		if err != nil {
			return logError(err, "failed to resolve your active homey")
		}

		transport := "cloud relay"
		if strings.HasPrefix(handle.BaseURL, "http://") {
			transport = "local network"
		}

		req, err := http.NewRequestWithContext(cmd.Context(), "GET",
			handle.BaseURL+"/api/manager/webserver/ping", nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+handle.Token)

		client := &http.Client{Timeout: 5 * time.Second}
		start := time.Now()
		resp, err := client.Do(req)
		if err != nil {
			return logError(err, "%s did not answer via %s", bold(handle.Name), transport)
		}
		defer func(body io.ReadCloser) {
			_ = body.Close()
		}(resp.Body)

		if resp.StatusCode != http.StatusOK {
			return logError(nil, "%s answered with status %d via %s", bold(handle.Name), resp.StatusCode, transport)
		}

		logSuccess("%s answered in %s via %s (%s)",
			bold(handle.Name),
			time.Since(start).Round(time.Millisecond),
			transport,
			faint(handle.BaseURL))
		return nil
	},
}

func init() {
	homeysCmd.AddCommand(homeysPingCmd)
}
