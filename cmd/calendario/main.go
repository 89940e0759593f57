// Command calendario is the calendar-management service and its CLI client.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lfmartins/calendario/internal/client"
	"github.com/lfmartins/calendario/internal/ui"
)

var (
	serverURL  string
	jsonOutput bool

	api *client.HTTPClient
)

func defaultServer() string {
	if s := os.Getenv("CALENDARIO_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:   "calendario",
	Short: "Calendar-management service and CLI client",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		api = client.NewHTTPClient(serverURL)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "server base URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(eventosCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError("error: ")+err.Error())
		os.Exit(1)
	}
}
