package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfmartins/calendario/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or replace the calendar configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current configuration object",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := api.Config(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <json>",
	Short: "Replace the configuration object wholesale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg map[string]any
		if err := json.Unmarshal([]byte(args[0]), &cfg); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
		if err := api.SetConfig(cmd.Context(), cfg); err != nil {
			return err
		}
		fmt.Println(ui.RenderOK("Configuração atualizada"))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
