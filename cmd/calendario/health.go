package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfmartins/calendario/internal/ui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the server is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.Health(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(ui.RenderOK("ok"))
		return nil
	},
}
