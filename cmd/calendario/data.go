package main

import (
	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Print the full document (config and eventos)",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := api.Data(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(doc)
	},
}
