package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lfmartins/calendario/internal/ui"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image to the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := api.Upload(cmd.Context(), filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(res)
		}
		fmt.Println(ui.RenderOK("enviado"))
		fmt.Printf("  %s: %s\n", ui.RenderMuted("filename"), res.Filename)
		fmt.Printf("  %s: %s\n", ui.RenderMuted("url"), res.URL)
		return nil
	},
}
