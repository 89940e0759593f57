package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lfmartins/calendario/internal/model"
	"github.com/lfmartins/calendario/internal/ui"
)

var eventoData string

var eventosCmd = &cobra.Command{
	Use:   "eventos",
	Short: "Manage calendar events",
}

var eventosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events in stored order",
	RunE: func(cmd *cobra.Command, args []string) error {
		eventos, err := api.ListEventos(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(eventos)
		}
		printEventos(eventos)
		return nil
	},
}

var eventosCreateCmd = &cobra.Command{
	Use:   "create [campo=valor ...]",
	Short: "Create an event; the id is assigned by the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := eventFields(args)
		if err != nil {
			return err
		}
		evento, err := api.CreateEvento(cmd.Context(), fields)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(evento)
		}
		fmt.Println(ui.RenderOK("criado"))
		printEvento(evento)
		return nil
	},
}

var eventosUpdateCmd = &cobra.Command{
	Use:   "update <id> [campo=valor ...]",
	Short: "Replace an event's fields wholesale (the id is preserved)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		fields, err := eventFields(args[1:])
		if err != nil {
			return err
		}
		evento, err := api.UpdateEvento(cmd.Context(), id, fields)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(evento)
		}
		fmt.Println(ui.RenderOK("atualizado"))
		printEvento(evento)
		return nil
	},
}

var eventosDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event (idempotent)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		if err := api.DeleteEvento(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println(ui.RenderOK("Evento deletado"))
		return nil
	},
}

// eventFields builds an event body from --data JSON or campo=valor args.
func eventFields(args []string) (model.Event, error) {
	fields := model.Event{}
	if eventoData != "" {
		if err := json.Unmarshal([]byte(eventoData), &fields); err != nil {
			return nil, fmt.Errorf("--data: %w", err)
		}
	}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected campo=valor, got %q", arg)
		}
		fields[k] = v
	}
	return fields, nil
}

func init() {
	eventosCreateCmd.Flags().StringVar(&eventoData, "data", "", "raw JSON event body")
	eventosUpdateCmd.Flags().StringVar(&eventoData, "data", "", "raw JSON event body")

	eventosCmd.AddCommand(eventosListCmd)
	eventosCmd.AddCommand(eventosCreateCmd)
	eventosCmd.AddCommand(eventosUpdateCmd)
	eventosCmd.AddCommand(eventosDeleteCmd)
}
