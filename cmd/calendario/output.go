package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/lfmartins/calendario/internal/model"
	"github.com/lfmartins/calendario/internal/ui"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printEvento renders one event, id first, remaining keys sorted.
func printEvento(e model.Event) {
	fmt.Printf("%s %d\n", ui.RenderAccent("evento"), e.ID())

	keys := make([]string, 0, len(e))
	for k := range e {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %v\n", ui.RenderMuted(k), e[k])
	}
}

// printEventos renders a list of events.
func printEventos(eventos []model.Event) {
	if len(eventos) == 0 {
		fmt.Println(ui.RenderMuted("nenhum evento"))
		return
	}
	for _, e := range eventos {
		printEvento(e)
	}
}
