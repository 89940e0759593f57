package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lfmartins/calendario/internal/events"
	"github.com/lfmartins/calendario/internal/ui"
)

var watchNATSURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow mutation events from NATS as they happen",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := watchNATSURL
		if url == "" {
			url = os.Getenv("CALENDARIO_NATS_URL")
		}
		if url == "" {
			return fmt.Errorf("no NATS URL; set --nats-url or CALENDARIO_NATS_URL")
		}

		sub, err := events.NewNATSSubscriber(url)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(events.TopicAll)
		if err != nil {
			return err
		}
		defer cancel()

		fmt.Println(ui.RenderMuted("watching " + events.TopicAll + " (ctrl-c to stop)"))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				fmt.Println(string(msg))
			case <-sigCh:
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchNATSURL, "nats-url", "", "NATS server URL")
}
