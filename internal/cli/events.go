package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/events"
	"catalog/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	amqp "github.com/streadway/amqp"
)

var (
	eventsQueue    string
	eventsBindings []string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print catalog events as they are published",
	Long:  "Binds a queue to the events exchange and logs every catalog event it receives",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if cfg.RabbitMQURL == "" {
			return fmt.Errorf("RABBITMQ_URL is required")
		}
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.EventsExchange, Logger: log})
		if err != nil {
			return err
		}
		defer mq.Close()

		done, err := mq.ConsumeEvents(cfg.EventsExchange, eventsQueue, eventsBindings, logEvent(log))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		select {
		case <-ctx.Done():
		case <-done:
			return fmt.Errorf("event stream closed by broker")
		}
		return nil
	},
}

// logEvent decodes a delivery and logs it. Undecodable messages are rejected.
func logEvent(log zerolog.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		ev, err := events.Decode(msg.Body)
		if err != nil {
			return err
		}
		log.Info().
			Str("event", ev.Type).
			Str("routing_key", msg.RoutingKey).
			Time("occurred_at", ev.OccurredAt).
			RawJSON("data", ev.Data).
			Msg("catalog event")
		return nil
	}
}

func init() {
	eventsCmd.Flags().StringVar(&eventsQueue, "queue", "catalog_events_log", "queue to consume from")
	eventsCmd.Flags().StringSliceVar(&eventsBindings, "bind", []string{"category.*", "group_category.*", "product.*"}, "routing keys to bind")
	rootCmd.AddCommand(eventsCmd)
}
