package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/app"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Starts the catalog API and stops gracefully on SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		a, err := app.New(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				log.Error().Err(err).Msg("failed to release resources")
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := a.Run(ctx); err != nil {
			return err
		}
		log.Info().Msg("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
