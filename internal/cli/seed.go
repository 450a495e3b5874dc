package cli

import (
	"catalog/internal/app"
	"catalog/internal/seed"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample categories, group categories and products",
	Long:  "Creates the entries of a YAML seed file, or the built-in sample catalog when no file is given. Existing names are skipped.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		data := seed.Default()
		if seedFile != "" {
			if data, err = seed.Load(seedFile); err != nil {
				return err
			}
		}
		if cfg.DatabaseDriver == "memory" {
			log.Warn().Msg("seeding in-memory storage has no lasting effect")
		}

		a, err := app.New(cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := seed.Run(cmd.Context(), a.Services(), data, log)
		if err != nil {
			return err
		}
		log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("seeding completed")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file")
	rootCmd.AddCommand(seedCmd)
}
