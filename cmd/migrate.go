package main

import (
	"github.com/Shivanand-hulikatti/hackhub/internal/logging"
	"github.com/spf13/cobra"
)

func newMigrateCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables (postgres) or indexes (mongo) and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger, err := logging.Setup(cfg.Log)
			if err != nil {
				return err
			}

			st, err := openStores(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			st.close()
			logger.Info().Str("driver", cfg.Database.Driver).Msg("storage schema is up to date")
			return nil
		},
	}
}
