// cmd/main.go is the application entry point.
// It builds the hackhub command tree; serve wires together all layers and
// starts the HTTP server.
package main

import (
	"os"

	"github.com/Shivanand-hulikatti/hackhub/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("hackhub failed")
		os.Exit(1)
	}
}

// loader reads configuration once flags have been parsed.
type loader func() (*config.Config, error)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:   "hackhub",
		Short: "Hackathon listing and team registration service",
		Long: `HackHub lists hackathons, lets students register individually or as
teams, and gives organizers and admins the tools to run them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./hackhub.yaml)")

	load := func() (*config.Config, error) { return config.Load(v, configFile) }

	root.AddCommand(
		newServeCmd(v, load),
		newMigrateCmd(load),
		newSeedCmd(load),
		newTokenCmd(load),
	)
	return root
}
