package main

import (
	"bistro/config"
	"bistro/helper"
	"bistro/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the bistro database schema",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.Up(config.Get())
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.Down(config.Get())
	},
}

var stepUpCmd = &cobra.Command{
	Use:   "step-up",
	Short: "Apply the next pending migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.StepUp(config.Get())
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Roll back every migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.Drop(config.Get())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied schema version",
	RunE: func(_ *cobra.Command, _ []string) error {
		version, dirty, err := helper.Version(config.Get())
		if err != nil {
			return err
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database schema status")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(stepUpCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Migration failed")
		os.Exit(1)
	}
}
