package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/services"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "Load a personas.json file; run after rooms so personas can be seated",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		personas, err := services.DecodePersonas(f)
		if err != nil {
			return err
		}

		env, err := openSeedEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		report, err := env.seeder.SeedPersonas(cmd.Context(), personas)
		if err != nil {
			return err
		}
		env.logger.Info("personas seeded",
			zap.Int("seated", report.Seated),
			zap.Int("skipped", report.Skipped),
			zap.Int("likes", report.Swipes),
			zap.String("file", path),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personasCmd)

	personasCmd.Flags().StringP("file", "f", "data/personas.json", "personas file")
}
