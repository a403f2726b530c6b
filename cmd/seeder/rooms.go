package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/services"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Load a rooms.json file (rooms with embedded occupants)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		rooms, err := services.DecodeRooms(f)
		if err != nil {
			return err
		}

		env, err := openSeedEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		n, err := env.seeder.SeedRooms(cmd.Context(), rooms)
		if err != nil {
			return err
		}
		env.logger.Info("rooms seeded", zap.Int("rooms", n), zap.String("file", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roomsCmd)

	roomsCmd.Flags().StringP("file", "f", "data/rooms.json", "rooms file")
}
