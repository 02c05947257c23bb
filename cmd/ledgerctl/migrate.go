package main

import (
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/repository/postgres"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Bring the schema up to date. With --down every migration is rolled back,
which drops the ledger tables.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("down", false, "roll back all migrations")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	down, _ := cmd.Flags().GetBool("down")

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	direction := postgres.MigrateUp
	if down {
		direction = postgres.MigrateDown
	}

	if err := postgres.RunMigrations(rt.pool, direction); err != nil {
		return err
	}
	log.Info().Bool("down", down).Msg("Migrations finished")
	return nil
}
