package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"campusdesk/app/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or inspect schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			switch action {
			case "up":
				return database.RunMigrations(db)
			case "down":
				return database.RollbackMigration(db)
			case "status":
				return database.MigrationStatus(db)
			}
			return fmt.Errorf("unknown migrate action %q", action)
		},
	}
}
