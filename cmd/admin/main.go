// Command admin runs maintenance tasks against the Campus Desk database.
package main

import (
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"campusdesk/app/config"
	"campusdesk/app/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "admin",
		Short:        "Campus Desk maintenance commands",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newAddUserCmd())
	return root
}

// openDB loads the configuration and connects; the caller closes the pool.
func openDB() (*sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if _, err := logger.Init(cfg.IsProduction()); err != nil {
		return nil, err
	}
	return config.InitDB(cfg)
}
