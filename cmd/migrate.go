package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	config "kanban-today.com/kanban-today/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the task store schema up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		db, err := config.OpenDatabase(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", config.SchemaVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
