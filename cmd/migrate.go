package main

import (
	"fmt"

	"github.com/Abraxas-365/hiresight/migrations"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/spf13/cobra"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "List pending migrations without applying them")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logx.Sync()

	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if migrateDryRun {
		pending, err := migrations.Pending(ctx, db)
		if err != nil {
			return err
		}
		for _, name := range pending {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d pending migration(s)\n", len(pending))
		return nil
	}

	applied, err := migrations.Migrate(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", applied)
	return nil
}
