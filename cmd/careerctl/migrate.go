package main

import (
	"github.com/spf13/cobra"

	"github.com/tuilachit/Careercompass/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "数据库迁移",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "应用全部未执行的迁移",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		sqlDB, err := e.db.DB()
		if err != nil {
			return err
		}
		return database.RunMigrations(sqlDB, e.logger)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "回滚迁移（默认 1 步）",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")

		e, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		sqlDB, err := e.db.DB()
		if err != nil {
			return err
		}
		return database.RollbackMigrations(sqlDB, steps, e.logger)
	},
}

func init() {
	migrateDownCmd.Flags().Int("steps", 1, "回滚的版本数")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
