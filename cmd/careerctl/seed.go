package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/internal/repository"
	"github.com/tuilachit/Careercompass/internal/seed"
	"github.com/tuilachit/Careercompass/pkg/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "导入示例职业路径、测评与学习资源（按标题幂等）",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		migrate, _ := cmd.Flags().GetBool("migrate")

		// 先校验数据文件，避免无谓的数据库连接
		var (
			data *seed.Data
			err  error
		)
		if file != "" {
			data, err = seed.LoadFile(file)
		} else {
			data, err = seed.Default()
		}
		if err != nil {
			return err
		}

		e, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if migrate {
			sqlDB, err := e.db.DB()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(sqlDB, e.logger); err != nil {
				return err
			}
		}

		report, err := seed.NewSeeder(repository.NewRepository(e.db), e.logger).Run(cmd.Context(), data)
		if err != nil {
			return err
		}

		e.logger.Info("示例数据导入完成",
			zap.Int("career_paths_created", report.CareerPathsCreated),
			zap.Int("assessments_created", report.AssessmentsCreated),
			zap.Int("resources_created", report.ResourcesCreated),
		)
		fmt.Fprintf(cmd.OutOrStdout(),
			"职业路径: 新建 %d / 已存在 %d\n测评: 新建 %d / 已存在 %d\n学习资源: 新建 %d / 已存在 %d\n",
			report.CareerPathsCreated, report.CareerPathsSkipped,
			report.AssessmentsCreated, report.AssessmentsSkipped,
			report.ResourcesCreated, report.ResourcesSkipped,
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringP("file", "f", "", "自定义 YAML 数据文件（默认使用内置示例数据）")
	seedCmd.Flags().Bool("migrate", false, "导入前先执行数据库迁移")
}
