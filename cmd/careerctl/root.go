package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/config"
	"github.com/tuilachit/Careercompass/pkg/database"
	applogger "github.com/tuilachit/Careercompass/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "careerctl",
	Short:         "CareerCompass 运维工具",
	Long:          "CareerCompass 运维工具：执行 / 回滚数据库迁移，导入示例职业数据。",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "配置文件路径（默认 ./config/config.yaml，环境变量 CAREER_* 优先）")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// env 命令执行所需的公共依赖
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

// setup 加载配置、初始化日志并连接数据库
func setup(cmd *cobra.Command) (*env, func(), error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		logger.Sync()
	}
	return &env{cfg: cfg, logger: logger, db: db}, cleanup, nil
}
