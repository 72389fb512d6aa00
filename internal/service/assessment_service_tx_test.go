package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tuilachit/Careercompass/internal/model"
	"github.com/tuilachit/Careercompass/internal/repository"
)

// 事务语义依赖真实数据库，此处使用内存 SQLite

func setupSQLiteRepo(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("打开 SQLite 失败: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.User{},
		&model.CareerPath{},
		&model.CareerAssessment{},
		&model.AssessmentResult{},
	); err != nil {
		t.Fatalf("AutoMigrate 失败: %v", err)
	}

	repo := repository.NewRepository(db)
	ctx := context.Background()
	for i := 1; i <= 6; i++ {
		if err := repo.CareerPath.Create(ctx, &model.CareerPath{
			Title:           fmt.Sprintf("Career %02d", i),
			Description:     "d",
			Category:        "technology",
			EducationLevel:  "bachelors",
			RequiredSkills:  datatypes.JSONSlice[string]{},
			GrowthOutlook:   "high",
			WorkEnvironment: "office",
			IsActive:        true,
		}); err != nil {
			t.Fatalf("创建职业路径失败: %v", err)
		}
	}
	if err := repo.Assessment.Create(ctx, &model.CareerAssessment{
		Title:        "Career Interest Assessment",
		Description:  "d",
		Instructions: "i",
		Questions: datatypes.JSONSlice[model.Question]{
			{ID: 1, Question: "What interests you?", Type: model.QuestionSingleSelect, Options: []string{"Technology"}},
		},
		IsActive: true,
	}); err != nil {
		t.Fatalf("创建测评失败: %v", err)
	}
	return repo, db
}

// failResultUpdates 让 assessment_results 上的 UPDATE 全部失败
func failResultUpdates(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_result_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "assessment_results" {
			_ = tx.AddError(errors.New("injected update failure"))
		}
	})
	if err != nil {
		t.Fatalf("注册回调失败: %v", err)
	}
}

func countResults(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.AssessmentResult{}).Count(&n).Error; err != nil {
		t.Fatalf("统计结果失败: %v", err)
	}
	return n
}

func techAnswers() []model.Answer {
	return []model.Answer{{QuestionID: 1, Selected: []string{"Software Developer - Technology role"}}}
}

func TestAssessmentService_AtomicSubmit_Success(t *testing.T) {
	repo, db := setupSQLiteRepo(t)
	cfg := testConfig()
	cfg.Assessment.AtomicSubmit = true
	svc := NewAssessmentService(cfg, repo, testLogger())

	resp, err := svc.Submit(context.Background(), SubmitInput{AssessmentID: 1, Answers: techAnswers(), SessionID: strPtr("s")})
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	if len(resp.RecommendedCareers) != 5 {
		t.Errorf("期望推荐 5 个，实际: %d", len(resp.RecommendedCareers))
	}

	var stored model.AssessmentResult
	if err := db.First(&stored, resp.ID).Error; err != nil {
		t.Fatalf("查询结果失败: %v", err)
	}
	if len(stored.RecommendedCareers) != 5 {
		t.Errorf("期望持久化 5 个推荐，实际: %v", stored.RecommendedCareers)
	}
}

func TestAssessmentService_AtomicSubmit_RollsBackOnAttachFailure(t *testing.T) {
	repo, db := setupSQLiteRepo(t)
	failResultUpdates(t, db)

	cfg := testConfig()
	cfg.Assessment.AtomicSubmit = true
	svc := NewAssessmentService(cfg, repo, testLogger())

	if _, err := svc.Submit(context.Background(), SubmitInput{AssessmentID: 1, Answers: techAnswers()}); err == nil {
		t.Fatal("期望写回失败时返回错误")
	}
	if n := countResults(t, db); n != 0 {
		t.Errorf("期望事务回滚后无结果，实际: %d", n)
	}
}

func TestAssessmentService_TwoPhaseSubmit_KeepsResultOnAttachFailure(t *testing.T) {
	repo, db := setupSQLiteRepo(t)
	failResultUpdates(t, db)

	svc := NewAssessmentService(testConfig(), repo, testLogger())

	if _, err := svc.Submit(context.Background(), SubmitInput{AssessmentID: 1, Answers: techAnswers()}); err == nil {
		t.Fatal("期望写回失败时返回错误")
	}
	if n := countResults(t, db); n != 1 {
		t.Fatalf("期望保留 1 条结果，实际: %d", n)
	}

	var stored model.AssessmentResult
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("查询结果失败: %v", err)
	}
	if len(stored.RecommendedCareers) != 0 {
		t.Errorf("期望推荐为空，实际: %v", stored.RecommendedCareers)
	}
}
