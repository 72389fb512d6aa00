// Package seed 示例数据导入（职业路径 / 测评 / 学习资源），按 title 幂等
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/internal/model"
	"github.com/tuilachit/Careercompass/internal/repository"
)

//go:embed data/sample.yaml
var sampleYAML []byte

// ── 数据文件结构 ──

// Data 种子数据文件
type Data struct {
	CareerPaths []CareerPathSeed `yaml:"career_paths"`
	Assessments []AssessmentSeed `yaml:"assessments"`
	Resources   []ResourceSeed   `yaml:"resources"`
}

// CareerPathSeed 职业路径
type CareerPathSeed struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Category        string   `yaml:"category"`
	SalaryRangeMin  *int     `yaml:"salary_range_min"`
	SalaryRangeMax  *int     `yaml:"salary_range_max"`
	EducationLevel  string   `yaml:"education_level"`
	RequiredSkills  []string `yaml:"required_skills"`
	GrowthOutlook   string   `yaml:"growth_outlook"`
	WorkEnvironment string   `yaml:"work_environment"`
	IsActive        *bool    `yaml:"is_active"`
}

// QuestionSeed 测评题目，type 兼容 multiple_choice / multiple_select
type QuestionSeed struct {
	ID       int      `yaml:"id"`
	Question string   `yaml:"question"`
	Type     string   `yaml:"type"`
	Options  []string `yaml:"options"`
}

// AssessmentSeed 职业测评
type AssessmentSeed struct {
	Title        string         `yaml:"title"`
	Description  string         `yaml:"description"`
	Instructions string         `yaml:"instructions"`
	Questions    []QuestionSeed `yaml:"questions"`
	IsActive     *bool          `yaml:"is_active"`
}

// ResourceSeed 学习资源
type ResourceSeed struct {
	Title           string   `yaml:"title"`
	Content         string   `yaml:"content"`
	ResourceType    string   `yaml:"resource_type"`
	Category        string   `yaml:"category"`
	DifficultyLevel string   `yaml:"difficulty_level"`
	EstimatedTime   *int     `yaml:"estimated_time"`
	Tags            []string `yaml:"tags"`
	IsFeatured      bool     `yaml:"is_featured"`
	IsActive        *bool    `yaml:"is_active"`
}

// Report 导入统计
type Report struct {
	CareerPathsCreated int
	CareerPathsSkipped int
	AssessmentsCreated int
	AssessmentsSkipped int
	ResourcesCreated   int
	ResourcesSkipped   int
}

// ── 加载 ──

// Default 内置示例数据
func Default() (*Data, error) {
	return Load(bytes.NewReader(sampleYAML))
}

// LoadFile 从 YAML 文件加载
func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开种子文件失败: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load 解析并校验种子数据，未知字段视为错误
func Load(r io.Reader) (*Data, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data Data
	if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("解析种子文件失败: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Validate 校验枚举取值与必填项，返回汇总后的全部问题
func (d *Data) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	for i, p := range d.CareerPaths {
		where := fmt.Sprintf("career_paths[%d]", i)
		if strings.TrimSpace(p.Title) == "" {
			add("%s.title 不能为空", where)
		}
		if !model.IsOneOf(p.Category, model.CareerCategories) {
			add("%s.category 非法: %q", where, p.Category)
		}
		if !model.IsOneOf(p.EducationLevel, model.EducationLevels) {
			add("%s.education_level 非法: %q", where, p.EducationLevel)
		}
		if !model.IsOneOf(p.GrowthOutlook, model.GrowthOutlooks) {
			add("%s.growth_outlook 非法: %q", where, p.GrowthOutlook)
		}
		if !model.IsOneOf(p.WorkEnvironment, model.WorkEnvironments) {
			add("%s.work_environment 非法: %q", where, p.WorkEnvironment)
		}
		if p.SalaryRangeMin != nil && p.SalaryRangeMax != nil && *p.SalaryRangeMin > *p.SalaryRangeMax {
			add("%s 薪资下限高于上限", where)
		}
	}

	for i, a := range d.Assessments {
		where := fmt.Sprintf("assessments[%d]", i)
		if strings.TrimSpace(a.Title) == "" {
			add("%s.title 不能为空", where)
		}
		seen := make(map[int]bool, len(a.Questions))
		for j, q := range a.Questions {
			if seen[q.ID] {
				add("%s.questions[%d].id 重复: %d", where, j, q.ID)
			}
			seen[q.ID] = true
			if _, ok := model.NormalizeQuestionType(q.Type); !ok {
				add("%s.questions[%d].type 非法: %q", where, j, q.Type)
			}
		}
	}

	for i, r := range d.Resources {
		where := fmt.Sprintf("resources[%d]", i)
		if strings.TrimSpace(r.Title) == "" {
			add("%s.title 不能为空", where)
		}
		if !model.IsOneOf(r.ResourceType, model.ResourceTypes) {
			add("%s.resource_type 非法: %q", where, r.ResourceType)
		}
		if !model.IsOneOf(r.Category, model.ResourceCategories) {
			add("%s.category 非法: %q", where, r.Category)
		}
		if !model.IsOneOf(r.DifficultyLevel, model.DifficultyLevels) {
			add("%s.difficulty_level 非法: %q", where, r.DifficultyLevel)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("种子数据校验失败:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// ── 导入 ──

// Seeder 将种子数据写入数据库
type Seeder struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSeeder 创建 Seeder
func NewSeeder(repo *repository.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

// Run 在单个事务内按 title 执行 get-or-create，重复执行不会产生重复记录
func (s *Seeder) Run(ctx context.Context, data *Data) (*Report, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("开启事务失败: %w", err)
	}
	repo := s.repo.WithTx(tx)

	report, err := s.run(ctx, repo, data)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, fmt.Errorf("提交事务失败: %w", err)
		}
	}
	return report, nil
}

func (s *Seeder) run(ctx context.Context, repo *repository.Repository, data *Data) (*Report, error) {
	report := &Report{}

	for _, p := range data.CareerPaths {
		_, err := repo.CareerPath.GetByTitle(ctx, p.Title)
		switch {
		case err == nil:
			report.CareerPathsSkipped++
			s.logger.Info("职业路径已存在", zap.String("title", p.Title))
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("查询职业路径 %q 失败: %w", p.Title, err)
		}

		path := &model.CareerPath{
			Title:           p.Title,
			Description:     p.Description,
			Category:        p.Category,
			SalaryRangeMin:  p.SalaryRangeMin,
			SalaryRangeMax:  p.SalaryRangeMax,
			EducationLevel:  p.EducationLevel,
			RequiredSkills:  datatypes.JSONSlice[string](nonNil(p.RequiredSkills)),
			GrowthOutlook:   p.GrowthOutlook,
			WorkEnvironment: p.WorkEnvironment,
			IsActive:        boolOr(p.IsActive, true),
		}
		if err := repo.CareerPath.Create(ctx, path); err != nil {
			return nil, fmt.Errorf("创建职业路径 %q 失败: %w", p.Title, err)
		}
		report.CareerPathsCreated++
		s.logger.Info("创建职业路径", zap.String("title", p.Title), zap.Uint("id", path.ID))
	}

	for _, a := range data.Assessments {
		_, err := repo.Assessment.GetByTitle(ctx, a.Title)
		switch {
		case err == nil:
			report.AssessmentsSkipped++
			s.logger.Info("测评已存在", zap.String("title", a.Title))
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("查询测评 %q 失败: %w", a.Title, err)
		}

		questions := make([]model.Question, 0, len(a.Questions))
		for _, q := range a.Questions {
			qt, _ := model.NormalizeQuestionType(q.Type)
			questions = append(questions, model.Question{
				ID:       q.ID,
				Question: q.Question,
				Type:     qt,
				Options:  nonNil(q.Options),
			})
		}
		assessment := &model.CareerAssessment{
			Title:        a.Title,
			Description:  a.Description,
			Instructions: a.Instructions,
			Questions:    datatypes.JSONSlice[model.Question](questions),
			IsActive:     boolOr(a.IsActive, true),
		}
		if err := repo.Assessment.Create(ctx, assessment); err != nil {
			return nil, fmt.Errorf("创建测评 %q 失败: %w", a.Title, err)
		}
		report.AssessmentsCreated++
		s.logger.Info("创建测评", zap.String("title", a.Title), zap.Int("questions", len(questions)))
	}

	for _, r := range data.Resources {
		_, err := repo.Resource.GetByTitle(ctx, r.Title)
		switch {
		case err == nil:
			report.ResourcesSkipped++
			s.logger.Info("学习资源已存在", zap.String("title", r.Title))
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("查询学习资源 %q 失败: %w", r.Title, err)
		}

		resource := &model.CareerResource{
			Title:           r.Title,
			Content:         r.Content,
			ResourceType:    r.ResourceType,
			Category:        r.Category,
			DifficultyLevel: r.DifficultyLevel,
			EstimatedTime:   r.EstimatedTime,
			Tags:            datatypes.JSONSlice[string](nonNil(r.Tags)),
			IsFeatured:      r.IsFeatured,
			IsActive:        boolOr(r.IsActive, true),
		}
		if err := repo.Resource.Create(ctx, resource); err != nil {
			return nil, fmt.Errorf("创建学习资源 %q 失败: %w", r.Title, err)
		}
		report.ResourcesCreated++
		s.logger.Info("创建学习资源", zap.String("title", r.Title))
	}

	return report, nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
