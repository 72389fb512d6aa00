package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/config"
	"github.com/tuilachit/Careercompass/internal/dto"
	"github.com/tuilachit/Careercompass/internal/model"
	"github.com/tuilachit/Careercompass/internal/repository"
	"github.com/tuilachit/Careercompass/pkg/tracing"
)

// ── 测评模块业务错误 ──

var (
	ErrAssessmentNotFound = errors.New("测评不存在或已停用")
	ErrInvalidAnswers     = errors.New("作答数据无效")
	ErrResultNotFound     = errors.New("测评结果不存在")
)

// SubmitInput 一次测评提交
// UserID 与 SessionID 均可为空：两者皆空时结果无法再被检索
type SubmitInput struct {
	AssessmentID uint
	Answers      []model.Answer
	SessionID    *string
	UserID       *string
}

// AssessmentService 测评业务接口
type AssessmentService interface {
	List(ctx context.Context) ([]dto.AssessmentResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.AssessmentResponse, error)
	// Submit 校验作答、持久化结果并写回推荐职业
	Submit(ctx context.Context, in SubmitInput) (*dto.AssessmentResultResponse, error)
	ListResults(ctx context.Context, scope repository.ResultScope, req *dto.PaginationRequest) ([]dto.AssessmentResultResponse, int64, error)
	GetResult(ctx context.Context, id uint, scope repository.ResultScope) (*dto.AssessmentResultResponse, error)
}

type assessmentService struct {
	repo         *repository.Repository
	logger       *zap.Logger
	topN         int
	atomicSubmit bool
}

// NewAssessmentService 创建 AssessmentService 实例
func NewAssessmentService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AssessmentService {
	topN := cfg.Recommendation.TopN
	if topN <= 0 {
		topN = 5
	}
	return &assessmentService{
		repo:         repo,
		logger:       logger,
		topN:         topN,
		atomicSubmit: cfg.Assessment.AtomicSubmit,
	}
}

// ────────────────────── List / GetByID ──────────────────────

func (s *assessmentService) List(ctx context.Context) ([]dto.AssessmentResponse, error) {
	list, err := s.repo.Assessment.ListActive(ctx)
	if err != nil {
		s.logger.Error("列出测评失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssessmentResponse, 0, len(list))
	for i := range list {
		result = append(result, toAssessmentResponse(&list[i]))
	}
	return result, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id uint) (*dto.AssessmentResponse, error) {
	a, err := s.repo.Assessment.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		s.logger.Error("查询测评失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toAssessmentResponse(a)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════
// Submit — 测评提交
// ═══════════════════════════════════════════════════════════
//
// 流程：
//  1. 校验测评存在且在用
//  2. 校验作答结构（题目 ID 存在、单选至多一项；选项内容不校验）
//  3. 创建结果（推荐为空）→ 读取在架职业路径 → 打分 → 写回推荐
//
// atomicSubmit=false 时两次写入相互独立，第二次失败会留下推荐为空的结果；
// atomicSubmit=true 时两次写入处于同一事务

func (s *assessmentService) Submit(ctx context.Context, in SubmitInput) (*dto.AssessmentResultResponse, error) {
	ctx, span := tracing.Tracer("careercompass/service").Start(ctx, "assessment.submit")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("assessment.id", int64(in.AssessmentID)),
		attribute.Int("assessment.answers", len(in.Answers)),
		attribute.Bool("assessment.atomic", s.atomicSubmit),
		attribute.Bool("assessment.authenticated", in.UserID != nil),
	)

	result, err := s.submit(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("assessment.recommended", len(result.RecommendedCareers)))

	resp := toResultResponse(result)
	return &resp, nil
}

func (s *assessmentService) submit(ctx context.Context, in SubmitInput) (*model.AssessmentResult, error) {
	// 1. 测评存在且在用
	assessment, err := s.repo.Assessment.GetActiveByID(ctx, in.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, AssessmentFieldError(in.AssessmentID)
		}
		s.logger.Error("查询测评失败", zap.Uint("assessment_id", in.AssessmentID), zap.Error(err))
		return nil, err
	}

	// 2. 作答结构校验
	if fe := validateAnswers(assessment, in.Answers); fe != nil {
		return nil, fe
	}

	// 3. 构造结果
	result := &model.AssessmentResult{
		UserID:             normalizeOptional(in.UserID),
		AssessmentID:       assessment.ID,
		Answers:            normalizeAnswers(in.Answers),
		RecommendedCareers: datatypes.JSONSlice[uint]{},
		SessionID:          normalizeOptional(in.SessionID),
		CompletedAt:        time.Now().UTC(),
	}

	if s.atomicSubmit {
		err = s.persistAtomic(ctx, result)
	} else {
		err = s.persistTwoPhase(ctx, result)
	}
	if err != nil {
		return nil, err
	}

	result.Assessment = assessment
	if result.UserID != nil {
		if user, uerr := s.repo.User.GetByID(ctx, *result.UserID); uerr == nil {
			result.User = user
		} else {
			s.logger.Warn("查询提交用户失败", zap.String("user_id", *result.UserID), zap.Error(uerr))
		}
	}

	s.logger.Info("测评提交完成",
		zap.Uint("result_id", result.ID),
		zap.Uint("assessment_id", result.AssessmentID),
		zap.Int("recommended", len(result.RecommendedCareers)),
	)
	return result, nil
}

// persistTwoPhase 两段式写入：结果先落库，推荐随后单独写回
func (s *assessmentService) persistTwoPhase(ctx context.Context, result *model.AssessmentResult) error {
	if err := s.repo.AssessmentResult.Create(ctx, result); err != nil {
		s.logger.Error("创建测评结果失败", zap.Error(err))
		return err
	}
	if err := s.attachRecommendations(ctx, s.repo, result); err != nil {
		s.logger.Error("写回推荐失败，结果已保存但推荐为空",
			zap.Uint("result_id", result.ID), zap.Error(err))
		return err
	}
	return nil
}

// persistAtomic 事务写入：任一步失败则不保留结果
func (s *assessmentService) persistAtomic(ctx context.Context, result *model.AssessmentResult) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.AssessmentResult.Create(ctx, result); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建测评结果失败", zap.Error(err))
		return err
	}

	if err := s.attachRecommendations(ctx, txRepo, result); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写回推荐失败，事务已回滚", zap.Error(err))
		result.ID = 0
		result.RecommendedCareers = datatypes.JSONSlice[uint]{}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *assessmentService) attachRecommendations(ctx context.Context, repo *repository.Repository, result *model.AssessmentResult) error {
	paths, err := repo.CareerPath.ListAllActive(ctx)
	if err != nil {
		return err
	}

	ids := CareerIDs(ScoreCareerPaths(paths, result.Answers, s.topN))
	if err := repo.AssessmentResult.UpdateRecommendations(ctx, result.ID, ids); err != nil {
		return err
	}
	result.RecommendedCareers = datatypes.JSONSlice[uint](ids)
	return nil
}

// validateAnswers 浅校验：题目存在、单选至多一项
func validateAnswers(assessment *model.CareerAssessment, answers []model.Answer) *FieldError {
	fe := newFieldError(ErrInvalidAnswers)
	for i, a := range answers {
		q, ok := assessment.QuestionByID(a.QuestionID)
		if !ok {
			fe.Add("answers", "answers[%d]: question %d does not exist in this assessment.", i, a.QuestionID)
			continue
		}
		qt, _ := model.NormalizeQuestionType(string(q.Type))
		if qt == model.QuestionSingleSelect && len(a.Selected) > 1 {
			fe.Add("answers", "answers[%d]: question %d accepts a single selection.", i, a.QuestionID)
		}
	}
	if fe.Empty() {
		return nil
	}
	return fe
}

func normalizeAnswers(answers []model.Answer) datatypes.JSONSlice[model.Answer] {
	out := make(datatypes.JSONSlice[model.Answer], 0, len(answers))
	for _, a := range answers {
		sel := a.Selected
		if sel == nil {
			sel = []string{}
		}
		out = append(out, model.Answer{QuestionID: a.QuestionID, Selected: sel})
	}
	return out
}

// normalizeOptional 空白字符串视为未提供
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ────────────────────── Results ──────────────────────

func (s *assessmentService) ListResults(ctx context.Context, scope repository.ResultScope, req *dto.PaginationRequest) ([]dto.AssessmentResultResponse, int64, error) {
	list, total, err := s.repo.AssessmentResult.ListByScope(ctx, scope, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出测评结果失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AssessmentResultResponse, 0, len(list))
	for i := range list {
		result = append(result, toResultResponse(&list[i]))
	}
	return result, total, nil
}

func (s *assessmentService) GetResult(ctx context.Context, id uint, scope repository.ResultScope) (*dto.AssessmentResultResponse, error) {
	if scope.Empty() {
		return nil, ErrResultNotFound
	}

	r, err := s.repo.AssessmentResult.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		s.logger.Error("查询测评结果失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if !resultVisible(r, scope) {
		return nil, ErrResultNotFound
	}

	resp := toResultResponse(r)
	return &resp, nil
}

// resultVisible 登录用户只能看到自己的结果，匿名调用按 session_id 匹配
func resultVisible(r *model.AssessmentResult, scope repository.ResultScope) bool {
	if scope.UserID != "" {
		return r.UserID != nil && *r.UserID == scope.UserID
	}
	return r.SessionID != nil && *r.SessionID == scope.SessionID
}
