package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/internal/dto"
	"github.com/tuilachit/Careercompass/internal/model"
	"github.com/tuilachit/Careercompass/internal/service"
	"github.com/tuilachit/Careercompass/pkg/response"
)

// AssessmentHandler 职业测评模块 HTTP 处理器
type AssessmentHandler struct {
	assessmentSvc service.AssessmentService
	logger        *zap.Logger
}

// NewAssessmentHandler 创建 AssessmentHandler
func NewAssessmentHandler(assessmentSvc service.AssessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc, logger: logger}
}

// ListAssessments 在用测评列表
// GET /api/v1/assessments
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	list, err := h.assessmentSvc.List(c.Request.Context())
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	response.OK(c, list)
}

// GetAssessment 测评详情（含题目）
// GET /api/v1/assessments/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a, err := h.assessmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	response.OK(c, a)
}

// Submit 提交测评作答，返回结果与推荐职业
// POST /api/v1/assessments/:id/submit
// 已登录时结果归属当前用户，否则仅凭 session_id 检索
func (h *AssessmentHandler) Submit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	// 先确认测评在用，再校验请求体
	if _, err := h.assessmentSvc.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAssessmentNotFound) {
			err = service.AssessmentFieldError(id)
		}
		h.handleAssessmentError(c, err)
		return
	}

	var req dto.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := service.SubmitInput{
		AssessmentID: id,
		Answers:      make([]model.Answer, 0, len(req.Answers)),
		SessionID:    req.SessionID,
	}
	for _, a := range req.Answers {
		in.Answers = append(in.Answers, model.Answer{QuestionID: a.QuestionID, Selected: a.Selected})
	}
	if userID, ok := OptionalUserID(c); ok {
		in.UserID = &userID
	}

	result, err := h.assessmentSvc.Submit(c.Request.Context(), in)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	response.Created(c, result)
}

func (h *AssessmentHandler) handleAssessmentError(c *gin.Context, err error) {
	if respondFieldError(c, 13002, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrAssessmentNotFound):
		response.NotFound(c, 13001, "测评不存在或已停用")
	case errors.Is(err, service.ErrInvalidAnswers):
		response.BadRequest(c, 13002, "作答数据无效")
	default:
		h.logger.Error("测评请求处理失败", zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c)
	}
}
