package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/internal/dto"
	"github.com/tuilachit/Careercompass/internal/repository"
	"github.com/tuilachit/Careercompass/internal/service"
	"github.com/tuilachit/Careercompass/pkg/response"
)

// AssessmentResultHandler 测评结果查询 HTTP 处理器
// 可见范围：已登录用户看自己的结果，匿名请求凭 session_id 查询
type AssessmentResultHandler struct {
	assessmentSvc service.AssessmentService
	logger        *zap.Logger
}

// NewAssessmentResultHandler 创建 AssessmentResultHandler
func NewAssessmentResultHandler(assessmentSvc service.AssessmentService, logger *zap.Logger) *AssessmentResultHandler {
	return &AssessmentResultHandler{assessmentSvc: assessmentSvc, logger: logger}
}

// ListResults 当前用户 / 会话的测评结果
// GET /api/v1/assessment-results?session_id=xxx
func (h *AssessmentResultHandler) ListResults(c *gin.Context) {
	var req dto.AssessmentResultListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	list, total, err := h.assessmentSvc.ListResults(c.Request.Context(), resultScope(c, req.SessionID), &req.PaginationRequest)
	if err != nil {
		h.handleResultError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetResult 测评结果详情
// GET /api/v1/assessment-results/:id?session_id=xxx
func (h *AssessmentResultHandler) GetResult(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.assessmentSvc.GetResult(c.Request.Context(), id, resultScope(c, c.Query("session_id")))
	if err != nil {
		h.handleResultError(c, err)
		return
	}

	response.OK(c, result)
}

func resultScope(c *gin.Context, sessionID string) repository.ResultScope {
	userID, _ := OptionalUserID(c)
	return repository.ResultScope{UserID: userID, SessionID: sessionID}
}

func (h *AssessmentResultHandler) handleResultError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrResultNotFound):
		response.NotFound(c, 13003, "测评结果不存在")
	default:
		h.logger.Error("测评结果请求处理失败", zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c)
	}
}
