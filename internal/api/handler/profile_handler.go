package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/internal/dto"
	"github.com/tuilachit/Careercompass/internal/service"
	pkgerrors "github.com/tuilachit/Careercompass/pkg/errors"
	"github.com/tuilachit/Careercompass/pkg/response"
)

// ProfileHandler 用户档案 HTTP 处理器
type ProfileHandler struct {
	profileSvc service.ProfileService
	logger     *zap.Logger
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(profileSvc service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc, logger: logger}
}

// GetMyProfile 获取当前用户档案（首次访问时创建）
// GET /api/v1/profiles/me
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileSvc.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, profile)
}

// UpdateMyProfile 部分更新当前用户档案
// PATCH /api/v1/profiles/me
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.profileSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, profile)
}

func (h *ProfileHandler) handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, 10002, "未认证")
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, 15001, "用户档案不存在")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 15002, "档案已被修改，请刷新后重试")
	default:
		h.logger.Error("用户档案请求处理失败", zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c)
	}
}
