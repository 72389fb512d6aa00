package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/internal/dto"
	"github.com/tuilachit/Careercompass/internal/service"
	"github.com/tuilachit/Careercompass/pkg/response"
)

// CareerPathHandler 职业路径模块 HTTP 处理器
type CareerPathHandler struct {
	careerSvc service.CareerPathService
	logger    *zap.Logger
}

// NewCareerPathHandler 创建 CareerPathHandler
func NewCareerPathHandler(careerSvc service.CareerPathService, logger *zap.Logger) *CareerPathHandler {
	return &CareerPathHandler{careerSvc: careerSvc, logger: logger}
}

// ListCareerPaths 职业路径列表（筛选 / 搜索 / 排序 / 分页）
// GET /api/v1/career-paths
func (h *CareerPathHandler) ListCareerPaths(c *gin.Context) {
	var req dto.CareerPathListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	list, total, err := h.careerSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleCareerPathError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetCareerPath 职业路径详情
// GET /api/v1/career-paths/:id
func (h *CareerPathHandler) GetCareerPath(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	path, err := h.careerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCareerPathError(c, err)
		return
	}

	response.OK(c, path)
}

// Featured 随机精选职业路径
// GET /api/v1/career-paths/featured
func (h *CareerPathHandler) Featured(c *gin.Context) {
	list, err := h.careerSvc.Featured(c.Request.Context())
	if err != nil {
		h.handleCareerPathError(c, err)
		return
	}

	response.OK(c, list)
}

// Categories 在架职业路径类别
// GET /api/v1/career-paths/categories
func (h *CareerPathHandler) Categories(c *gin.Context) {
	list, err := h.careerSvc.Categories(c.Request.Context())
	if err != nil {
		h.handleCareerPathError(c, err)
		return
	}

	response.OK(c, list)
}

// CreateCareerPath 创建职业路径
// POST /api/v1/career-paths
func (h *CareerPathHandler) CreateCareerPath(c *gin.Context) {
	var req dto.CreateCareerPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	path, err := h.careerSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCareerPathError(c, err)
		return
	}

	response.Created(c, path)
}

// UpdateCareerPath 更新职业路径（部分字段）
// PUT /api/v1/career-paths/:id
func (h *CareerPathHandler) UpdateCareerPath(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCareerPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	path, err := h.careerSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCareerPathError(c, err)
		return
	}

	response.OK(c, path)
}

// DeleteCareerPath 下架职业路径（软删除）
// DELETE /api/v1/career-paths/:id
func (h *CareerPathHandler) DeleteCareerPath(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.careerSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCareerPathError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CareerPathHandler) handleCareerPathError(c *gin.Context, err error) {
	if respondFieldError(c, 12002, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrCareerPathNotFound):
		response.NotFound(c, 12001, "职业路径不存在")
	default:
		h.logger.Error("职业路径请求处理失败", zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c)
	}
}
