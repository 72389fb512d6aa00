package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/internal/dto"
	"github.com/tuilachit/Careercompass/internal/service"
	"github.com/tuilachit/Careercompass/pkg/response"
)

// ResourceHandler 学习资源模块 HTTP 处理器
type ResourceHandler struct {
	resourceSvc service.ResourceService
	logger      *zap.Logger
}

// NewResourceHandler 创建 ResourceHandler
func NewResourceHandler(resourceSvc service.ResourceService, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{resourceSvc: resourceSvc, logger: logger}
}

// ListResources 资源列表
// GET /api/v1/resources
func (h *ResourceHandler) ListResources(c *gin.Context) {
	var req dto.ResourceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	list, total, err := h.resourceSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetResource 资源详情
// GET /api/v1/resources/:id
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.resourceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, res)
}

// Featured 精选资源
// GET /api/v1/resources/featured
func (h *ResourceHandler) Featured(c *gin.Context) {
	list, err := h.resourceSvc.Featured(c.Request.Context())
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, list)
}

// Categories 在架资源类别
// GET /api/v1/resources/categories
func (h *ResourceHandler) Categories(c *gin.Context) {
	list, err := h.resourceSvc.Categories(c.Request.Context())
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, list)
}

// CreateResource 创建资源
// POST /api/v1/resources
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.resourceSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.Created(c, res)
}

// UpdateResource 更新资源
// PUT /api/v1/resources/:id
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.resourceSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, res)
}

// DeleteResource 下架资源
// DELETE /api/v1/resources/:id
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.resourceSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ResourceHandler) handleResourceError(c *gin.Context, err error) {
	if respondFieldError(c, 14002, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrResourceNotFound):
		response.NotFound(c, 14001, "学习资源不存在")
	default:
		h.logger.Error("学习资源请求处理失败", zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c)
	}
}
