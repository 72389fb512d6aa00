package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/internal/service"
	"github.com/tuilachit/Careercompass/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
	logger    *zap.Logger
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, logger: logger}
}

// ExportResults 导出某测评的全部提交结果
// GET /api/v1/assessments/:id/results/export
func (h *ExportHandler) ExportResults(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportResults(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoResults):
		response.NotFound(c, 16101, "该测评暂无提交结果")
	case errors.Is(err, service.ErrExportGenerateFail):
		h.logger.Error("生成导出文件失败", zap.Error(err))
		response.InternalError(c)
	default:
		h.logger.Error("导出请求处理失败", zap.Error(err))
		response.InternalError(c)
	}
}
