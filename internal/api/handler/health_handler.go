package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// Pinger 可探活的依赖（数据库 / Redis）
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler 健康检查
type HealthHandler struct {
	db     Pinger
	cache  Pinger
	logger *zap.Logger
}

// NewHealthHandler 创建 HealthHandler，cache 可为 nil
func NewHealthHandler(db, cache Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, logger: logger}
}

// Check 并发探测数据库与 Redis
// GET /health
// 数据库不可用返回 503；Redis 不可用仅标记 degraded
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	dbStatus, cacheStatus := "ok", "disabled"

	var g errgroup.Group
	g.Go(func() error {
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error("数据库健康检查失败", zap.Error(err))
			dbStatus = "error"
			return err
		}
		return nil
	})
	if h.cache != nil {
		g.Go(func() error {
			if err := h.cache.Ping(ctx); err != nil {
				h.logger.Warn("Redis 健康检查失败", zap.Error(err))
				cacheStatus = "error"
				return nil
			}
			cacheStatus = "ok"
			return nil
		})
	}
	dbErr := g.Wait()

	status, code := "ok", http.StatusOK
	switch {
	case dbErr != nil:
		status, code = "unavailable", http.StatusServiceUnavailable
	case cacheStatus == "error":
		status = "degraded"
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"redis":    cacheStatus,
	})
}
