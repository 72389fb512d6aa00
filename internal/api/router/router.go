package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/config"
	"github.com/tuilachit/Careercompass/internal/api/handler"
	"github.com/tuilachit/Careercompass/internal/api/middleware"
	"github.com/tuilachit/Careercompass/internal/model"
	"github.com/tuilachit/Careercompass/pkg/jwt"
	"github.com/tuilachit/Careercompass/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时黑名单与限流降级
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// nil *redis.Client 不能直接赋给接口
	var (
		blacklist middleware.TokenChecker
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	authRequired := middleware.JWTAuth(jwtMgr, blacklist)
	authOptional := middleware.OptionalAuth(jwtMgr, blacklist)
	adminOnly := middleware.RoleAuth(model.RoleAdmin)

	// ── 健康检查 ──
	r.GET("/health", h.Health.Check)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Check)

		// 认证模块
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/logout", authRequired, h.Auth.Logout)
			auth.GET("/me", authRequired, h.Auth.GetCurrentUser)
		}

		// 职业路径模块
		careerPaths := v1.Group("/career-paths")
		{
			careerPaths.GET("", h.CareerPath.ListCareerPaths)
			careerPaths.GET("/featured", h.CareerPath.Featured)
			careerPaths.GET("/categories", h.CareerPath.Categories)
			careerPaths.GET("/:id", h.CareerPath.GetCareerPath)
			careerPaths.POST("", authRequired, adminOnly, h.CareerPath.CreateCareerPath)
			careerPaths.PUT("/:id", authRequired, adminOnly, h.CareerPath.UpdateCareerPath)
			careerPaths.DELETE("/:id", authRequired, adminOnly, h.CareerPath.DeleteCareerPath)
		}

		// 测评模块
		assessments := v1.Group("/assessments")
		{
			assessments.GET("", h.Assessment.ListAssessments)
			assessments.GET("/:id", h.Assessment.GetAssessment)
			assessments.POST("/:id/submit",
				authOptional,
				middleware.RateLimit(limiter, cfg.RateLimit.SubmitLimit, cfg.RateLimit.SubmitWindow, logger),
				h.Assessment.Submit,
			)
			assessments.GET("/:id/results/export", authRequired, adminOnly, h.Export.ExportResults)
		}

		// 测评结果模块（登录用户或 session_id）
		results := v1.Group("/assessment-results", authOptional)
		{
			results.GET("", h.Result.ListResults)
			results.GET("/:id", h.Result.GetResult)
		}

		// 学习资源模块
		resources := v1.Group("/resources")
		{
			resources.GET("", h.Resource.ListResources)
			resources.GET("/featured", h.Resource.Featured)
			resources.GET("/categories", h.Resource.Categories)
			resources.GET("/:id", h.Resource.GetResource)
			resources.POST("", authRequired, adminOnly, h.Resource.CreateResource)
			resources.PUT("/:id", authRequired, adminOnly, h.Resource.UpdateResource)
			resources.DELETE("/:id", authRequired, adminOnly, h.Resource.DeleteResource)
		}

		// 用户档案模块
		profiles := v1.Group("/profiles", authRequired)
		{
			profiles.GET("/me", h.Profile.GetMyProfile)
			profiles.PATCH("/me", h.Profile.UpdateMyProfile)
		}
	}

	return r
}
