package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tuilachit/Careercompass/pkg/jwt"
	"github.com/tuilachit/Careercompass/pkg/response"
)

// TokenChecker Token 黑名单查询（由 pkg/redis.Client 实现）
// 为 nil 时跳过黑名单检查
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		if !authenticate(c, jwtMgr, blacklist, authHeader) {
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth 可选认证中间件
// 无认证头时以匿名身份放行；携带了认证头则必须有效
func OptionalAuth(jwtMgr *jwt.Manager, blacklist TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if !authenticate(c, jwtMgr, blacklist, authHeader) {
			c.Abort()
			return
		}

		c.Next()
	}
}

// authenticate 校验 Token 并注入用户信息，失败时已写入 401
func authenticate(c *gin.Context, jwtMgr *jwt.Manager, blacklist TokenChecker, authHeader string) bool {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, 10002, "认证头格式无效")
		return false
	}

	claims, err := jwtMgr.ParseToken(parts[1])
	if err != nil {
		response.Unauthorized(c, 10002, "Token 无效或已过期")
		return false
	}

	if claims.TokenType != jwt.TokenTypeAccess {
		response.Unauthorized(c, 10002, "Token 类型无效")
		return false
	}

	// Redis 故障时降级放行
	if blacklist != nil {
		if revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && revoked {
			response.Unauthorized(c, 10002, "Token 已注销")
			return false
		}
	}

	// 将用户信息注入上下文
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
	c.Set("claims", claims)
	return true
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		userRole, _ := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
