package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tuilachit/Careercompass/pkg/jwt"
	"github.com/tuilachit/Careercompass/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	if s, ok := OptionalUserID(c); ok {
		return s, true
	}
	response.Unauthorized(c, 10002, "未认证")
	return "", false
}

// OptionalUserID 匿名请求返回 ("", false)，不写响应
func OptionalUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// MustGetClaims 提取 JWT 中间件注入的完整 Claims（登出时需要 jti 与过期时间）
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if exists {
		if claims, ok := v.(*jwt.Claims); ok && claims != nil {
			return claims, true
		}
	}
	response.Unauthorized(c, 10002, "未认证")
	return nil, false
}

// parseID 解析路径中的数字主键，非法时写入 400
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "ID 格式无效")
		return 0, false
	}
	return uint(id), true
}
