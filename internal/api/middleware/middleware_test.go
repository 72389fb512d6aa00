package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/config"
	"github.com/tuilachit/Careercompass/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mocks ──

type mockBlacklist struct {
	revoked map[string]bool
	err     error
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], m.err
}

type mockLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (m *mockLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	m.keys = append(m.keys, key)
	return m.allowed, m.err
}

// ── Helpers ──

func newTestManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "middleware-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

// echoUser 返回中间件注入的 user_id，匿名时为空
func echoUser(c *gin.Context) {
	c.String(http.StatusOK, c.GetString("user_id"))
}

func do(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// JWTAuth / OptionalAuth / RoleAuth
// ═══════════════════════════════════════════════════════════

func TestJWTAuth(t *testing.T) {
	mgr := newTestManager()
	access, _ := mgr.GenerateAccessToken("user-1", "alice", "user")
	refresh, _ := mgr.GenerateRefreshToken("user-1", "alice", "user")
	claims, _ := mgr.ParseToken(access)

	tests := []struct {
		name      string
		blacklist TokenChecker
		header    string
		wantCode  int
	}{
		{"缺少认证头", nil, "", http.StatusUnauthorized},
		{"格式无效", nil, "Token " + access, http.StatusUnauthorized},
		{"Token 无效", nil, "Bearer garbage", http.StatusUnauthorized},
		{"Refresh Token 不能访问", nil, "Bearer " + refresh, http.StatusUnauthorized},
		{"有效 Token", nil, "Bearer " + access, http.StatusOK},
		{"已注销 Token", &mockBlacklist{revoked: map[string]bool{claims.ID: true}}, "Bearer " + access, http.StatusUnauthorized},
		{"黑名单故障时放行", &mockBlacklist{err: errors.New("redis down")}, "Bearer " + access, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/me", JWTAuth(mgr, tt.blacklist), echoUser)

			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode == http.StatusOK && w.Body.String() != "user-1" {
				t.Errorf("期望注入 user-1，实际: %q", w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	mgr := newTestManager()
	access, _ := mgr.GenerateAccessToken("user-2", "bob", "user")

	r := gin.New()
	r.GET("/results", OptionalAuth(mgr, nil), echoUser)

	w := do(r, "GET", "/results", "")
	if w.Code != http.StatusOK || w.Body.String() != "" {
		t.Errorf("匿名请求应放行且无 user_id，实际: %d %q", w.Code, w.Body.String())
	}

	w = do(r, "GET", "/results", access)
	if w.Code != http.StatusOK || w.Body.String() != "user-2" {
		t.Errorf("有效 Token 应注入 user-2，实际: %d %q", w.Code, w.Body.String())
	}

	w = do(r, "GET", "/results", "garbage")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("携带无效 Token 应返回 401，实际: %d", w.Code)
	}
}

func TestRoleAuth(t *testing.T) {
	mgr := newTestManager()
	admin, _ := mgr.GenerateAccessToken("admin-1", "root", "admin")
	user, _ := mgr.GenerateAccessToken("user-1", "alice", "user")

	r := gin.New()
	r.POST("/career-paths", JWTAuth(mgr, nil), RoleAuth("admin"), echoUser)

	if w := do(r, "POST", "/career-paths", admin); w.Code != http.StatusOK {
		t.Errorf("admin 应放行，实际: %d", w.Code)
	}
	if w := do(r, "POST", "/career-paths", user); w.Code != http.StatusForbidden {
		t.Errorf("普通用户应返回 403，实际: %d", w.Code)
	}

	bare := gin.New()
	bare.POST("/x", RoleAuth("admin"), echoUser)
	if w := do(bare, "POST", "/x", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("未认证应返回 401，实际: %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RateLimit
// ═══════════════════════════════════════════════════════════

func TestRateLimit(t *testing.T) {
	t.Run("超限返回 429", func(t *testing.T) {
		lim := &mockLimiter{allowed: false}
		r := gin.New()
		r.POST("/submit", RateLimit(lim, 1, time.Minute, zap.NewNop()), echoUser)

		if w := do(r, "POST", "/submit", ""); w.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d", w.Code)
		}
		if len(lim.keys) != 1 || !strings.HasPrefix(lim.keys[0], "rate_limit:ip:") {
			t.Errorf("匿名请求应按 IP 计数，实际: %v", lim.keys)
		}
	})

	t.Run("已登录按用户计数", func(t *testing.T) {
		lim := &mockLimiter{allowed: true}
		r := gin.New()
		r.POST("/submit", func(c *gin.Context) { c.Set("user_id", "u-9") }, RateLimit(lim, 5, time.Minute, zap.NewNop()), echoUser)

		if w := do(r, "POST", "/submit", ""); w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
		if len(lim.keys) != 1 || lim.keys[0] != "rate_limit:user:u-9:/submit" {
			t.Errorf("限流 key 错误: %v", lim.keys)
		}
	})

	t.Run("Redis 故障降级放行", func(t *testing.T) {
		lim := &mockLimiter{err: errors.New("redis down")}
		r := gin.New()
		r.POST("/submit", RateLimit(lim, 1, time.Minute, zap.NewNop()), echoUser)

		if w := do(r, "POST", "/submit", ""); w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("未配置限流器放行", func(t *testing.T) {
		r := gin.New()
		r.POST("/submit", RateLimit(nil, 1, time.Minute, zap.NewNop()), echoUser)

		if w := do(r, "POST", "/submit", ""); w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})
}

// ═══════════════════════════════════════════════════════════
// RequestID / BodyLimit / CORS
// ═══════════════════════════════════════════════════════════

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequestID(), func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("应沿用外部 Request-ID，实际: %q", w.Header().Get("X-Request-ID"))
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", requestIDMaxLen+1))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("过长的 Request-ID 应被替换为 UUID，实际: %q", got)
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/x", BodyLimit(8), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("POST", "/x", strings.NewReader(strings.Repeat("x", 64)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("预检应放行配置来源，实际: %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("未配置来源应被拒绝，实际: %d", w.Code)
	}
}
