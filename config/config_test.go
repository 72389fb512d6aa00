package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "0123456789abcdef0123"
assessment:
  atomic_submit: true
recommendation:
  top_n: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("期望加载成功，实际: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("期望默认端口 8080，实际: %d", cfg.Server.Port)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Errorf("期望 access_token_ttl=15m，实际: %v", cfg.Auth.AccessTokenTTL)
	}
	if !cfg.Assessment.AtomicSubmit {
		t.Error("期望 atomic_submit=true")
	}
	if cfg.Recommendation.TopN != 3 {
		t.Errorf("期望 top_n=3，实际: %d", cfg.Recommendation.TopN)
	}
	if cfg.Recommendation.FeaturedSize != 6 {
		t.Errorf("期望默认 featured_size=6，实际: %d", cfg.Recommendation.FeaturedSize)
	}
	if cfg.Cache.CategoriesTTL != 10*time.Minute {
		t.Errorf("期望 categories_ttl=10m，实际: %v", cfg.Cache.CategoriesTTL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
auth:
  jwt_secret: "0123456789abcdef0123"
`)
	t.Setenv("CAREER_SERVER_PORT", "9100")
	t.Setenv("CAREER_RATE_LIMIT_SUBMIT_LIMIT", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("期望加载成功，实际: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("期望环境变量覆盖端口为 9100，实际: %d", cfg.Server.Port)
	}
	if cfg.RateLimit.SubmitLimit != 7 {
		t.Errorf("期望 submit_limit=7，实际: %d", cfg.RateLimit.SubmitLimit)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")

	if _, err := Load(path); err == nil {
		t.Error("期望缺少 jwt_secret 时返回错误")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:         ServerConfig{Port: 8080},
			Auth:           AuthConfig{JWTSecret: "0123456789abcdef"},
			Recommendation: RecommendationConfig{TopN: 5, FeaturedSize: 6},
			Tracing:        TracingConfig{Exporter: "stdout"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法配置", func(c *Config) {}, false},
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"top_n 为 0", func(c *Config) { c.Recommendation.TopN = 0 }, true},
		{"featured_size 为 0", func(c *Config) { c.Recommendation.FeaturedSize = 0 }, true},
		{"未知 exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("期望 wantErr=%v，实际: %v", tt.wantErr, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable", Timezone: "UTC"}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable TimeZone=UTC"
	if got := c.DSN(); got != want {
		t.Errorf("期望 %q，实际: %q", want, got)
	}
}
