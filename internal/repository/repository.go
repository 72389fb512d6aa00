package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User             UserRepository
	CareerPath       CareerPathRepository
	Assessment       AssessmentRepository
	AssessmentResult AssessmentResultRepository
	Resource         ResourceRepository
	Profile          ProfileRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:               db,
		User:             NewUserRepo(db),
		CareerPath:       NewCareerPathRepo(db),
		Assessment:       NewAssessmentRepo(db),
		AssessmentResult: NewAssessmentResultRepo(db),
		Resource:         NewResourceRepo(db),
		Profile:          NewProfileRepo(db),
	}
}

// BeginTx 开启事务
// db 为空（单元测试注入 mock 仓储）时返回 nil 事务，调用方需判空
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 副本
// tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Ping 数据库连通性检查
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ── 通用查询辅助 ──

// likePattern 生成大小写不敏感的模糊匹配模式
func likePattern(s string) string {
	return "%" + escapeLike(s) + "%"
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		switch c {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}

// orderClause 将 ordering 参数（可带 - 前缀）映射为 SQL 排序，仅允许白名单字段
func orderClause(ordering string, allowed map[string]bool, fallback string) string {
	if ordering == "" {
		return fallback
	}
	desc := false
	field := ordering
	if ordering[0] == '-' {
		desc = true
		field = ordering[1:]
	}
	if !allowed[field] {
		return fallback
	}
	if desc {
		return field + " DESC, id ASC"
	}
	return field + " ASC, id ASC"
}
