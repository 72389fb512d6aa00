package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey"                        json:"user_id"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"      json:"username"`
	Email        string `gorm:"type:varchar(254);not null;uniqueIndex"      json:"email"`
	FirstName    string `gorm:"type:varchar(150);not null;default:''"       json:"first_name"`
	LastName     string `gorm:"type:varchar(150);not null;default:''"       json:"last_name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                  json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'user'"    json:"role"` // user | admin
	BaseModel
}

func (User) TableName() string { return "users" }

// BeforeCreate 在应用侧生成 UUID 主键
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.New().String()
	}
	return nil
}
