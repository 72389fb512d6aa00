package model

import "gorm.io/datatypes"

// CareerResource 学习资源表 — 对应 career_resources
type CareerResource struct {
	ID              uint                        `gorm:"primaryKey"                       json:"id"`
	Title           string                      `gorm:"type:varchar(200);not null"       json:"title"`
	Content         string                      `gorm:"type:text;not null"               json:"content"`
	ResourceType    string                      `gorm:"type:varchar(50);not null"        json:"resource_type"`
	Category        string                      `gorm:"type:varchar(100);not null;index" json:"category"`
	DifficultyLevel string                      `gorm:"type:varchar(50);not null"        json:"difficulty_level"`
	EstimatedTime   *int                        `                                        json:"estimated_time"` // 分钟
	Tags            datatypes.JSONSlice[string] `gorm:"not null"                         json:"tags"`
	IsFeatured      bool                        `gorm:"not null"                         json:"is_featured"`
	IsActive        bool                        `gorm:"not null"                         json:"is_active"`
	BaseModel
}

func (CareerResource) TableName() string { return "career_resources" }
