package model

import "gorm.io/datatypes"

// UserProfile 用户职业档案表 — 对应 user_profiles（与 users 一对一）
type UserProfile struct {
	ID                       uint                        `gorm:"primaryKey"                                  json:"id"`
	UserID                   string                      `gorm:"type:uuid;not null;uniqueIndex"              json:"user_id"`
	CareerGoals              datatypes.JSONSlice[string] `gorm:"not null"                                    json:"career_goals"`
	CurrentCareerPathID      *uint                       `gorm:"index"                                       json:"current_career_path_id,omitempty"`
	Interests                datatypes.JSONSlice[string] `gorm:"not null"                                    json:"interests"`
	Skills                   datatypes.JSONSlice[string] `gorm:"not null"                                    json:"skills"`
	ExperienceLevel          string                      `gorm:"type:varchar(50);not null;default:'entry'"   json:"experience_level"`
	PreferredWorkEnvironment string                      `gorm:"type:varchar(100);not null;default:''"       json:"preferred_work_environment"`
	VersionedModel

	// 关联
	User              *User       `gorm:"foreignKey:UserID;references:UserID"                         json:"user,omitempty"`
	CurrentCareerPath *CareerPath `gorm:"foreignKey:CurrentCareerPathID;constraint:OnDelete:SET NULL" json:"current_career_path,omitempty"`
}

func (UserProfile) TableName() string { return "user_profiles" }
