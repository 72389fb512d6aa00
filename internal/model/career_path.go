package model

import "gorm.io/datatypes"

// CareerPath 职业路径表 — 对应 career_paths
// 通过 is_active 软下线，推荐流程只读不写
type CareerPath struct {
	ID              uint                        `gorm:"primaryKey"                        json:"id"`
	Title           string                      `gorm:"type:varchar(200);not null"        json:"title"`
	Description     string                      `gorm:"type:text;not null"                json:"description"`
	Category        string                      `gorm:"type:varchar(100);not null;index"  json:"category"`
	SalaryRangeMin  *int                        `                                         json:"salary_range_min"`
	SalaryRangeMax  *int                        `                                         json:"salary_range_max"`
	EducationLevel  string                      `gorm:"type:varchar(100);not null"        json:"education_level"`
	RequiredSkills  datatypes.JSONSlice[string] `gorm:"not null"                          json:"required_skills"`
	GrowthOutlook   string                      `gorm:"type:varchar(50);not null"         json:"growth_outlook"`
	WorkEnvironment string                      `gorm:"type:varchar(100);not null"        json:"work_environment"`
	IsActive        bool                        `gorm:"not null"                          json:"is_active"`
	BaseModel
}

func (CareerPath) TableName() string { return "career_paths" }
