package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// QuestionType 题目类型
type QuestionType string

const (
	QuestionSingleSelect QuestionType = "single_select"
	QuestionMultiSelect  QuestionType = "multi_select"
)

// NormalizeQuestionType 兼容旧数据中的 multiple_choice / multiple_select 写法
func NormalizeQuestionType(t string) (QuestionType, bool) {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "single_select", "multiple_choice", "single":
		return QuestionSingleSelect, true
	case "multi_select", "multiple_select", "multi":
		return QuestionMultiSelect, true
	default:
		return "", false
	}
}

// Question 测评题目（存储于 career_assessments.questions）
type Question struct {
	ID       int          `json:"id"`
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options"`
}

// Answer 单题作答（存储于 assessment_results.answers）
type Answer struct {
	QuestionID int      `json:"question_id"`
	Selected   []string `json:"selected"`
}

// ContainsFold 判断任一已选项是否包含 substr（忽略大小写）
func (a Answer) ContainsFold(substr string) bool {
	needle := strings.ToLower(substr)
	for _, s := range a.Selected {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// CareerAssessment 职业测评表 — 对应 career_assessments
type CareerAssessment struct {
	ID           uint                          `gorm:"primaryKey"                 json:"id"`
	Title        string                        `gorm:"type:varchar(200);not null" json:"title"`
	Description  string                        `gorm:"type:text;not null"         json:"description"`
	Instructions string                        `gorm:"type:text;not null"         json:"instructions"`
	Questions    datatypes.JSONSlice[Question] `gorm:"not null"                   json:"questions"`
	IsActive     bool                          `gorm:"not null"                   json:"is_active"`
	BaseModel
}

func (CareerAssessment) TableName() string { return "career_assessments" }

// QuestionByID 按题目 ID 查找题目
func (a *CareerAssessment) QuestionByID(id int) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// AssessmentResult 测评结果表 — 对应 assessment_results
// 创建后只允许一次写回 recommended_careers
type AssessmentResult struct {
	ID                 uint                        `gorm:"primaryKey"                 json:"id"`
	UserID             *string                     `gorm:"type:uuid;index"            json:"user_id,omitempty"`
	AssessmentID       uint                        `gorm:"not null;index"             json:"assessment_id"`
	Answers            datatypes.JSONSlice[Answer] `gorm:"not null"                   json:"answers"`
	RecommendedCareers datatypes.JSONSlice[uint]   `gorm:"not null"                   json:"recommended_careers"`
	SessionID          *string                     `gorm:"type:varchar(100);index"    json:"session_id,omitempty"`
	CompletedAt        time.Time                   `gorm:"not null"                   json:"completed_at"`

	// 关联
	Assessment *CareerAssessment `gorm:"foreignKey:AssessmentID"             json:"assessment,omitempty"`
	User       *User             `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (AssessmentResult) TableName() string { return "assessment_results" }
