package dto

// ── 测评模块 DTO ──

// QuestionResponse 测评题目
type QuestionResponse struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

// AssessmentResponse 测评详情响应
type AssessmentResponse struct {
	ID           uint               `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Instructions string             `json:"instructions"`
	Questions    []QuestionResponse `json:"questions"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

// AnswerRequest 单题作答
type AnswerRequest struct {
	QuestionID int      `json:"question_id" binding:"required,min=1"`
	Selected   []string `json:"selected"`
}

// SubmitAssessmentRequest 提交测评请求
// POST /api/v1/assessments/:id/submit
type SubmitAssessmentRequest struct {
	Answers   []AnswerRequest `json:"answers"    binding:"required,dive"`
	SessionID *string         `json:"session_id" binding:"omitempty,max=100"`
}

// AnswerResponse 单题作答响应
type AnswerResponse struct {
	QuestionID int      `json:"question_id"`
	Selected   []string `json:"selected"`
}

// AssessmentResultResponse 测评结果响应
type AssessmentResultResponse struct {
	ID                 uint             `json:"id"`
	User               *string          `json:"user"`
	Assessment         uint             `json:"assessment"`
	Answers            []AnswerResponse `json:"answers"`
	RecommendedCareers []uint           `json:"recommended_careers"`
	SessionID          *string          `json:"session_id"`
	CompletedAt        string           `json:"completed_at"`
	AssessmentTitle    string           `json:"assessment_title,omitempty"`
	UserUsername       string           `json:"user_username,omitempty"`
}

// AssessmentResultListRequest 测评结果列表查询参数
// 已登录用户按身份过滤；匿名用户需提供 session_id
type AssessmentResultListRequest struct {
	PaginationRequest
	SessionID string `form:"session_id" binding:"omitempty,max=100"`
}
