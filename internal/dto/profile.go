package dto

// ── 用户档案模块 DTO ──

// UpdateProfileRequest 更新档案请求（PATCH，字段均可选）
// current_career_path_id 传 0 表示清除当前职业路径
type UpdateProfileRequest struct {
	CareerGoals              *[]string `json:"career_goals"               binding:"omitempty,dive,min=1,max=200"`
	Interests                *[]string `json:"interests"                  binding:"omitempty,dive,min=1,max=100"`
	Skills                   *[]string `json:"skills"                     binding:"omitempty,dive,min=1,max=100"`
	CurrentCareerPathID      *uint     `json:"current_career_path_id"`
	ExperienceLevel          *string   `json:"experience_level"           binding:"omitempty,oneof=student entry mid senior executive"`
	PreferredWorkEnvironment *string   `json:"preferred_work_environment" binding:"omitempty,oneof=office remote hybrid field"`
	Version                  *int      `json:"version"                    binding:"omitempty,min=1"` // 乐观锁版本，缺省时不校验
}

// ProfileResponse 用户档案响应
type ProfileResponse struct {
	ID                       uint                `json:"id"`
	User                     UserResponse        `json:"user"`
	CareerGoals              []string            `json:"career_goals"`
	CurrentCareerPath        *CareerPathResponse `json:"current_career_path"`
	Interests                []string            `json:"interests"`
	Skills                   []string            `json:"skills"`
	ExperienceLevel          string              `json:"experience_level"`
	PreferredWorkEnvironment string              `json:"preferred_work_environment"`
	Version                  int                 `json:"version"`
	CreatedAt                string              `json:"created_at"`
	UpdatedAt                string              `json:"updated_at"`
}
