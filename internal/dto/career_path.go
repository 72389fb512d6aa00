package dto

// ── 职业路径模块 DTO ──

// CareerPathListRequest 职业路径列表查询参数
type CareerPathListRequest struct {
	PaginationRequest
	Category        string `form:"category"         binding:"omitempty,oneof=technology healthcare business education arts science engineering finance marketing other"`
	EducationLevel  string `form:"education_level"  binding:"omitempty,oneof=high_school associates bachelors masters phd certification"`
	GrowthOutlook   string `form:"growth_outlook"   binding:"omitempty,oneof=high medium stable declining"`
	WorkEnvironment string `form:"work_environment" binding:"omitempty,oneof=office remote hybrid field laboratory hospital school"`
	Search          string `form:"search"           binding:"omitempty,max=100"`
	Ordering        string `form:"ordering"         binding:"omitempty,oneof=title -title created_at -created_at salary_range_min -salary_range_min"`
}

// CreateCareerPathRequest 创建职业路径请求
type CreateCareerPathRequest struct {
	Title           string   `json:"title"            binding:"required,min=2,max=200"`
	Description     string   `json:"description"      binding:"required"`
	Category        string   `json:"category"         binding:"required,oneof=technology healthcare business education arts science engineering finance marketing other"`
	SalaryRangeMin  *int     `json:"salary_range_min" binding:"omitempty,min=0"`
	SalaryRangeMax  *int     `json:"salary_range_max" binding:"omitempty,min=0"`
	EducationLevel  string   `json:"education_level"  binding:"required,oneof=high_school associates bachelors masters phd certification"`
	RequiredSkills  []string `json:"required_skills"  binding:"omitempty,dive,min=1,max=100"`
	GrowthOutlook   string   `json:"growth_outlook"   binding:"required,oneof=high medium stable declining"`
	WorkEnvironment string   `json:"work_environment" binding:"required,oneof=office remote hybrid field laboratory hospital school"`
	IsActive        *bool    `json:"is_active"`
}

// UpdateCareerPathRequest 更新职业路径请求（部分更新）
type UpdateCareerPathRequest struct {
	Title           *string   `json:"title"            binding:"omitempty,min=2,max=200"`
	Description     *string   `json:"description"`
	Category        *string   `json:"category"         binding:"omitempty,oneof=technology healthcare business education arts science engineering finance marketing other"`
	SalaryRangeMin  *int      `json:"salary_range_min" binding:"omitempty,min=0"`
	SalaryRangeMax  *int      `json:"salary_range_max" binding:"omitempty,min=0"`
	EducationLevel  *string   `json:"education_level"  binding:"omitempty,oneof=high_school associates bachelors masters phd certification"`
	RequiredSkills  *[]string `json:"required_skills"  binding:"omitempty,dive,min=1,max=100"`
	GrowthOutlook   *string   `json:"growth_outlook"   binding:"omitempty,oneof=high medium stable declining"`
	WorkEnvironment *string   `json:"work_environment" binding:"omitempty,oneof=office remote hybrid field laboratory hospital school"`
	IsActive        *bool     `json:"is_active"`
}

// CareerPathResponse 职业路径响应
type CareerPathResponse struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	SalaryRangeMin  *int     `json:"salary_range_min"`
	SalaryRangeMax  *int     `json:"salary_range_max"`
	EducationLevel  string   `json:"education_level"`
	RequiredSkills  []string `json:"required_skills"`
	GrowthOutlook   string   `json:"growth_outlook"`
	WorkEnvironment string   `json:"work_environment"`
	IsActive        bool     `json:"is_active"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}
