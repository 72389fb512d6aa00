package dto

// ── 学习资源模块 DTO ──

// ResourceListRequest 学习资源列表查询参数
type ResourceListRequest struct {
	PaginationRequest
	ResourceType    string `form:"resource_type"    binding:"omitempty,oneof=article guide tool video course book"`
	Category        string `form:"category"         binding:"omitempty,oneof=resume interview networking skills job_search career_planning"`
	DifficultyLevel string `form:"difficulty_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	IsFeatured      *bool  `form:"is_featured"`
	Search          string `form:"search"           binding:"omitempty,max=100"`
	Ordering        string `form:"ordering"         binding:"omitempty,oneof=title -title created_at -created_at estimated_time -estimated_time"`
}

// CreateResourceRequest 创建学习资源请求
type CreateResourceRequest struct {
	Title           string   `json:"title"            binding:"required,min=2,max=200"`
	Content         string   `json:"content"          binding:"required"`
	ResourceType    string   `json:"resource_type"    binding:"required,oneof=article guide tool video course book"`
	Category        string   `json:"category"         binding:"required,oneof=resume interview networking skills job_search career_planning"`
	DifficultyLevel string   `json:"difficulty_level" binding:"required,oneof=beginner intermediate advanced"`
	EstimatedTime   *int     `json:"estimated_time"   binding:"omitempty,min=1"`
	Tags            []string `json:"tags"             binding:"omitempty,dive,min=1,max=50"`
	IsFeatured      bool     `json:"is_featured"`
}

// UpdateResourceRequest 更新学习资源请求（部分更新）
type UpdateResourceRequest struct {
	Title           *string   `json:"title"            binding:"omitempty,min=2,max=200"`
	Content         *string   `json:"content"`
	ResourceType    *string   `json:"resource_type"    binding:"omitempty,oneof=article guide tool video course book"`
	Category        *string   `json:"category"         binding:"omitempty,oneof=resume interview networking skills job_search career_planning"`
	DifficultyLevel *string   `json:"difficulty_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTime   *int      `json:"estimated_time"   binding:"omitempty,min=1"`
	Tags            *[]string `json:"tags"             binding:"omitempty,dive,min=1,max=50"`
	IsFeatured      *bool     `json:"is_featured"`
	IsActive        *bool     `json:"is_active"`
}

// ResourceResponse 学习资源响应
type ResourceResponse struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	ResourceType    string   `json:"resource_type"`
	Category        string   `json:"category"`
	DifficultyLevel string   `json:"difficulty_level"`
	EstimatedTime   *int     `json:"estimated_time"`
	Tags            []string `json:"tags"`
	IsFeatured      bool     `json:"is_featured"`
	IsActive        bool     `json:"is_active"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}
