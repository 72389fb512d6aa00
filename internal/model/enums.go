package model

// ── 职业路径枚举 ──

// CareerCategories 职业类别
var CareerCategories = []string{
	"technology", "healthcare", "business", "education", "arts",
	"science", "engineering", "finance", "marketing", "other",
}

// EducationLevels 学历要求
var EducationLevels = []string{
	"high_school", "associates", "bachelors", "masters", "phd", "certification",
}

// GrowthOutlooks 就业前景
var GrowthOutlooks = []string{"high", "medium", "stable", "declining"}

// WorkEnvironments 工作环境
var WorkEnvironments = []string{
	"office", "remote", "hybrid", "field", "laboratory", "hospital", "school",
}

// ── 学习资源枚举 ──

// ResourceTypes 资源类型
var ResourceTypes = []string{"article", "guide", "tool", "video", "course", "book"}

// ResourceCategories 资源类别
var ResourceCategories = []string{
	"resume", "interview", "networking", "skills", "job_search", "career_planning",
}

// DifficultyLevels 难度
var DifficultyLevels = []string{"beginner", "intermediate", "advanced"}

// ── 用户档案枚举 ──

// ExperienceLevels 经验级别
var ExperienceLevels = []string{"student", "entry", "mid", "senior", "executive"}

// PreferredWorkEnvironments 期望工作环境（空字符串表示未设置）
var PreferredWorkEnvironments = []string{"office", "remote", "hybrid", "field"}

// ── 用户角色 ──

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsOneOf 判断 v 是否属于 allowed
func IsOneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
