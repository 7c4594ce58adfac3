package types

// Skill 表示从文档中识别出的一项技能
type Skill struct {
	Name       string  `json:"name"`       // 技能名称（保留目录中的大小写）
	Confidence float64 `json:"confidence"` // 置信度，取值 [0,1]
}

// JobProfile 岗位画像，来自静态岗位目录
type JobProfile struct {
	Title          string   `json:"title" yaml:"title"`
	RequiredSkills []string `json:"requiredSkills" yaml:"required_skills"`
}

// JobMatch 单个岗位的匹配结果
type JobMatch struct {
	Title         string   `json:"title"`
	Score         float64  `json:"score"`         // 覆盖率 = 已匹配技能数 / 要求技能数
	MatchedSkills []string `json:"matchedSkills"` // 已具备的要求技能
	MissingSkills []string `json:"missingSkills"` // 缺失的要求技能
}

// ExtractSkillsResponse /extract-skills 成功响应
type ExtractSkillsResponse struct {
	Skills []Skill `json:"skills"`
}

// MatchJobRequest /match-job 请求体
// 字段使用指针以区分"缺失"和"空值"
type MatchJobRequest struct {
	Skills         *[]string `json:"skills"`
	JobDescription *string   `json:"jobDescription"`
}

// MatchJobResponse /match-job 成功响应
type MatchJobResponse struct {
	Matches []JobMatch `json:"matches"`
}

// ErrorResponse 统一的错误响应体
type ErrorResponse struct {
	Error string `json:"error"`
}
