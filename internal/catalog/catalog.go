package catalog

import (
	"fmt"
	"os"
	"strings"

	"skillmatch-go/internal/types"

	"gopkg.in/yaml.v3"
)

// Catalog 技能目录与岗位目录，进程启动时加载一次，之后只读
type Catalog struct {
	skills []string
	jobs   []types.JobProfile
}

// fileFormat 目录文件的YAML结构
type fileFormat struct {
	Skills []string           `yaml:"skills"`
	Jobs   []types.JobProfile `yaml:"jobs"`
}

// New 基于给定的技能和岗位创建目录，入参会被复制，调用方后续修改不影响目录
func New(skills []string, jobs []types.JobProfile) (*Catalog, error) {
	c := &Catalog{
		skills: make([]string, 0, len(skills)),
		jobs:   make([]types.JobProfile, 0, len(jobs)),
	}

	for i, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("skill #%d: name is empty", i)
		}
		c.skills = append(c.skills, s)
	}

	titles := make(map[string]struct{}, len(jobs))
	for i, j := range jobs {
		title := strings.TrimSpace(j.Title)
		if title == "" {
			return nil, fmt.Errorf("job #%d: title is empty", i)
		}
		key := strings.ToLower(title)
		if _, dup := titles[key]; dup {
			return nil, fmt.Errorf("job #%d: duplicate title %q", i, title)
		}
		titles[key] = struct{}{}

		required := make([]string, 0, len(j.RequiredSkills))
		for _, s := range j.RequiredSkills {
			if s = strings.TrimSpace(s); s != "" {
				required = append(required, s)
			}
		}
		c.jobs = append(c.jobs, types.JobProfile{Title: title, RequiredSkills: required})
	}

	return c, nil
}

// Default 返回内置目录
func Default() *Catalog {
	c, err := New(defaultSkills, defaultJobs)
	if err != nil {
		// 内置数据出错属于编程错误
		panic(fmt.Sprintf("catalog: invalid built-in catalog: %v", err))
	}
	return c
}

// LoadFromFile 从YAML文件加载目录
// 文件中缺省的部分（skills 或 jobs）使用内置值
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取目录文件失败: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("解析目录文件失败: %w", err)
	}

	skills := f.Skills
	if len(skills) == 0 {
		skills = defaultSkills
	}
	jobs := f.Jobs
	if len(jobs) == 0 {
		jobs = defaultJobs
	}
	return New(skills, jobs)
}

// Skills 返回技能目录的副本（保持目录顺序）
func (c *Catalog) Skills() []string {
	out := make([]string, len(c.skills))
	copy(out, c.skills)
	return out
}

// Jobs 返回岗位目录的副本
func (c *Catalog) Jobs() []types.JobProfile {
	out := make([]types.JobProfile, len(c.jobs))
	for i, j := range c.jobs {
		out[i] = types.JobProfile{
			Title:          j.Title,
			RequiredSkills: append([]string(nil), j.RequiredSkills...),
		}
	}
	return out
}

// SkillCount 技能数量
func (c *Catalog) SkillCount() int { return len(c.skills) }

// JobCount 岗位数量
func (c *Catalog) JobCount() int { return len(c.jobs) }
