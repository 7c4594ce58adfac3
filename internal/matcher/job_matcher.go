package matcher

import (
	"sort"
	"strings"

	"skillmatch-go/internal/constants"
	"skillmatch-go/internal/types"
)

// JobMatcher 将技能列表与岗位目录进行匹配
// 纯函数语义：同样的输入总是得到同样的输出
type JobMatcher struct {
	skills []catalogSkill
	jobs   []types.JobProfile
}

// NewJobMatcher 创建岗位匹配器
// skills 为技能目录，仅在没有岗位标题命中时用于从JD中推断要求技能
func NewJobMatcher(skills []string, jobs []types.JobProfile) *JobMatcher {
	return &JobMatcher{
		skills: dedupeSkills(skills),
		jobs:   jobs,
	}
}

// Match 计算匹配结果，按分数降序返回
// 先按岗位标题匹配；一个都没命中时，才从JD推断技能并构造一个合成岗位
func (m *JobMatcher) Match(skills []string, jobDescription string) []types.JobMatch {
	description := strings.ToLower(jobDescription)
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[strings.ToLower(s)] = struct{}{}
	}

	matches := make([]types.JobMatch, 0, 1)
	for _, job := range m.jobs {
		if !strings.Contains(description, strings.ToLower(job.Title)) {
			continue
		}
		matches = append(matches, evaluate(job.Title, job.RequiredSkills, have))
	}

	if len(matches) == 0 {
		matches = append(matches, evaluate(constants.CustomJobTitle, m.inferSkills(description), have))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// inferSkills 扫描技能目录，返回在JD（已小写）中出现的技能
func (m *JobMatcher) inferSkills(description string) []string {
	out := make([]string, 0)
	for _, s := range m.skills {
		if strings.Contains(description, s.lower) {
			out = append(out, s.name)
		}
	}
	return out
}

// evaluate 将要求技能划分为已匹配和缺失两部分并计算覆盖率
func evaluate(title string, required []string, have map[string]struct{}) types.JobMatch {
	match := types.JobMatch{
		Title:         title,
		MatchedSkills: make([]string, 0, len(required)),
		MissingSkills: make([]string, 0, len(required)),
	}
	for _, r := range required {
		if _, ok := have[strings.ToLower(r)]; ok {
			match.MatchedSkills = append(match.MatchedSkills, r)
		} else {
			match.MissingSkills = append(match.MissingSkills, r)
		}
	}
	if len(required) > 0 {
		match.Score = float64(len(match.MatchedSkills)) / float64(len(required))
	}
	return match
}
