package matcher

import (
	"sort"
	"strings"

	"skillmatch-go/internal/nlp"
	"skillmatch-go/internal/types"
)

// catalogSkill 目录技能，预先计算好小写形式
type catalogSkill struct {
	name  string
	lower string
}

// SkillMatcher 基于技能目录的词典匹配器
// 构造后只读，可被并发调用
type SkillMatcher struct {
	skills    []catalogSkill
	tokenizer *nlp.Tokenizer
	scorer    ConfidenceScorer
}

// SkillMatcherOption SkillMatcher 的配置选项
type SkillMatcherOption func(*SkillMatcher)

// WithScorer 替换置信度打分器
func WithScorer(scorer ConfidenceScorer) SkillMatcherOption {
	return func(m *SkillMatcher) {
		if scorer != nil {
			m.scorer = scorer
		}
	}
}

// WithTokenizer 替换分词器
func WithTokenizer(tokenizer *nlp.Tokenizer) SkillMatcherOption {
	return func(m *SkillMatcher) {
		if tokenizer != nil {
			m.tokenizer = tokenizer
		}
	}
}

// NewSkillMatcher 使用有序的技能目录创建匹配器
// 忽略大小写重复的目录项只保留第一个
func NewSkillMatcher(catalog []string, options ...SkillMatcherOption) *SkillMatcher {
	m := &SkillMatcher{
		skills:    dedupeSkills(catalog),
		tokenizer: nlp.DefaultTokenizer(),
		scorer:    NewDefaultScorer(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Extract 对原始文本分词后执行匹配
func (m *SkillMatcher) Extract(text string) []types.Skill {
	return m.ExtractNormalized(m.tokenizer.Normalize(text))
}

// ExtractNormalized 对已归一化的文本执行匹配
// 结果按置信度降序，同分时保持目录顺序
func (m *SkillMatcher) ExtractNormalized(n nlp.Normalized) []types.Skill {
	skills := make([]types.Skill, 0)
	if n.Text == "" && len(n.Tokens) == 0 {
		return skills
	}

	for _, s := range m.skills {
		if !present(s.lower, n) {
			continue
		}
		skills = append(skills, types.Skill{
			Name:       s.name,
			Confidence: clamp01(m.scorer.Score(s.name, n.Text)),
		})
	}

	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Confidence > skills[j].Confidence
	})
	return skills
}

// present 全文子串命中，或者作为某个词元的子串命中（例如 "go" 命中 "golang"）
func present(skill string, n nlp.Normalized) bool {
	if strings.Contains(n.Text, skill) {
		return true
	}
	for _, tok := range n.Tokens {
		if strings.Contains(tok, skill) {
			return true
		}
	}
	return false
}

func dedupeSkills(catalog []string) []catalogSkill {
	seen := make(map[string]struct{}, len(catalog))
	out := make([]catalogSkill, 0, len(catalog))
	for _, name := range catalog {
		lower := strings.ToLower(name)
		if lower == "" {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, catalogSkill{name: name, lower: lower})
	}
	return out
}
