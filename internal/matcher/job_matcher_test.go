package matcher

import (
	"strings"
	"testing"

	"skillmatch-go/internal/catalog"
	"skillmatch-go/internal/constants"
	"skillmatch-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultJobMatcher() *JobMatcher {
	c := catalog.Default()
	return NewJobMatcher(c.Skills(), c.Jobs())
}

func TestMatchBackendDeveloperScenario(t *testing.T) {
	m := defaultJobMatcher()
	matches := m.Match([]string{"Python", "SQL"}, "We need a Backend Developer with Python and SQL skills")

	require.Len(t, matches, 1)
	got := matches[0]
	assert.Equal(t, "Backend Developer", got.Title)
	assert.InDelta(t, 2.0/7.0, got.Score, 1e-12)
	assert.Equal(t, []string{"Python", "SQL"}, got.MatchedSkills)
	assert.Equal(t, []string{"Java", "Node.js", "NoSQL", "RESTful API", "Git"}, got.MissingSkills)
}

func TestMatchExactRequiredSkillsScoresOne(t *testing.T) {
	m := defaultJobMatcher()
	for _, job := range catalog.Default().Jobs() {
		matches := m.Match(job.RequiredSkills, "Hiring: "+job.Title)
		var found *types.JobMatch
		for i := range matches {
			if matches[i].Title == job.Title {
				found = &matches[i]
			}
		}
		require.NotNilf(t, found, "岗位 %s 应被标题匹配", job.Title)
		assert.Equal(t, 1.0, found.Score)
		assert.Empty(t, found.MissingSkills)
		assert.Equal(t, job.RequiredSkills, found.MatchedSkills)
	}
}

func TestMatchEmptySkillsScoresZero(t *testing.T) {
	m := defaultJobMatcher()
	for _, job := range catalog.Default().Jobs() {
		matches := m.Match(nil, strings.ToUpper(job.Title)+" wanted")
		require.NotEmpty(t, matches)
		for _, got := range matches {
			if got.Title != job.Title {
				continue
			}
			assert.Equal(t, 0.0, got.Score)
			assert.Empty(t, got.MatchedSkills)
			assert.Equal(t, job.RequiredSkills, got.MissingSkills)
		}
	}
}

// 输入技能大小写不敏感
func TestMatchCaseInsensitiveSkills(t *testing.T) {
	m := defaultJobMatcher()
	matches := m.Match([]string{"python", "NODE.JS", "git"}, "backend developer")
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"Python", "Node.js", "Git"}, matches[0].MatchedSkills)
}

func TestMatchMultipleTitlesSortedByScore(t *testing.T) {
	m := defaultJobMatcher()
	desc := "Frontend Developer or Full Stack Developer"
	matches := m.Match([]string{"JavaScript", "HTML", "CSS", "React", "Node.js", "SQL"}, desc)

	require.Len(t, matches, 2)
	// Full Stack: 6/7，Frontend: 4/7
	assert.Equal(t, "Full Stack Developer", matches[0].Title)
	assert.InDelta(t, 6.0/7.0, matches[0].Score, 1e-12)
	assert.Equal(t, "Frontend Developer", matches[1].Title)
	assert.InDelta(t, 4.0/7.0, matches[1].Score, 1e-12)
}

func TestMatchFallbackInfersSkillsFromDescription(t *testing.T) {
	m := NewJobMatcher([]string{"Docker", "Kubernetes", "Terraform"}, catalog.Default().Jobs())
	matches := m.Match([]string{"docker"}, "Platform role: Kubernetes and Docker required")

	require.Len(t, matches, 1)
	got := matches[0]
	assert.Equal(t, constants.CustomJobTitle, got.Title)
	assert.Equal(t, []string{"Docker"}, got.MatchedSkills)
	assert.Equal(t, []string{"Kubernetes"}, got.MissingSkills)
	assert.Equal(t, 0.5, got.Score)
}

// 只要有标题命中就不走推断路径，两条路径不会合并
func TestMatchFallbackOnlyWhenNoTitleMatches(t *testing.T) {
	m := defaultJobMatcher()
	matches := m.Match([]string{"Docker"}, "DevOps Engineer with Docker, Terraform and Python")
	require.Len(t, matches, 1)
	assert.Equal(t, "DevOps Engineer", matches[0].Title)
}

func TestMatchNoTitleNoSkills(t *testing.T) {
	m := NewJobMatcher([]string{"Kubernetes", "Terraform"}, catalog.Default().Jobs())
	matches := m.Match([]string{"Python"}, "Looking for a friendly barista")

	require.Len(t, matches, 1)
	got := matches[0]
	assert.Equal(t, constants.CustomJobTitle, got.Title)
	assert.Equal(t, 0.0, got.Score)
	assert.NotNil(t, got.MatchedSkills)
	assert.NotNil(t, got.MissingSkills)
	assert.Empty(t, got.MatchedSkills)
	assert.Empty(t, got.MissingSkills)
}

func TestMatchJobWithNoRequiredSkills(t *testing.T) {
	m := NewJobMatcher(nil, []types.JobProfile{{Title: "Intern"}})
	matches := m.Match([]string{"Go"}, "Summer Intern")
	require.Len(t, matches, 1)
	assert.Equal(t, "Intern", matches[0].Title)
	assert.Equal(t, 0.0, matches[0].Score)
}

// matched 与 missing 互不重叠，且并集等于要求技能
func TestMatchPartitionInvariant(t *testing.T) {
	m := defaultJobMatcher()
	desc := "Data Scientist, Backend Developer, DevOps Engineer"
	matches := m.Match([]string{"Python", "sql", "Docker", "Pandas", "Unknown"}, desc)
	require.Len(t, matches, 3)

	required := make(map[string][]string)
	for _, j := range catalog.Default().Jobs() {
		required[j.Title] = j.RequiredSkills
	}

	for _, got := range matches {
		union := make(map[string]int)
		for _, s := range got.MatchedSkills {
			union[strings.ToLower(s)]++
		}
		for _, s := range got.MissingSkills {
			union[strings.ToLower(s)]++
		}
		want := required[got.Title]
		assert.Len(t, union, len(want))
		for _, s := range want {
			assert.Equalf(t, 1, union[strings.ToLower(s)], "%s: 技能 %s 应恰好出现在一侧", got.Title, s)
		}
	}
}

func TestMatchIdempotent(t *testing.T) {
	m := defaultJobMatcher()
	skills := []string{"Python", "Docker", "Git"}
	desc := "Full Stack Developer familiar with DevOps Engineer practices"
	first := m.Match(skills, desc)
	second := m.Match(skills, desc)
	assert.Equal(t, first, second)
}
