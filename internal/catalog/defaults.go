package catalog

import "skillmatch-go/internal/types"

// defaultSkills 内置技能目录，顺序即匹配顺序
var defaultSkills = []string{
	"Python", "Java", "JavaScript", "C++", "C#", "Ruby", "PHP", "Swift", "Kotlin", "Go",
	"React", "Angular", "Vue.js", "Node.js", "Express", "Django", "Flask", "Spring", "ASP.NET",
	"HTML", "CSS", "SQL", "NoSQL", "MongoDB", "PostgreSQL", "MySQL", "Oracle", "Redis",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git", "GitHub", "GitLab",
	"Machine Learning", "Deep Learning", "NLP", "Computer Vision", "Data Science", "AI",
	"TensorFlow", "PyTorch", "Scikit-learn", "Pandas", "NumPy", "R", "Tableau", "Power BI",
	"Agile", "Scrum", "Kanban", "DevOps", "CI/CD", "Test Driven Development", "RESTful API",
	"GraphQL", "Microservices", "Serverless", "Linux", "Windows", "MacOS", "iOS", "Android",
}

// defaultJobs 内置岗位目录
var defaultJobs = []types.JobProfile{
	{
		Title:          "Frontend Developer",
		RequiredSkills: []string{"JavaScript", "HTML", "CSS", "React", "Angular", "Vue.js", "Git"},
	},
	{
		Title:          "Backend Developer",
		RequiredSkills: []string{"Python", "Java", "Node.js", "SQL", "NoSQL", "RESTful API", "Git"},
	},
	{
		Title:          "Full Stack Developer",
		RequiredSkills: []string{"JavaScript", "HTML", "CSS", "React", "Node.js", "SQL", "Git"},
	},
	{
		Title:          "Data Scientist",
		RequiredSkills: []string{"Python", "R", "Machine Learning", "Deep Learning", "Pandas", "NumPy", "SQL"},
	},
	{
		Title:          "DevOps Engineer",
		RequiredSkills: []string{"Linux", "Docker", "Kubernetes", "AWS", "CI/CD", "Git", "Jenkins"},
	},
}
