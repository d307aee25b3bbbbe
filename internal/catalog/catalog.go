// Package catalog holds the static data behind the resume editor's pickers:
// predefined skills, popular job titles and improvement tips.
package catalog

import "strings"

// SkillCategory groups skills in the skill picker
type SkillCategory string

const (
	// CategoryTechnical covers languages, frameworks and platforms
	CategoryTechnical SkillCategory = "technical"
	// CategorySoft covers interpersonal skills
	CategorySoft SkillCategory = "soft"
	// CategoryIndustry covers practices and domains
	CategoryIndustry SkillCategory = "industry"
)

// Skill is a selectable skill
type Skill struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
}

var predefinedSkills = []Skill{
	{ID: "1", Name: "React", Category: CategoryTechnical},
	{ID: "2", Name: "TypeScript", Category: CategoryTechnical},
	{ID: "3", Name: "Node.js", Category: CategoryTechnical},
	{ID: "4", Name: "Python", Category: CategoryTechnical},
	{ID: "5", Name: "Java", Category: CategoryTechnical},
	{ID: "6", Name: "AWS", Category: CategoryTechnical},
	{ID: "7", Name: "Docker", Category: CategoryTechnical},
	{ID: "8", Name: "Kubernetes", Category: CategoryTechnical},

	{ID: "9", Name: "Leadership", Category: CategorySoft},
	{ID: "10", Name: "Communication", Category: CategorySoft},
	{ID: "11", Name: "Problem Solving", Category: CategorySoft},
	{ID: "12", Name: "Teamwork", Category: CategorySoft},
	{ID: "13", Name: "Project Management", Category: CategorySoft},
	{ID: "14", Name: "Critical Thinking", Category: CategorySoft},

	{ID: "15", Name: "Agile/Scrum", Category: CategoryIndustry},
	{ID: "16", Name: "DevOps", Category: CategoryIndustry},
	{ID: "17", Name: "Machine Learning", Category: CategoryIndustry},
	{ID: "18", Name: "Data Analysis", Category: CategoryIndustry},
	{ID: "19", Name: "UI/UX Design", Category: CategoryIndustry},
	{ID: "20", Name: "Cybersecurity", Category: CategoryIndustry},
}

var popularJobTitles = []string{
	"Software Engineer",
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"Data Scientist",
	"Product Manager",
	"UX/UI Designer",
	"DevOps Engineer",
	"Machine Learning Engineer",
	"Software Architect",
	"Technical Lead",
	"Engineering Manager",
	"Data Analyst",
	"Cloud Engineer",
	"Mobile Developer",
	"Security Engineer",
	"Site Reliability Engineer",
	"Quality Assurance Engineer",
	"Database Administrator",
	"Business Analyst",
}

// Skills returns a copy of the predefined skills in display order
func Skills() []Skill {
	out := make([]Skill, len(predefinedSkills))
	copy(out, predefinedSkills)
	return out
}

// JobTitles returns a copy of the popular job titles in display order
func JobTitles() []string {
	out := make([]string, len(popularJobTitles))
	copy(out, popularJobTitles)
	return out
}

// SearchSkills returns predefined skills whose name contains query
// (case-insensitive) and that are not already selected. Order is preserved.
func SearchSkills(query string, selected []string) []Skill {
	taken := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		taken[name] = struct{}{}
	}

	needle := strings.ToLower(query)
	out := make([]Skill, 0, len(predefinedSkills))
	for _, skill := range predefinedSkills {
		if _, ok := taken[skill.Name]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(skill.Name), needle) {
			out = append(out, skill)
		}
	}
	return out
}

// SearchJobTitles returns popular job titles containing query (case-insensitive)
func SearchJobTitles(query string) []string {
	needle := strings.ToLower(query)
	out := make([]string, 0, len(popularJobTitles))
	for _, title := range popularJobTitles {
		if strings.Contains(strings.ToLower(title), needle) {
			out = append(out, title)
		}
	}
	return out
}

// AddSkill appends name to selected after trimming it. Blank names and names
// already selected leave the selection unchanged. The input slice is not modified.
func AddSkill(selected []string, name string) []string {
	name = strings.TrimSpace(name)
	out := append([]string(nil), selected...)
	if name == "" {
		return out
	}
	for _, s := range selected {
		if s == name {
			return out
		}
	}
	return append(out, name)
}

// RemoveSkill returns selected without name. The input slice is not modified.
func RemoveSkill(selected []string, name string) []string {
	out := make([]string, 0, len(selected))
	for _, s := range selected {
		if s != name {
			out = append(out, s)
		}
	}
	return out
}
