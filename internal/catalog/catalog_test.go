package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkills_Catalog(t *testing.T) {
	skills := Skills()
	require.Len(t, skills, 20)

	counts := map[SkillCategory]int{}
	for _, s := range skills {
		counts[s.Category]++
	}
	assert.Equal(t, 8, counts[CategoryTechnical])
	assert.Equal(t, 6, counts[CategorySoft])
	assert.Equal(t, 6, counts[CategoryIndustry])

	// Returned slice is a copy
	skills[0].Name = "changed"
	assert.Equal(t, "React", Skills()[0].Name)
}

func TestSearchSkills(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		selected []string
		expected []string
	}{
		{
			name:     "case insensitive substring",
			query:    "SCRIPT",
			expected: []string{"TypeScript"},
		},
		{
			name:     "excludes selected",
			query:    "a",
			selected: []string{"Java", "AWS"},
			expected: []string{"React", "Leadership", "Communication", "Teamwork", "Project Management", "Critical Thinking", "Agile/Scrum", "Machine Learning", "Data Analysis"},
		},
		{
			name:     "empty query returns all unselected",
			query:    "",
			selected: []string{"React"},
		},
		{
			name:     "no matches",
			query:    "cobol",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := SearchSkills(tt.query, tt.selected)
			names := make([]string, 0, len(results))
			for _, s := range results {
				names = append(names, s.Name)
			}
			if tt.expected == nil {
				assert.Len(t, names, 20-len(tt.selected))
				assert.NotContains(t, names, "React")
				return
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestSearchJobTitles(t *testing.T) {
	assert.Equal(t, []string{"Data Scientist", "Data Analyst", "Database Administrator"}, SearchJobTitles("data"))
	assert.Equal(t, []string{"Site Reliability Engineer"}, SearchJobTitles("reliab"))
	assert.Len(t, SearchJobTitles(""), 20)
	assert.Empty(t, SearchJobTitles("astronaut"))
}

func TestAddSkill(t *testing.T) {
	selected := []string{"Go"}

	assert.Equal(t, []string{"Go", "Rust"}, AddSkill(selected, "  Rust "))
	assert.Equal(t, []string{"Go"}, AddSkill(selected, "Go"))
	assert.Equal(t, []string{"Go"}, AddSkill(selected, "   "))
	assert.Equal(t, []string{"Go"}, selected, "input must not be modified")
	assert.Equal(t, []string{"AWS"}, AddSkill(nil, "AWS"))
}

func TestRemoveSkill(t *testing.T) {
	selected := []string{"Go", "Rust", "AWS"}

	assert.Equal(t, []string{"Go", "AWS"}, RemoveSkill(selected, "Rust"))
	assert.Equal(t, selected, RemoveSkill(selected, "Python"))
	assert.Equal(t, []string{"Go", "Rust", "AWS"}, selected)
}

func TestStaticTips(t *testing.T) {
	tips := StaticTips()
	require.Len(t, tips, 4)

	assert.Equal(t, "Add more technical keywords", tips[0].Title)
	assert.Equal(t, TipATS, tips[0].Type)
	assert.Equal(t, SeverityHigh, tips[0].Severity)
	assert.Equal(t, TipClarity, tips[1].Type)
	assert.Equal(t, TipUX, tips[2].Type)
	assert.Equal(t, "Match job title format", tips[3].Title)

	for i, tip := range tips {
		assert.NotEmpty(t, tip.Description, "tip %d", i)
	}
}
