package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageColor(t *testing.T) {
	assert.Equal(t, "#f7df1e", LanguageColor("JavaScript"))
	assert.Equal(t, "#178600", LanguageColor("C#"))
	assert.Equal(t, DefaultLanguageColor, LanguageColor("Brainfuck"))
	assert.Equal(t, DefaultLanguageColor, LanguageColor(""))
}

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"octocat", "octocat"},
		{"  octocat \n", "octocat"},
		{"@octocat", "octocat"},
		{" @torvalds ", "torvalds"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHandle(tt.input))
		})
	}
}

func TestProfileDisplayName(t *testing.T) {
	withName := Profile{Login: "octocat", Name: "The Octocat"}
	assert.Equal(t, "The Octocat", withName.DisplayName())
	assert.True(t, withName.HasName())

	blankName := Profile{Login: "octocat", Name: "  "}
	assert.Equal(t, "octocat", blankName.DisplayName())
	assert.False(t, blankName.HasName())
}

func TestProjectCardTopics(t *testing.T) {
	p := Project{Topics: []string{"a", "b", "c", "d", "e", "f"}}
	assert.Equal(t, []string{"a", "b", "c", "d"}, p.CardTopics())

	short := Project{Topics: []string{"cli"}}
	assert.Equal(t, []string{"cli"}, short.CardTopics())

	none := Project{}
	assert.Empty(t, none.CardTopics())
}

func TestProjectCardDescription(t *testing.T) {
	assert.Equal(t, "No description provided.", Project{}.CardDescription())
	assert.Equal(t, "A CLI", Project{Description: " A CLI "}.CardDescription())
}

func TestTotals(t *testing.T) {
	projects := []Project{
		{Stars: 10, Forks: 2},
		{Stars: 5, Forks: 1},
		{},
	}
	assert.Equal(t, 15, TotalStars(projects))
	assert.Equal(t, 3, TotalForks(projects))
	assert.Equal(t, 0, TotalStars(nil))
}

func TestExploreResultDegraded(t *testing.T) {
	r := &ExploreResult{}
	assert.False(t, r.Degraded())
	r.LanguageFailures = 2
	assert.True(t, r.Degraded())
}
