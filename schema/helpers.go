package schema

import "strings"

// DefaultLanguageColor is used for languages without a palette entry.
const DefaultLanguageColor = "#cccccc"

// languageColors is the palette used by the language bar and chart.
var languageColors = map[string]string{
	"JavaScript": "#f7df1e",
	"TypeScript": "#007acc",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"C++":        "#f34b7d",
	"C":          "#555555",
	"C#":         "#178600",
	"Shell":      "#89e051",
	"Go":         "#00ADD8",
	"Ruby":       "#701516",
	"PHP":        "#4F5D95",
	"Swift":      "#ffac45",
	"Kotlin":     "#F18E33",
	"Rust":       "#dea584",
	"Vue":        "#42b883",
	"Svelte":     "#ff3e00",
}

// LanguageColor returns the hex color for a language, or DefaultLanguageColor.
func LanguageColor(name string) string {
	if c, ok := languageColors[name]; ok {
		return c
	}
	return DefaultLanguageColor
}

// NormalizeHandle trims surrounding whitespace and a leading '@' from a handle.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// DisplayName returns the profile's name, falling back to its login.
func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return p.Login
}

// HasName reports whether the profile has a display name distinct from its login.
func (p Profile) HasName() bool {
	return strings.TrimSpace(p.Name) != ""
}

// CardTopics returns at most MaxCardTopics topics for a project card.
func (p Project) CardTopics() []string {
	if len(p.Topics) > MaxCardTopics {
		return p.Topics[:MaxCardTopics]
	}
	return p.Topics
}

// CardDescription returns the description or a placeholder when it is empty.
func (p Project) CardDescription() string {
	if d := strings.TrimSpace(p.Description); d != "" {
		return d
	}
	return "No description provided."
}

// TotalStars sums the star count across projects.
func TotalStars(projects []Project) int {
	total := 0
	for _, p := range projects {
		total += p.Stars
	}
	return total
}

// TotalForks sums the fork count across projects.
func TotalForks(projects []Project) int {
	total := 0
	for _, p := range projects {
		total += p.Forks
	}
	return total
}
