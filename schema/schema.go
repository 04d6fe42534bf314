// Package schema has models, constants and presentation helpers for all parts of devscope.
package schema

import "time"

// LanguageMap maps a language name to the number of bytes attributed to it
// within a single project, as reported by the upstream API.
type LanguageMap map[string]int64

// LanguageStat is one entry of a language breakdown.
// Percentage is kept at full precision; renderers round it for display.
type LanguageStat struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// Profile holds the fields of a user profile that devscope consumes.
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Bio         string    `json:"bio"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Blog        string    `json:"blog"`
	Twitter     string    `json:"twitter_username"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"public_repos"`
	CreatedAt   time.Time `json:"created_at"`
}

// Project holds the fields of a public repository that devscope consumes.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	HTMLURL     string    `json:"html_url"`
	Homepage    string    `json:"homepage"`
	Topics      []string  `json:"topics"`
	Fork        bool      `json:"fork"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExploreRequest describes a single handle lookup.
type ExploreRequest struct {
	Handle  string // Handle to look up, trimmed before use
	TopN    int    // Maximum number of ranked languages (<= 0 means DefaultTopLanguages)
	Workers int    // Concurrent language fetches (<= 0 means all at once)
}

// ExploreResult is everything a single handle lookup produces.
type ExploreResult struct {
	Profile          Profile                `json:"profile"`
	Projects         []Project              `json:"projects"`
	Languages        []LanguageStat         `json:"languages"`
	AllLanguages     []LanguageStat         `json:"all_languages"`
	ProjectLanguages map[string]LanguageMap `json:"project_languages"`
	TotalBytes       int64                  `json:"total_bytes"`
	LanguageFailures int                    `json:"language_failures"`
	FailedProjects   []string               `json:"failed_projects"`
	FetchedAt        time.Time              `json:"fetched_at"`
	Duration         time.Duration          `json:"duration_ns"`
}

// Degraded reports whether any project's language data could not be retrieved.
func (r *ExploreResult) Degraded() bool {
	return r.LanguageFailures > 0
}
