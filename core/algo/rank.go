// Package algo has ranking logic for language breakdowns.
package algo

import (
	"sort"

	"github.com/huangsam/devscope/schema"
)

// RankLanguages sorts languages by percentage in descending order, breaking
// ties by ascending name, and returns the top 'limit' entries. If limit is
// greater than the number of languages, all languages are returned in sorted order.
func RankLanguages(stats []schema.LanguageStat, limit int) []schema.LanguageStat {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Percentage != stats[j].Percentage {
			return stats[i].Percentage > stats[j].Percentage
		}
		return stats[i].Name < stats[j].Name
	})
	if limit >= 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

// RankProjects sorts projects by stars in descending order, breaking ties by
// ascending name, and returns the top 'limit' projects. A non-positive limit
// keeps every project.
func RankProjects(projects []schema.Project, limit int) []schema.Project {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Stars != projects[j].Stars {
			return projects[i].Stars > projects[j].Stars
		}
		return projects[i].Name < projects[j].Name
	})
	if limit > 0 && len(projects) > limit {
		return projects[:limit]
	}
	return projects
}
