// Package agg has aggregation logic for per-project language data.
package agg

import (
	"github.com/huangsam/devscope/core/algo"
	"github.com/huangsam/devscope/schema"
)

// Aggregate reduces per-project language byte counts into the top 'topN'
// languages by share of total bytes. A non-positive topN selects
// schema.DefaultTopLanguages. When there are no bytes at all the result is
// empty, never a division by zero.
func Aggregate(maps []schema.LanguageMap, topN int) []schema.LanguageStat {
	if topN <= 0 {
		topN = schema.DefaultTopLanguages
	}
	return algo.RankLanguages(computeShares(maps), topN)
}

// Breakdown is Aggregate without truncation: every observed language is returned.
func Breakdown(maps []schema.LanguageMap) []schema.LanguageStat {
	return algo.RankLanguages(computeShares(maps), -1)
}

// TotalBytes sums every byte count across all maps, ignoring negative values.
func TotalBytes(maps []schema.LanguageMap) int64 {
	_, total := accumulate(maps)
	return total
}

// computeShares turns accumulated byte counts into unsorted percentages.
func computeShares(maps []schema.LanguageMap) []schema.LanguageStat {
	totals, total := accumulate(maps)
	if total == 0 {
		return []schema.LanguageStat{}
	}

	stats := make([]schema.LanguageStat, 0, len(totals))
	for name, bytes := range totals {
		stats = append(stats, schema.LanguageStat{
			Name:       name,
			Percentage: 100 * float64(bytes) / float64(total),
		})
	}
	return stats
}

// accumulate sums bytes per language and overall. Negative counts contribute nothing.
func accumulate(maps []schema.LanguageMap) (map[string]int64, int64) {
	totals := make(map[string]int64)
	var total int64
	for _, m := range maps {
		for name, bytes := range m {
			if bytes < 0 {
				bytes = 0
			}
			totals[name] += bytes
			total += bytes
		}
	}
	return totals, total
}
