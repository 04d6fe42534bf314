// Package parquet provides data structures and functions for exporting devscope
// lookup results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/huangsam/devscope/schema"
	"github.com/parquet-go/parquet-go"
)

// LanguageRow is one ranked entry of a handle's language breakdown.
type LanguageRow struct {
	// Handle is the login the breakdown belongs to
	Handle string `parquet:"handle,snappy"`

	// Rank is the 1-based position in the breakdown
	Rank int32 `parquet:"rank,snappy"`

	// Language is the language name as reported upstream
	Language string `parquet:"language,snappy"`

	// Percentage is the full-precision share of all bytes (0-100)
	Percentage float64 `parquet:"percentage,snappy"`

	// Label is the share label (dominant, major, minor, trace)
	Label string `parquet:"label,snappy"`

	// FetchedAt is when the lookup completed
	FetchedAt time.Time `parquet:"fetched_at,snappy"`
}

// ProjectRow is one public project of a handle.
type ProjectRow struct {
	Handle      string    `parquet:"handle,snappy"`
	ProjectID   int64     `parquet:"project_id,snappy"`
	Name        string    `parquet:"name,snappy"`
	Description *string   `parquet:"description,optional,snappy"`
	Language    *string   `parquet:"language,optional,snappy"`
	Stars       int32     `parquet:"stars,snappy"`
	Forks       int32     `parquet:"forks,snappy"`
	Fork        bool      `parquet:"fork,snappy"`
	URL         string    `parquet:"url,snappy"`
	UpdatedAt   time.Time `parquet:"updated_at,snappy"`
}

// ProjectLanguageRow is the byte count of one language within one project.
// A project whose languages could not be retrieved has a single row with a
// nil Language and Degraded set.
type ProjectLanguageRow struct {
	Handle   string  `parquet:"handle,snappy"`
	Project  string  `parquet:"project,snappy"`
	Language *string `parquet:"language,optional,snappy"`
	Bytes    int64   `parquet:"bytes,snappy"`
	Degraded bool    `parquet:"degraded,snappy"`
}

// writeRows writes a slice of rows to a new Parquet file at outputPath.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteLanguagesParquet writes a slice of LanguageRow structs to a Parquet file.
func WriteLanguagesParquet(data []LanguageRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteProjectsParquet writes a slice of ProjectRow structs to a Parquet file.
func WriteProjectsParquet(data []ProjectRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteProjectLanguagesParquet writes a slice of ProjectLanguageRow structs to a Parquet file.
func WriteProjectLanguagesParquet(data []ProjectLanguageRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// ConvertLanguages converts a ranked breakdown to LanguageRow records.
func ConvertLanguages(handle string, stats []schema.LanguageStat, fetchedAt time.Time) []LanguageRow {
	ranked := schema.RankLanguages(stats)
	result := make([]LanguageRow, len(ranked))
	for i, r := range ranked {
		result[i] = LanguageRow{
			Handle:     handle,
			Rank:       int32(r.Rank),
			Language:   r.Name,
			Percentage: r.Percentage,
			Label:      r.Label,
			FetchedAt:  fetchedAt,
		}
	}
	return result
}

// ConvertProjects converts projects to ProjectRow records. Empty descriptions
// and languages become nulls.
func ConvertProjects(handle string, projects []schema.Project) []ProjectRow {
	result := make([]ProjectRow, len(projects))
	for i, p := range projects {
		result[i] = ProjectRow{
			Handle:      handle,
			ProjectID:   p.ID,
			Name:        p.Name,
			Description: optionalString(p.Description),
			Language:    optionalString(p.Language),
			Stars:       int32(p.Stars),
			Forks:       int32(p.Forks),
			Fork:        p.Fork,
			URL:         p.HTMLURL,
			UpdatedAt:   p.UpdatedAt,
		}
	}
	return result
}

// ConvertProjectLanguages flattens a result's per-project language maps into
// ProjectLanguageRow records, ordered by project then language.
func ConvertProjectLanguages(result *schema.ExploreResult) []ProjectLanguageRow {
	failed := make(map[string]struct{}, len(result.FailedProjects))
	for _, name := range result.FailedProjects {
		failed[name] = struct{}{}
	}

	var rows []ProjectLanguageRow
	for _, p := range result.Projects {
		if _, ok := failed[p.Name]; ok {
			rows = append(rows, ProjectLanguageRow{Handle: result.Profile.Login, Project: p.Name, Degraded: true})
			continue
		}
		langs := result.ProjectLanguages[p.Name]
		names := make([]string, 0, len(langs))
		for name := range langs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rows = append(rows, ProjectLanguageRow{
				Handle:   result.Profile.Login,
				Project:  p.Name,
				Language: optionalString(name),
				Bytes:    langs[name],
			})
		}
	}
	return rows
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
