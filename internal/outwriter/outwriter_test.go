package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Output:    schema.TextOut,
		Precision: 1,
		Width:     120,
		UseColors: false,
		UseEmojis: false,
	}
}

func testResult() *schema.ExploreResult {
	return &schema.ExploreResult{
		Profile: schema.Profile{
			Login:       "octocat",
			Name:        "The Octocat",
			Bio:         "Mascot",
			Location:    "San Francisco",
			HTMLURL:     "https://github.com/octocat",
			PublicRepos: 8,
			Followers:   12345,
			CreatedAt:   time.Now().AddDate(-3, 0, 0),
		},
		Projects: []schema.Project{
			{Name: "hello-world", Language: "Go", Stars: 1500, Forks: 20, Topics: []string{"demo"}, UpdatedAt: time.Now().Add(-time.Hour)},
			{Name: "spoon-knife", Stars: 3, Fork: true},
			{Name: "broken", Language: "C"},
		},
		Languages: []schema.LanguageStat{
			{Name: "Go", Percentage: 75},
			{Name: "Shell", Percentage: 25},
		},
		AllLanguages: []schema.LanguageStat{
			{Name: "Go", Percentage: 75},
			{Name: "Shell", Percentage: 25},
		},
		ProjectLanguages: map[string]schema.LanguageMap{
			"hello-world": {"Go": 300, "Shell": 100},
			"spoon-knife": {},
			"broken":      {},
		},
		TotalBytes:       400,
		LanguageFailures: 1,
		FailedProjects:   []string{"broken"},
		FetchedAt:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Duration:         1500 * time.Millisecond,
	}
}

func TestLogExploreHeader(t *testing.T) {
	cfg := testConfig()
	var buf bytes.Buffer
	LogExploreHeader(&buf, testResult().Profile, cfg)

	out := buf.String()
	assert.Contains(t, out, "Profile: The Octocat (@octocat)")
	assert.Contains(t, out, "3 years ago")
	assert.Contains(t, out, "12,345 followers")
	assert.NotContains(t, out, "🔎")

	cfg.UseEmojis = true
	buf.Reset()
	LogExploreHeader(&buf, schema.Profile{Login: "ghost"}, cfg)
	assert.Contains(t, buf.String(), "🔎 Profile: ghost\n")
	assert.Contains(t, buf.String(), "Joined: unknown")
}

func TestWriteLanguageTable(t *testing.T) {
	cfg := testConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeLanguageTable(&buf, testResult().Languages, cfg, fmtFloat))

	out := buf.String()
	assert.Contains(t, out, "LANGUAGE")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Dominant")
	assert.Contains(t, out, "Major")
	assert.Contains(t, out, strings.Repeat("█", 15)+strings.Repeat("░", 5))
}

func TestWriteLanguageTable_Empty(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	var buf bytes.Buffer
	require.NoError(t, writeLanguageTable(&buf, nil, testConfig(), fmtFloat))
	assert.Equal(t, "No language data available.\n", buf.String())
}

func TestWriteLanguageSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLanguageSummary(&buf, testResult(), testConfig()))

	out := buf.String()
	assert.Contains(t, out, "Showing top 2 of 2 languages across 3 projects (400 B of code)")
	assert.Contains(t, out, "Warning: language data unavailable for 1 of 3 projects: broken")
	assert.Contains(t, out, "Lookup completed in 1.5s.")
}

func TestWriteLanguagesCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	var buf bytes.Buffer
	require.NoError(t, writeLanguagesCSV(&buf, testResult().Languages, fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"rank", "language", "percentage", "label", "color"}, records[0])
	assert.Equal(t, []string{"1", "Go", "75.00", "Dominant", "#00ADD8"}, records[1])
	assert.Equal(t, []string{"2", "Shell", "25.00", "Major", "#89e051"}, records[2])
}

func TestWriteLanguagesJSON(t *testing.T) {
	result := testResult()
	result.FailedProjects = nil
	result.LanguageFailures = 0

	var buf bytes.Buffer
	require.NoError(t, writeLanguagesJSON(&buf, result))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "octocat", decoded["handle"])
	assert.Equal(t, float64(400), decoded["total_bytes"])
	assert.Equal(t, []any{}, decoded["failed_projects"])

	langs := decoded["languages"].([]any)
	require.Len(t, langs, 2)
	first := langs[0].(map[string]any)
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "Go", first["name"])
	assert.Equal(t, 75.0, first["percentage"])
	assert.Equal(t, "Dominant", first["label"])
}

func TestWriteProjectTable(t *testing.T) {
	cfg := testConfig()
	cfg.Detail = true

	var buf bytes.Buffer
	require.NoError(t, writeProjectTable(&buf, testResult().Projects, cfg))

	out := buf.String()
	assert.Contains(t, out, "hello-world")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "spoon-knife (fork)")
	assert.Contains(t, out, "No description provided.")
	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "UPDATED")
}

func TestWriteProjectTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProjectTable(&buf, nil, testConfig()))
	assert.Equal(t, "No public projects.\n", buf.String())
}

func TestWriteProjectsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProjectsCSV(&buf, testResult().Projects))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "name", records[0][0])
	assert.Equal(t, []string{"hello-world", "Go", "1500", "20", "false"}, records[1][:5])
	assert.Equal(t, "demo", records[1][7])
	assert.Equal(t, "true", records[2][4])
	assert.Empty(t, records[2][5], "zero time should be blank")
}

func TestWriteProfileText(t *testing.T) {
	cfg := testConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeProfileText(&buf, testResult(), cfg, fmtFloat))

	out := buf.String()
	assert.Contains(t, out, "Bio:      Mascot")
	assert.Contains(t, out, "Location: San Francisco")
	assert.NotContains(t, out, "Company:")
	assert.Contains(t, out, "Top languages")
	assert.Contains(t, out, "Projects")
	assert.Contains(t, out, "hello-world")
	assert.Contains(t, out, "language data unavailable")
}

func TestWriteProfileJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProfileJSON(&buf, testResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["degraded"])
	assert.Equal(t, float64(1), decoded["language_failures"])
	assert.Contains(t, decoded, "profile")
	assert.Contains(t, decoded, "project_languages")
	assert.Len(t, decoded["ranked_languages"], 2)
}

func TestWriteProjectLanguagesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProjectLanguagesCSV(&buf, testResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 2 languages + 1 degraded project
	assert.Equal(t, []string{"octocat", "hello-world", "Go", "300", "false"}, records[1])
	assert.Equal(t, []string{"octocat", "broken", "", "0", "true"}, records[3])
}

func TestWriteResults_FileOutputs(t *testing.T) {
	dir := t.TempDir()
	result := testResult()

	tests := []struct {
		name   string
		output schema.OutputMode
		write  func(cfg *contract.Config) error
		check  func(t *testing.T, content []byte)
	}{
		{
			name:   "languages parquet",
			output: schema.ParquetOut,
			write:  func(cfg *contract.Config) error { return WriteLanguageResults(result, cfg) },
			check: func(t *testing.T, content []byte) {
				assert.True(t, bytes.HasPrefix(content, []byte("PAR1")))
			},
		},
		{
			name:   "profile parquet",
			output: schema.ParquetOut,
			write:  func(cfg *contract.Config) error { return WriteProfileResult(result, cfg) },
			check: func(t *testing.T, content []byte) {
				assert.True(t, bytes.HasPrefix(content, []byte("PAR1")))
			},
		},
		{
			name:   "projects parquet",
			output: schema.ParquetOut,
			write: func(cfg *contract.Config) error {
				return WriteProjectResults("octocat", result.Projects, cfg)
			},
			check: func(t *testing.T, content []byte) {
				assert.True(t, bytes.HasPrefix(content, []byte("PAR1")))
			},
		},
		{
			name:   "languages html",
			output: schema.HTMLOut,
			write:  func(cfg *contract.Config) error { return WriteLanguageResults(result, cfg) },
			check: func(t *testing.T, content []byte) {
				assert.Contains(t, string(content), "Top languages for octocat")
			},
		},
		{
			name:   "projects html",
			output: schema.HTMLOut,
			write: func(cfg *contract.Config) error {
				return WriteProjectResults("octocat", result.Projects, cfg)
			},
			check: func(t *testing.T, content []byte) {
				assert.Contains(t, string(content), "Most starred projects for octocat")
			},
		},
		{
			name:   "languages json",
			output: schema.JSONOut,
			write:  func(cfg *contract.Config) error { return WriteLanguageResults(result, cfg) },
			check: func(t *testing.T, content []byte) {
				assert.True(t, json.Valid(content))
			},
		},
		{
			name:   "profile text",
			output: schema.TextOut,
			write:  func(cfg *contract.Config) error { return WriteProfileResult(result, cfg) },
			check: func(t *testing.T, content []byte) {
				assert.Contains(t, string(content), "Top languages")
			},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Output = tt.output
			cfg.OutputFile = filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+"_"+string(rune('a'+i)))
			require.NoError(t, tt.write(cfg))

			content, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			tt.check(t, content)
		})
	}
}

func TestWriteResults_ParquetNeedsFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	err := WriteLanguageResults(testResult(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file is required for parquet output")
}

func TestOutWriter(t *testing.T) {
	ow := NewOutWriter()
	cfg := testConfig()
	cfg.Output = schema.CSVOut
	dir := t.TempDir()

	cfg.OutputFile = filepath.Join(dir, "profile.csv")
	require.NoError(t, ow.WriteProfile(testResult(), cfg))
	cfg.OutputFile = filepath.Join(dir, "languages.csv")
	require.NoError(t, ow.WriteLanguages(testResult(), cfg))
	cfg.OutputFile = filepath.Join(dir, "projects.csv")
	require.NoError(t, ow.WriteProjects("octocat", testResult().Projects, cfg))

	for _, name := range []string{"profile.csv", "languages.csv", "projects.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestGetMaxTableTextWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		detail   bool
		expected int
	}{
		{"narrow clamps to minimum", 40, false, 15},
		{"wide clamps to maximum", 300, false, 70},
		{"basic", 100, false, 45},
		{"detail reserves more", 100, true, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width, Detail: tt.detail}
			assert.Equal(t, tt.expected, GetMaxTableTextWidth(cfg))
		})
	}
}
