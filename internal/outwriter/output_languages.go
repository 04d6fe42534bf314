package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/devscope/internal/chart"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/internal/parquet"
	"github.com/huangsam/devscope/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteLanguageResults outputs the ranked breakdown, dispatching based on the output format configured.
func WriteLanguageResults(result *schema.ExploreResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	handle := result.Profile.Login

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLanguagesJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLanguagesCSV(w, result.Languages, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeToPath(cfg.OutputFile, cfg.Output, func(path string) error {
			return parquet.WriteLanguagesParquet(parquet.ConvertLanguages(handle, result.Languages, result.FetchedAt), path)
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return chart.RenderLanguagePie(w, handle, result.Languages)
		}, "Wrote chart")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeLanguageTable(w, result.Languages, cfg, fmtFloat); err != nil {
				return err
			}
			return writeLanguageSummary(w, result, cfg)
		}, "Wrote table")
	}
}

// writeLanguageTable generates and writes the human-readable language table.
func writeLanguageTable(w io.Writer, stats []schema.LanguageStat, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(stats) == 0 {
		return printf(w, "No language data available.\n")
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Language", "Share", "Label", "Bar"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(stats))
	for _, r := range schema.RankLanguages(stats) {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			r.Name,
			fmtFloat(r.Percentage) + "%",
			labelFor(r.Percentage, cfg),
			languageBar(r.Percentage, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeLanguageSummary writes the footer lines below the language table.
func writeLanguageSummary(w io.Writer, result *schema.ExploreResult, cfg *contract.Config) error {
	if err := printf(w, "Showing top %d of %d languages across %d projects (%s of code)\n",
		len(result.Languages), len(result.AllLanguages), len(result.Projects),
		humanize.Bytes(uint64(max(result.TotalBytes, 0)))); err != nil {
		return err
	}
	if err := writeDegradedNotice(w, result, cfg); err != nil {
		return err
	}
	return printf(w, "Lookup completed in %v.\n", result.Duration.Round(time.Millisecond))
}

// writeLanguagesCSV writes the ranked breakdown in CSV format.
func writeLanguagesCSV(w io.Writer, stats []schema.LanguageStat, fmtFloat func(float64) string) error {
	header := []string{"rank", "language", "percentage", "label", "color"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range schema.RankLanguages(stats) {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Name,
				fmtFloat(r.Percentage),
				r.Label,
				r.Color,
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeLanguagesJSON writes the ranked breakdown in JSON format.
func writeLanguagesJSON(w io.Writer, result *schema.ExploreResult) error {
	type JSONLanguages struct {
		Handle           string                  `json:"handle"`
		Languages        []schema.RankedLanguage `json:"languages"`
		TotalBytes       int64                   `json:"total_bytes"`
		LanguageFailures int                     `json:"language_failures"`
		FailedProjects   []string                `json:"failed_projects"`
	}

	return writeJSON(w, JSONLanguages{
		Handle:           result.Profile.Login,
		Languages:        schema.RankLanguages(result.Languages),
		TotalBytes:       result.TotalBytes,
		LanguageFailures: result.LanguageFailures,
		FailedProjects:   nonNil(result.FailedProjects),
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
