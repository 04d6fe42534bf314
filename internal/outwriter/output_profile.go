package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/devscope/internal/chart"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/internal/parquet"
	"github.com/huangsam/devscope/schema"
)

// WriteProfileResult outputs a complete lookup, dispatching based on the output format configured.
// Text output combines the profile card, the language table and the project table.
func WriteProfileResult(result *schema.ExploreResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectLanguagesCSV(w, result)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeToPath(cfg.OutputFile, cfg.Output, func(path string) error {
			return parquet.WriteProjectLanguagesParquet(parquet.ConvertProjectLanguages(result), path)
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return chart.RenderLanguagePie(w, result.Profile.Login, result.Languages)
		}, "Wrote chart")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileText(w, result, cfg, fmtFloat)
		}, "Wrote profile")
	}
}

// writeProfileText writes the profile card followed by both tables.
func writeProfileText(w io.Writer, result *schema.ExploreResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	p := result.Profile
	details := []struct{ label, value string }{
		{"Bio", p.Bio},
		{"Company", p.Company},
		{"Location", p.Location},
		{"Blog", p.Blog},
		{"Twitter", p.Twitter},
		{"URL", p.HTMLURL},
	}
	for _, d := range details {
		if d.value == "" {
			continue
		}
		if err := printf(w, "%-9s %s\n", d.label+":", contract.TruncateText(d.value, GetMaxTableTextWidth(cfg))); err != nil {
			return err
		}
	}

	if err := printf(w, "\nTop languages\n"); err != nil {
		return err
	}
	if err := writeLanguageTable(w, result.Languages, cfg, fmtFloat); err != nil {
		return err
	}

	if err := printf(w, "\nProjects\n"); err != nil {
		return err
	}
	if err := writeProjectTable(w, result.Projects, cfg); err != nil {
		return err
	}
	return writeLanguageSummary(w, result, cfg)
}

// writeProfileJSON writes the whole lookup with the ranked languages added.
func writeProfileJSON(w io.Writer, result *schema.ExploreResult) error {
	type JSONProfile struct {
		*schema.ExploreResult
		RankedLanguages []schema.RankedLanguage `json:"ranked_languages"`
		Degraded        bool                    `json:"degraded"`
	}

	return writeJSON(w, JSONProfile{
		ExploreResult:   result,
		RankedLanguages: schema.RankLanguages(result.Languages),
		Degraded:        result.Degraded(),
	})
}

// writeProjectLanguagesCSV writes one row per project and language.
func writeProjectLanguagesCSV(w io.Writer, result *schema.ExploreResult) error {
	header := []string{"handle", "project", "language", "bytes", "degraded"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range parquet.ConvertProjectLanguages(result) {
			language := ""
			if row.Language != nil {
				language = *row.Language
			}
			rec := []string{
				row.Handle,
				row.Project,
				language,
				strconv.FormatInt(row.Bytes, 10),
				strconv.FormatBool(row.Degraded),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
