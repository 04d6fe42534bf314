package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/devscope/internal/chart"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/internal/parquet"
	"github.com/huangsam/devscope/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteProjectResults outputs the projects, dispatching based on the output format configured.
func WriteProjectResults(handle string, projects []schema.Project, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, projectsOrEmpty(projects))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectsCSV(w, projects)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeToPath(cfg.OutputFile, cfg.Output, func(path string) error {
			return parquet.WriteProjectsParquet(parquet.ConvertProjects(handle, projects), path)
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return chart.RenderStarsBar(w, handle, projects)
		}, "Wrote chart")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeProjectTable(w, projects, cfg); err != nil {
				return err
			}
			return printf(w, "Showing %d projects (%s stars, %s forks)\n",
				len(projects),
				humanize.Comma(int64(schema.TotalStars(projects))),
				humanize.Comma(int64(schema.TotalForks(projects))))
		}, "Wrote table")
	}
}

// writeProjectTable generates and writes the human-readable project table.
func writeProjectTable(w io.Writer, projects []schema.Project, cfg *contract.Config) error {
	if len(projects) == 0 {
		return printf(w, "No public projects.\n")
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Name", "Language", "Stars", "Forks", "Description"}
	if cfg.Detail {
		headers = append(headers, "Updated", "Topics")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	textWidth := GetMaxTableTextWidth(cfg)
	data := make([][]string, 0, len(projects))
	for _, p := range projects {
		name := p.Name
		if p.Fork {
			name += " (fork)"
		}
		language := p.Language
		if language == "" {
			language = "-"
		}
		row := []string{
			name,
			language,
			humanize.Comma(int64(p.Stars)),
			humanize.Comma(int64(p.Forks)),
			contract.TruncateText(p.CardDescription(), textWidth),
		}
		if cfg.Detail {
			updated := "-"
			if !p.UpdatedAt.IsZero() {
				updated = humanize.Time(p.UpdatedAt)
			}
			row = append(row, updated, strings.Join(p.CardTopics(), ", "))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeProjectsCSV writes the projects in CSV format.
func writeProjectsCSV(w io.Writer, projects []schema.Project) error {
	header := []string{"name", "language", "stars", "forks", "fork", "updated_at", "url", "topics", "description"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range projects {
			updated := ""
			if !p.UpdatedAt.IsZero() {
				updated = p.UpdatedAt.Format(contract.DateTimeFormat)
			}
			rec := []string{
				p.Name,
				p.Language,
				strconv.Itoa(p.Stars),
				strconv.Itoa(p.Forks),
				strconv.FormatBool(p.Fork),
				updated,
				p.HTMLURL,
				strings.Join(p.Topics, "|"),
				p.Description,
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func projectsOrEmpty(projects []schema.Project) []schema.Project {
	if projects == nil {
		return []schema.Project{}
	}
	return projects
}
