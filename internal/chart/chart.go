// Package chart renders language breakdowns and projects as interactive charts.
package chart

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/huangsam/devscope/core/algo"
	"github.com/huangsam/devscope/schema"
)

// Default canvas size of the rendered chart.
const (
	DefaultWidth  = "640px"
	DefaultHeight = "420px"
)

// NewLanguagePie builds a pie chart of the given breakdown. Each slice uses
// the language palette color; labels show the share with one decimal.
func NewLanguagePie(handle string, stats []schema.LanguageStat) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s languages", handle),
			Width:     DefaultWidth,
			Height:    DefaultHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Top languages for %s", handle),
			Subtitle: subtitle(stats),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	pie.AddSeries("languages", pieData(stats)).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "65%"}}),
		)
	return pie
}

// RenderLanguagePie writes a standalone HTML page containing the chart.
func RenderLanguagePie(w io.Writer, handle string, stats []schema.LanguageStat) error {
	if err := NewLanguagePie(handle, stats).Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func pieData(stats []schema.LanguageStat) []opts.PieData {
	items := make([]opts.PieData, 0, len(stats))
	for _, s := range stats {
		items = append(items, opts.PieData{
			Name:      s.Name,
			Value:     math.Round(s.Percentage*10) / 10,
			ItemStyle: &opts.ItemStyle{Color: schema.LanguageColor(s.Name)},
		})
	}
	return items
}

func subtitle(stats []schema.LanguageStat) string {
	if len(stats) == 0 {
		return "No language data available"
	}
	return fmt.Sprintf("%d languages by share of bytes", len(stats))
}

// MaxBarProjects caps how many projects the stars chart shows.
const MaxBarProjects = 15

// NewStarsBar builds a bar chart of the most starred projects.
func NewStarsBar(handle string, projects []schema.Project) *charts.Bar {
	ranked := algo.RankProjects(slices.Clone(projects), MaxBarProjects)

	names := make([]string, 0, len(ranked))
	items := make([]opts.BarData, 0, len(ranked))
	for _, p := range ranked {
		names = append(names, p.Name)
		items = append(items, opts.BarData{
			Name:      p.Name,
			Value:     p.Stars,
			ItemStyle: &opts.ItemStyle{Color: schema.LanguageColor(p.Language)},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s projects", handle),
			Width:     DefaultWidth,
			Height:    DefaultHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Most starred projects for %s", handle),
			Subtitle: fmt.Sprintf("Top %d of %d projects", len(ranked), len(projects)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).AddSeries("stars", items)
	return bar
}

// RenderStarsBar writes a standalone HTML page containing the stars chart.
func RenderStarsBar(w io.Writer, handle string, projects []schema.Project) error {
	if err := NewStarsBar(handle, projects).Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
