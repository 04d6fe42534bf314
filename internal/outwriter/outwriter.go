// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteProfile prints the full lookup result using the configured output format.
func (ow *OutWriter) WriteProfile(result *schema.ExploreResult, cfg *contract.Config) error {
	return WriteProfileResult(result, cfg)
}

// WriteLanguages prints the ranked language breakdown using the configured output format.
func (ow *OutWriter) WriteLanguages(result *schema.ExploreResult, cfg *contract.Config) error {
	return WriteLanguageResults(result, cfg)
}

// WriteProjects prints the projects using the configured output format.
func (ow *OutWriter) WriteProjects(handle string, projects []schema.Project, cfg *contract.Config) error {
	return WriteProjectResults(handle, projects, cfg)
}

// LogExploreHeader prints a concise, 2-line header before text output.
func LogExploreHeader(w io.Writer, profile schema.Profile, cfg *contract.Config) {
	name := profile.Login
	if profile.HasName() {
		name = fmt.Sprintf("%s (@%s)", profile.DisplayName(), profile.Login)
	}
	joined := "unknown"
	if !profile.CreatedAt.IsZero() {
		joined = humanize.Time(profile.CreatedAt)
	}
	stats := fmt.Sprintf("Joined: %s · %s public repos · %s followers · %s following",
		joined,
		humanize.Comma(int64(profile.PublicRepos)),
		humanize.Comma(int64(profile.Followers)),
		humanize.Comma(int64(profile.Following)),
	)

	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(w, "🔎 Profile: %s\n", name)
		_, _ = fmt.Fprintf(w, "📅 %s\n", stats)
	} else {
		_, _ = fmt.Fprintf(w, "Profile: %s\n", name)
		_, _ = fmt.Fprintf(w, "%s\n", stats)
	}
}

// writeDegradedNotice reports projects whose languages were left out.
func writeDegradedNotice(w io.Writer, result *schema.ExploreResult, cfg *contract.Config) error {
	if !result.Degraded() {
		return nil
	}
	prefix := "Warning:"
	if cfg.UseEmojis {
		prefix = "⚠️ "
	}
	names := strings.Join(result.FailedProjects, ", ")
	return printf(w, "%s language data unavailable for %d of %d projects: %s\n",
		prefix, result.LanguageFailures, len(result.Projects),
		contract.TruncateText(names, GetMaxTableTextWidth(cfg)))
}
