package cmd

import (
	"github.com/huangsam/devscope/core"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/internal/ghclient"
	"github.com/spf13/cobra"
)

// profileCmd runs the full lookup for a handle.
var profileCmd = &cobra.Command{
	Use:   "profile [handle]",
	Short: "Show a user's profile, top languages and projects.",
	Long: `Look up a GitHub user and print everything devscope knows about them.

Fetches the profile, then the public projects, then the language data of
every project in parallel, and ranks the languages by share of bytes.
Projects whose language data cannot be fetched are skipped and reported.

Examples:
  # Explore the default handle
  devscope profile

  # Explore a user with the top 10 languages
  devscope profile torvalds --top 10

  # Export the whole result as JSON
  devscope profile octocat --output json --output-file octocat.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := ghclient.NewFromConfig(cfg, nil)
		if err := core.ExecuteProfile(rootCtx, cfg, client, nil); err != nil {
			contract.LogFatal("Cannot explore profile", err)
		}
	},
}

// languagesCmd prints only the ranked language breakdown.
var languagesCmd = &cobra.Command{
	Use:   "languages [handle]",
	Short: "Show the top languages of a user.",
	Long: `Rank the languages a GitHub user writes by share of bytes across all of
their public projects.

Examples:
  # Top five languages
  devscope languages octocat

  # Render a pie chart page
  devscope languages octocat --output html --output-file octocat.html

  # Export for analysis
  devscope languages octocat --output parquet --output-file octocat.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := ghclient.NewFromConfig(cfg, nil)
		if err := core.ExecuteLanguages(rootCtx, cfg, client, nil); err != nil {
			contract.LogFatal("Cannot rank languages", err)
		}
	},
}

// projectsCmd lists projects without fetching language data.
var projectsCmd = &cobra.Command{
	Use:   "projects [handle]",
	Short: "List the public projects of a user.",
	Long: `List the public projects of a GitHub user, most recently updated first.

Language data is not fetched, so this is the cheapest lookup.

Examples:
  # Most starred first, with topics
  devscope projects octocat --sort stars --detail

  # Stars bar chart
  devscope projects octocat --output html --output-file stars.html`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := ghclient.NewFromConfig(cfg, nil)
		if err := core.ExecuteProjects(rootCtx, cfg, client, nil); err != nil {
			contract.LogFatal("Cannot list projects", err)
		}
	},
}
