// Package cmd defines the command-line interface for devscope.
package cmd

import (
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("token", "", "GitHub API token (prefer DEVSCOPE_TOKEN or GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("base-url", schema.DefaultBaseURL, "GitHub API base URL")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "Timeout for each upstream request")
	rootCmd.PersistentFlags().IntP("top", "n", schema.DefaultTopLanguages, "Number of languages in the breakdown")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Concurrent language fetches (0 = one per project)")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet or html")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for percentages")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Bool("detail", false, "Print last-updated time and topics for projects")
	rootCmd.PersistentFlags().String("sort", string(schema.SortUpdated), "Project order: updated or stars")
	rootCmd.PersistentFlags().String("default-handle", schema.DefaultHandle, "Handle to use when none is given")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", string(schema.TextLog), "Log format: text or json")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("listen", contract.DefaultListenAddr, "Address for the web explorer to listen on")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}
}
