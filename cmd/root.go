package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/internal/observability"
	"github.com/huangsam/devscope/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations. It is cancelled on SIGINT or SIGTERM.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "devscope",
	Short:              "Explore a GitHub profile: projects and the languages behind them.",
	Long:               `Devscope looks up a GitHub user and shows their profile, public projects and the languages they write most.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A .env file is optional; real environment variables take precedence
	_ = godotenv.Load()

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".devscope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("DEVSCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("token", "DEVSCOPE_TOKEN", "GITHUB_TOKEN")

	// Set defaults in Viper
	viper.SetDefault("base-url", schema.DefaultBaseURL)
	viper.SetDefault("timeout", contract.DefaultTimeout.String())
	viper.SetDefault("top", schema.DefaultTopLanguages)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("sort", schema.SortUpdated)
	viper.SetDefault("default-handle", schema.DefaultHandle)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("log-format", schema.TextLog)
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("listen", contract.DefaultListenAddr)
	viper.SetDefault("metrics", true)
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.HandleStr = ""
	if len(args) == 1 {
		input.HandleStr = args[0]
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	cfg.UserAgent = "devscope/" + version

	// 5. Logs go to stderr so stdout stays clean for output and MCP stdio.
	observability.SetupLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = ctx
	return rootCmd.Execute()
}
