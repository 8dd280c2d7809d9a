// Package cli implements the cobra-based CLI commands for plnumbers.
//
// Each subcommand (parse, classify, countries, carriers) is defined in its
// own file within this package. This file defines the root command that
// serves as the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/plnumbers/internal/carrier"
	"github.com/shinji-kodama/plnumbers/internal/config"
	"github.com/shinji-kodama/plnumbers/internal/country"
	"github.com/shinji-kodama/plnumbers/internal/model"
	"github.com/shinji-kodama/plnumbers/internal/phonenumber"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables detailed logging output on stderr.
	verbose bool

	// configPath is an explicit configuration file. When empty, the
	// working directory is searched for plnumbers.jsonc.
	configPath string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plnumbers",
		Short: "Normalize and classify Polish phone numbers",
		Long: `plnumbers cleans free-form phone numbers, resolves their country from the
dialing prefix and, where a carrier table exists, reports the owning carrier
and whether the line is fixed, mobile or a special service number.`,

		// Errors are printed by Execute in text or JSON form.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a plnumbers.jsonc configuration file")

	rootCmd.AddCommand(NewParseCommand())
	rootCmd.AddCommand(NewClassifyCommand())
	rootCmd.AddCommand(NewCountriesCommand())
	rootCmd.AddCommand(NewCarriersCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stdout is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// setupLogger installs the default slog logger used by library packages.
// Warnings are always shown; debug output only with --verbose.
func setupLogger(w io.Writer) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}

// environment bundles the tables every subcommand works with.
type environment struct {
	countries  *country.Table
	registry   *carrier.Registry
	classifier *carrier.Classifier
	parser     *phonenumber.Parser
}

// loadEnvironment resolves the configuration and builds the country table,
// carrier registry, classifier and parser from it.
func loadEnvironment() (*environment, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	cfg, err := config.Resolve(configPath, wd)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		VerboseLog("Using config file %s", cfg.Path)
	}

	countries, err := cfg.CountryTable()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to build country table", err)
	}
	VerboseLog("Country table has %d entries", countries.Len())

	registry := cfg.Registry()
	VerboseLog("Carrier tables registered for: %v", registry.Codes())

	classifier := carrier.NewClassifier(registry, slog.Default())
	return &environment{
		countries:  countries,
		registry:   registry,
		classifier: classifier,
		parser: phonenumber.NewParser(
			phonenumber.WithCountries(countries),
			phonenumber.WithClassifier(classifier),
		),
	}, nil
}

// printJSON writes v as indented JSON to w.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
