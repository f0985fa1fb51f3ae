// Package cmd provides the root command and CLI setup for loctool.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"loctool.dev/pkg/loctool/internal/adapter"
	"loctool.dev/pkg/loctool/internal/controller"
	"loctool.dev/pkg/loctool/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var walker domain.TreeWalker
var scanner domain.Scanner
var replacer domain.Replacer

// formatFlag selects text, json or yaml output for every command.
var formatFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var logFileFlag string
var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	walker = domain.NewTreeWalker(fsAdapter)
	scanner = domain.NewScanner(fsAdapter, walker)
	replacer = domain.NewReplacer(fsAdapter, walker)
}

const excludeHelp = `Exclude patterns are globs matched against paths relative to the root:
  - node_modules        any entry named node_modules
  - **/*.test.tsx       test files at any depth
  - app/jp/legacy/**    everything below a directory`

const rootLongDescription = `loctool maintains the source tree of a localized web application.

It finds files in non-Chinese locale folders that still contain Chinese
characters, and inserts new language entries into settings pages with an
idempotent literal replacement.

` + excludeHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "loctool",
		Short:             "Localization maintenance tool",
		Long:              rootLongDescription,
		SilenceUsage:      true,
		PersistentPreRunE: prepareRun,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&formatFlag, formatFlagName, "f", defaultFormat, "output format: text, json or yaml")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), formatConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude paths matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "path of the rotating diagnostic log")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// prepareRun loads .env overrides and sets up logging before any command runs.
func prepareRun(_ *cobra.Command, _ []string) error {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

	return nil
}

// newWorkflow builds the workflow with a UI matching the configured output format.
func newWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	format, err := controller.ParseFormat(viper.GetString(formatConfigKey))
	if err != nil {
		return nil, err
	}

	color := format == controller.FormatText && controller.IsTTY(cmd.OutOrStdout())

	ui, err := controller.NewUI(cmd, format, color)
	if err != nil {
		return nil, err
	}

	return domain.NewWorkflow(ui, scanner, replacer), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func rootArg(args []string, key string) (string, error) {
	root := viper.GetString(key)
	if len(args) > 0 {
		root = args[0]
	}

	return expandPath(root)
}
