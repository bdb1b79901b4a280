// Package cmd provides the root command and CLI setup for cluttercut.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cluttercut/cluttercut/internal/adapter"
	"github.com/cluttercut/cluttercut/internal/controller"
	"github.com/cluttercut/cluttercut/internal/domain"
)

var fsAdapter adapter.AssetFS
var ui controller.UI
var workflow domain.Workflow

// verboseFlag forces debug logging when set.
var verboseFlag bool

// logPathFlag overrides the log file location.
var logPathFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalAssetFS()
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	workflow = domain.NewWorkflow(fsAdapter, ui)
}

const rootLongDescription = `Cluttercut finds Unity assets that are never referenced by any other
asset, so they can be reviewed and removed. It collects the GUID of every
.meta descriptor under the given directory, scans the project's content
files for occurrences of those GUIDs in parallel, and reports the assets
whose GUID never appears anywhere, ordered by reclaimable size.

Only textual references are detected: assets loaded from code will be
reported as unused, so review the results before deleting anything.`

const scanLongDescription = `Scan a directory of a Unity project for unused assets.

The directory may be the project root, the Assets folder, or any folder
below it; candidates are collected from the given directory while
references are searched across the whole Assets tree.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cluttercut",
		Short: "Find unused Unity assets",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logPathFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&logPathFlag, logFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFlagName), logFilenameKey)

	cmd.PersistentFlags().
		BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
