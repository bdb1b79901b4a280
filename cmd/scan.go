package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cluttercut/cluttercut/internal/domain"
	m "github.com/cluttercut/cluttercut/internal/model"
)

var scanParallelFlag int
var scanExtensionsFlag []string

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Scan a directory for unused assets",
		Long:  scanLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// SIGINT cancels cooperatively: in-flight file scans drain and
			// the run ends with an explicit incomplete error, never a
			// report built from a partial reference set.
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return workflow.Scan(ctx, domain.ScanConfig{
				Root:       m.Path(args[0]),
				Workers:    viper.GetInt(scanParallelConfigKey),
				Extensions: viper.GetStringSlice(scanExtensionsConfigKey),
			})
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&scanParallelFlag, scanParallelFlagName, "p",
		viper.GetInt(scanParallelConfigKey),
		"number of parallel workers for the reference scan (1-32)")
	bindFlagToConfig(cmd.Flags().Lookup(scanParallelFlagName), scanParallelConfigKey)

	cmd.Flags().StringArrayVarP(&scanExtensionsFlag, scanExtensionsFlagName, "e",
		viper.GetStringSlice(scanExtensionsConfigKey),
		"content-file extensions checked for references (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(scanExtensionsFlagName), scanExtensionsConfigKey)
}
