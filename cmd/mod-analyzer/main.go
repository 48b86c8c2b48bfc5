package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clayne/mod-analyzer/cmd"
)

var errAnalysisFailed = errors.New("analysis failed")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errAnalysisFailed) {
			_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "mod-analyzer [flags] <archive>...",
		Short:         "Report the installable options, files and plugins of mod archives.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			config, err := cmd.LoadConfig(command.Flags(), configFile)
			if err != nil {
				return err
			}
			logger, err := cmd.NewLogger(os.Stderr, config.LogLevel)
			if err != nil {
				return err
			}

			result, err := cmd.Analyze(config, args, command.OutOrStdout(), logger)
			if err != nil {
				return err
			}
			if result.Failed {
				return errAnalysisFailed
			}
			return nil
		},
	}
	root.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file (yaml, toml or json).")
	cmd.BindFlags(root.Flags())

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		Run: func(command *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(command.OutOrStdout(), "mod-analyzer [%s]\n", ldflagsSoftwareVersion)
		},
	})
	return root
}

var ldflagsSoftwareVersion = "debug"
