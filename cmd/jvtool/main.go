// Command jvtool is a small CLI around the jv value engine: it infers JSON
// Schema from JSON/YAML documents, browses a decoded document as a tree,
// and microbenchmarks the core array/object/string operations.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jvlang.dev/jv/log"
	"go.jvlang.dev/jv/profiler"
	"go.jvlang.dev/jv/version"
)

func main() {
	logCfg := log.NewConfig()
	profCfg := profiler.New()

	var showVersion bool

	rootCmd := &cobra.Command{
		Use:           "jvtool",
		Short:         "Inspect, schema-infer, and benchmark JSON values",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return fmt.Errorf("configuring logger: %w", err)
			}

			slog.SetDefault(slog.New(handler))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "jvtool %s (%s, built %s by %s on %s/%s)\n",
					version.Version, version.Revision, version.BuildDate, version.BuildUser, version.GoOS, version.GoArch)
				return nil
			}

			return cmd.Help()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newBenchCmd(&profCfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
