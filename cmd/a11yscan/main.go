// Command a11yscan runs the accessibility analyzer over a directory
// of HTML/JS/TS sources and prints its findings.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a11yscan/engine/internal/applog"
)

var (
	verbose    bool
	configPath string
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "a11yscan",
	Short: "Static accessibility analyzer for HTML/JS/TS/CSS sources",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := applog.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to .a11yscan.toml (default: ./.a11yscan.toml if present)")
	rootCmd.AddCommand(scanCmd, rulesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
