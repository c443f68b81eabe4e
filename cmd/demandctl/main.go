// Command demandctl manages the tutoring demand store and browses the feed
// from a terminal.
package main

import (
	"fmt"
	"os"

	"tutor-board/internal/config"
	"tutor-board/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "demandctl",
		Short:         "Manage and browse tutoring demands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newImportCmd(opts),
		newListCmd(opts),
		newBrowseCmd(opts),
	)
	return root
}

// newLogger writes to stderr so command output stays clean on stdout.
func (o *rootOptions) newLogger(cfg config.AppConfig) *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	cfg.Environment = "development"
	l, err := logger.New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
