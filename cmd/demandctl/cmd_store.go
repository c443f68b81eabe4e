package main

import (
	"context"
	"fmt"
	"time"

	"tutor-board/internal/app"
	"tutor-board/internal/config"
	"tutor-board/internal/crawler"

	"github.com/spf13/cobra"
)

func openContainer(opts *rootOptions, extra ...app.ContainerOption) (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.Database.Enabled() {
		return nil, fmt.Errorf("DB_HOST is not configured")
	}
	return app.NewContainer(cfg, opts.newLogger(cfg.App), extra...)
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			res, err := c.Migrate(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s), %d already up to date\n", len(res.Applied), res.Skipped)
			return nil
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample demand set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			if err := c.Seed(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed finished")
			return nil
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var headless bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "import <url>...",
		Short: "Import demands from published article pages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []app.ContainerOption
			if headless {
				extra = append(extra, app.WithFetcher(crawler.HeadlessFetcher{}))
			}
			c, err := openContainer(opts, extra...)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			report, err := c.Import.Import(ctx, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "articles %d, parsed %d, upserted %d\n", report.Articles, report.Parsed, report.Upserted)
			for _, f := range report.Failures {
				fmt.Fprintf(out, "failed %s: %s\n", f.URL, f.Error)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "render pages in headless Chrome before extraction")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall import deadline")
	return cmd
}
