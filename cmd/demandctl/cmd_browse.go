package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"tutor-board/internal/browser"
	"tutor-board/internal/config"
	"tutor-board/internal/infrastructure/feed"
	"tutor-board/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type feedOptions struct {
	source  string
	timeout time.Duration
	filters browser.Filters
	salary  string
	sort    string
	tz      string
}

func (o *feedOptions) bind(cmd *cobra.Command) {
	def := strings.TrimSpace(os.Getenv("DEMAND_SOURCE_URL"))
	if def == "" {
		def = "http://127.0.0.1:8080"
	}
	f := cmd.Flags()
	f.StringVar(&o.source, "source", def, "base URL of the demand feed")
	f.DurationVar(&o.timeout, "timeout", 5*time.Second, "feed request timeout")
	f.StringVar(&o.filters.Keyword, "keyword", "", "keyword filter")
	f.StringVar(&o.filters.City, "city", browser.All, "city filter")
	f.StringVar(&o.filters.District, "district", browser.All, "district filter")
	f.StringVar(&o.filters.Grade, "grade", browser.All, "grade filter")
	f.StringVar(&o.filters.Subject, "subject", browser.All, "subject filter")
	f.StringVar(&o.salary, "salary", browser.All, "salary bucket: 全部, 200 以下, 200-300, 300 以上")
	f.StringVar(&o.sort, "sort", string(browser.SortLatest), "sort: latest, salaryDesc, salaryAsc")
	f.StringVar(&o.tz, "tz", os.Getenv("DEMAND_TIMEZONE"), "IANA zone for createdAt values without an offset (default local)")
}

func (o *feedOptions) applyZone() error {
	if strings.TrimSpace(o.tz) == "" {
		browser.SetTimestampZone(nil)
		return nil
	}
	loc, err := time.LoadLocation(strings.TrimSpace(o.tz))
	if err != nil {
		return fmt.Errorf("invalid --tz: %w", err)
	}
	browser.SetTimestampZone(loc)
	return nil
}

func (o *feedOptions) initial() browser.Filters {
	f := o.filters
	f.Salary = browser.SalaryBucket(o.salary)
	f.Sort = browser.SortMode(o.sort)
	return f
}

func (o *feedOptions) client(logger *zap.Logger) feed.Client {
	return feed.NewClient(o.source, o.timeout, logger)
}

func newListCmd(opts *rootOptions) *cobra.Command {
	fo := &feedOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the demands matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fo.applyZone(); err != nil {
				return err
			}
			logger := opts.newLogger(config.AppConfig{AppName: "demandctl"})
			s := browser.NewSession(nil, logger)
			s.Load(fo.client(logger).FetchDemands(cmd.Context()))
			s.Restore(fo.initial(), "")
			return printVisible(cmd.OutOrStdout(), s)
		},
	}
	fo.bind(cmd)
	return cmd
}

func printVisible(w io.Writer, s *browser.Session) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range s.Visible() {
		c := browser.CardOf(d, false)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tui.Sanitize(c.ID), tui.Sanitize(c.Title), tui.Sanitize(c.Place),
			tui.Sanitize(c.Lesson), tui.Sanitize(c.Rate), tui.Sanitize(d.CreatedAt))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s  %s\n", browser.CountText(len(s.Visible())), tui.Sanitize(s.Hint()))
	return err
}

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	fo := &feedOptions{}
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse demands in an interactive terminal board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fo.applyZone(); err != nil {
				return err
			}
			logger := opts.newLogger(config.AppConfig{AppName: "demandctl"})
			model := tui.NewModel(fo.client(logger).FetchDemands, fo.initial(), logger)
			_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	fo.bind(cmd)
	return cmd
}
