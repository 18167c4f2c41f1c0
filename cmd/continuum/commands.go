package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"continuum/internal/backup"
	"continuum/internal/config"
	"continuum/internal/report"
	"continuum/internal/server"
	"continuum/internal/services"
)

// app is the state shared by every command.
type app struct {
	cfg  *config.Config
	open func() (*server.Services, func(), error)
	out  io.Writer
	now  func() time.Time
}

func (a *app) commands() []subcommands.Command {
	return []subcommands.Command{
		&exportCmd{app: a},
		&importCmd{app: a},
		&dashboardCmd{app: a},
		&upcomingCmd{app: a},
	}
}

// clock returns the current time on the configured calendar.
func (a *app) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	if a.cfg.Location != nil {
		return time.Now().In(a.cfg.Location)
	}
	return time.Now()
}

// printMarkdown writes md to the output, styled for the terminal unless
// plain is set.
func (a *app) printMarkdown(md string, plain bool) {
	if !plain {
		if out, err := glamour.Render(md, "auto"); err == nil {
			md = out
		}
	}
	fmt.Fprint(a.out, md)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

type exportCmd struct {
	*app
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write every record to a backup file" }
func (*exportCmd) Usage() string {
	return `continuum export [-o <file>]

  Writes a backup of every subscription, asset and warranty. Without -o the
  file is named after the current time and placed in BACKUP_DIR.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Path of the backup file to write")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeStore, err := c.open()
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	now := c.clock()
	data, err := svc.Backup.Export(now)
	if err != nil {
		return fail(err)
	}

	target := c.output
	if target == "" {
		target = filepath.Join(c.cfg.BackupDir, backup.FileName(now))
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.out, "Exported backup to %s\n", target)
	return subcommands.ExitSuccess
}

type importCmd struct {
	*app
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "add every record from a backup file" }
func (*importCmd) Usage() string {
	return `continuum import <file>

  Adds the records held in a backup file to the store. Existing records are
  kept, so importing the same file twice duplicates its contents.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return fail(err)
	}

	svc, closeStore, err := c.open()
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	result, err := svc.Backup.Import(data)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(c.out, "Imported %d subscriptions, %d assets (%d value changes) and %d warranties.\n",
		result.Subscriptions, result.Assets, result.ValueChanges, result.Warranties)
	if len(result.Coercions) > 0 {
		fmt.Fprintf(c.out, "%d values were replaced with defaults:\n", len(result.Coercions))
		for _, co := range result.Coercions {
			fmt.Fprintf(c.out, "  %s\n", co)
		}
	}
	return subcommands.ExitSuccess
}

type dashboardCmd struct {
	*app
	plain bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the dashboard" }
func (*dashboardCmd) Usage() string {
	return `continuum dashboard [-plain]

  Displays monthly recurring costs, asset totals and what is coming up.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeStore, err := c.open()
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	summary, err := svc.Dashboard.GetSummary(c.clock())
	if err != nil {
		return fail(err)
	}

	var buf bytes.Buffer
	report.Dashboard(&buf, summary, c.cfg.Currency)
	c.printMarkdown(buf.String(), c.plain)
	return subcommands.ExitSuccess
}

type upcomingCmd struct {
	*app
	days  int
	plain bool
}

func (*upcomingCmd) Name() string     { return "upcoming" }
func (*upcomingCmd) Synopsis() string { return "list renewals and warranty expiries coming up" }
func (*upcomingCmd) Usage() string {
	return `continuum upcoming [-days n] [-plain]

  Lists every renewal due and every warranty expiring in the next n days.
`
}

func (c *upcomingCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 0, "Days to look ahead (defaults to UPCOMING_WINDOW_DAYS)")
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown")
}

func (c *upcomingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	days := c.days
	if days == 0 {
		days = c.cfg.UpcomingWindowDays
	}
	if days < 0 {
		fmt.Fprintln(os.Stderr, "Error: -days must be positive")
		return subcommands.ExitUsageError
	}

	svc, closeStore, err := c.open()
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	now := c.clock()
	summary, err := services.NewDashboardService(svc.Subscriptions, svc.Assets, svc.Warranties, days, math.MaxInt).GetSummary(now)
	if err != nil {
		return fail(err)
	}

	var buf bytes.Buffer
	report.Upcoming(&buf, summary.UpcomingRenewals, summary.ExpiringWarranties, now, days, c.cfg.Currency)
	c.printMarkdown(buf.String(), c.plain)
	return subcommands.ExitSuccess
}
