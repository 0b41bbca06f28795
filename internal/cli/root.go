// Package cli is the lunar command line: date lookups, conversions,
// month pages and plan generation.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
	"github.com/CatcatWinter/calendar-planner/internal/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// options are shared by every subcommand.
type options struct {
	debug  bool
	asJSON bool
	now    func() time.Time
	log    *slog.Logger
}

func newRootCmd() *cobra.Command {
	return newRootCmdAt(time.Now)
}

// newRootCmdAt builds the command tree with now as the clock for
// commands that default to today.
func newRootCmdAt(now func() time.Time) *cobra.Command {
	opts := &options{now: now}

	cmd := &cobra.Command{
		Use:          "lunar",
		Short:        "Chinese lunisolar calendar and planner",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "warn"
			if opts.debug {
				level = "debug"
			}
			opts.log = logger.New(cmd.ErrOrStderr(), level, "text")
			slog.SetDefault(opts.log)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to stderr")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")

	cmd.AddCommand(
		infoCmd(opts),
		solarCmd(opts),
		lunarCmd(opts),
		termsCmd(opts),
		yearCmd(opts),
		monthCmd(opts),
		planCmd(opts),
	)
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// atoiArgs parses positional integer arguments, naming the bad one.
func atoiArgs(args []string, names ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got %q", names[i], a)
		}
		out[i] = n
	}
	return out, nil
}

// dateArg reads an optional YYYY-MM-DD argument, defaulting to today.
func (o *options) dateArg(args []string) (calendar.SolarDate, error) {
	if len(args) == 0 {
		return calendar.NewSolarDate(o.now()), nil
	}
	d, err := calendar.ParseDate(args[0])
	if err != nil {
		return calendar.SolarDate{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", args[0])
	}
	return d, nil
}
