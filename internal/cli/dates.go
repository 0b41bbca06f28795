package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
	"github.com/CatcatWinter/calendar-planner/internal/logger"
)

func infoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info [YYYY-MM-DD]",
		Short: "Show lunar date, stem-branch, solar term and festivals (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.dateArg(args)
			if err != nil {
				return err
			}
			info, err := calendar.GetDateInfo(d.Year, d.Month, d.Day)
			if err != nil {
				return err
			}
			logger.Debug(cmd.Context(), "date info", "date", d.String(), "display", info.DisplayText)

			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), info)
			}
			writeDateInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func writeDateInfo(w io.Writer, info calendar.DateInfo) {
	fmt.Fprintf(w, "%s %s\n", calendar.FormatSolarCN(info.Solar), info.Weekday)
	fmt.Fprintf(w, "农历 %s%s%s\n", info.Lunar.YearName, info.Lunar.MonthName, info.Lunar.DayName)
	fmt.Fprintf(w, "干支 %s\n", info.Lunar.Sexagenary)
	fmt.Fprintf(w, "生肖 %s\n", info.Lunar.Zodiac)
	if info.SolarTerm != "" {
		fmt.Fprintf(w, "节气 %s\n", info.SolarTerm)
	}
	if len(info.Festivals) > 0 {
		fmt.Fprintf(w, "节日 %s\n", strings.Join(info.Festivals, " "))
	}
}

func solarCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "solar YYYY-MM-DD",
		Short: "Convert a Gregorian date to the lunar calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.dateArg(args)
			if err != nil {
				return err
			}
			l, err := calendar.SolarToLunar(d.Year, d.Month, d.Day)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), l)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s%s%s\n", d, l.YearName, l.MonthName, l.DayName)
			return nil
		},
	}
}

func lunarCmd(opts *options) *cobra.Command {
	var leap bool

	cmd := &cobra.Command{
		Use:   "lunar YEAR MONTH DAY",
		Short: "Convert a lunar date to the Gregorian calendar",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := atoiArgs(args, "YEAR", "MONTH", "DAY")
			if err != nil {
				return err
			}
			d, err := calendar.LunarToSolar(n[0], n[1], n[2], leap)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), d)
			}
			ld := calendar.LunarDate{Year: n[0], Month: n[1], Day: n[2], IsLeap: leap}
			fmt.Fprintf(cmd.OutOrStdout(), "%d年%s%s -> %s %s\n",
				ld.Year, ld.MonthLabel(), calendar.LunarDayName(ld.Day), d, calendar.WeekdayCN(d))
			return nil
		},
	}

	cmd.Flags().BoolVar(&leap, "leap", false, "the date is in the leap month")
	return cmd
}

func termsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "terms YEAR",
		Short: "List the 24 solar terms of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := atoiArgs(args, "YEAR")
			if err != nil {
				return err
			}
			terms, err := calendar.AllSolarTerms(n[0])
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), terms)
			}
			for _, t := range terms {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d %s %02d-%02d\n", t.Index+1, t.Name, t.Month, t.Day)
			}
			return nil
		},
	}
}

func yearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "year YEAR",
		Short: "Describe a lunar year: months, leap month and new year date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := atoiArgs(args, "YEAR")
			if err != nil {
				return err
			}
			info, err := calendar.DescribeYear(n[0])
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), info)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d %s (%s) %d天\n", info.Year, info.StemBranch, info.Zodiac, info.Days)
			fmt.Fprintf(w, "春节 %s\n", info.NewYear)
			for i, days := range info.MonthDays {
				fmt.Fprintf(w, "%s月 %d\n", calendar.LunarMonthName(i+1), days)
				if info.LeapMonth == i+1 {
					fmt.Fprintf(w, "%s %d\n", info.LeapMonthName, info.LeapMonthDays)
				}
			}
			return nil
		},
	}
}

func monthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "month YEAR MONTH",
		Short: "Print a month page with lunar days, terms and festivals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := atoiArgs(args, "YEAR", "MONTH")
			if err != nil {
				return err
			}
			view, err := calendar.MonthGrid(n[0], n[1])
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			writeMonth(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

// writeMonth prints one line per week, each cell as "day label".
func writeMonth(w io.Writer, view calendar.MonthView) {
	fmt.Fprintf(w, "%s  %s\n", view.Title, view.LunarTitle)
	fmt.Fprintln(w, "日 一 二 三 四 五 六")

	cells := make([]string, 0, view.LeadingBlanks+len(view.Days))
	for i := 0; i < view.LeadingBlanks; i++ {
		cells = append(cells, "-")
	}
	for _, c := range view.Days {
		cells = append(cells, fmt.Sprintf("%d %s", c.Day, c.DisplayText))
	}
	for i := 0; i < len(cells); i += 7 {
		end := min(i+7, len(cells))
		fmt.Fprintln(w, strings.Join(cells[i:end], " | "))
	}
}
