package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
)

// YearResult holds the checks of one lunar year.
type YearResult struct {
	Year        int      `json:"year"`
	YearDays    int      `json:"year_days"`
	LeapMonth   int      `json:"leap_month"`
	NewYear     string   `json:"new_year"`
	DaysChecked int      `json:"days_checked"`
	Failures    []string `json:"failures,omitempty"`
}

// checkYears runs checkYear for each year in [from, to] on up to workers
// goroutines. Results are in year order.
func checkYears(ctx context.Context, from, to, workers int) ([]YearResult, error) {
	if from < calendar.MinYear || to > calendar.MaxYear || from > to {
		return nil, fmt.Errorf("year range %d-%d not within %d-%d", from, to, calendar.MinYear, calendar.MaxYear)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]YearResult, to-from+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := from; y <= to; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[y-from] = checkYear(y)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkYear validates the table entry and derived data of one year.
func checkYear(year int) YearResult {
	r := YearResult{Year: year}
	fail := func(format string, args ...any) {
		r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
	}

	info, err := calendar.DescribeYear(year)
	if err != nil {
		fail("describe: %v", err)
		return r
	}
	r.YearDays = info.Days
	r.LeapMonth = info.LeapMonth
	r.NewYear = info.NewYear.String()

	// Month lengths
	sum := info.LeapMonthDays
	for i, n := range info.MonthDays {
		if n != 29 && n != 30 {
			fail("month %d has %d days", i+1, n)
		}
		sum += n
	}
	if sum != info.Days {
		fail("months sum to %d, year has %d days", sum, info.Days)
	}
	if info.LeapMonth != 0 && info.LeapMonthDays != 29 && info.LeapMonthDays != 30 {
		fail("leap month has %d days", info.LeapMonthDays)
	}

	// New year falls between Jan 21 and Feb 20.
	ny := info.NewYear
	if !(ny.Month == 1 && ny.Day >= 21) && !(ny.Month == 2 && ny.Day <= 20) {
		fail("new year on %s", ny)
	}
	if ny.Year != year {
		fail("new year %s outside year %d", ny, year)
	}

	// Solar terms: 24 of them, increasing, two per month.
	terms, err := calendar.AllSolarTerms(year)
	if err != nil {
		fail("solar terms: %v", err)
	} else {
		prev := calendar.SolarDate{Year: year, Month: 1, Day: 0}
		for _, t := range terms {
			if want := t.Index/2 + 1; t.Month != want {
				fail("%s in month %d, want %d", t.Name, t.Month, want)
			}
			d := calendar.SolarDate{Year: year, Month: t.Month, Day: t.Day}
			if !prev.Before(d) {
				fail("%s on %s not after the previous term", t.Name, d)
			}
			prev = d
		}
	}

	// Round trip every day of the lunar year. The last lunar year runs
	// past the end of the solar range.
	d := ny
	for i := 0; i < info.Days && d.Year <= calendar.MaxYear; i++ {
		l, err := calendar.SolarToLunar(d.Year, d.Month, d.Day)
		if err != nil {
			fail("%s: %v", d, err)
			break
		}
		if l.Year != year {
			fail("%s maps to lunar year %d", d, l.Year)
			break
		}
		back, err := l.ToSolar()
		if err != nil || back != d {
			fail("%s -> %d-%d-%d leap=%v -> %s (%v)", d, l.Year, l.Month, l.Day, l.IsLeap, back, err)
			break
		}
		r.DaysChecked++
		d = d.AddDays(1)
	}
	return r
}
