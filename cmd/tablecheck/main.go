// Command tablecheck verifies the lunar year tables and solar term data
// over a range of years without a running server.
//
// Usage:
//
//	go run ./cmd/tablecheck -start 1900 -end 2100 -workers 8
//
// For every year it checks month lengths, the year length, the new year
// date, solar term ordering and a solar -> lunar -> solar round trip of
// every day. The exit code is 1 when any check fails.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
)

func main() {
	startYear := flag.Int("start", calendar.MinYear, "First year to check")
	endYear := flag.Int("end", calendar.MaxYear, "Last year to check")
	workers := flag.Int("workers", runtime.NumCPU(), "Years checked in parallel")
	verbose := flag.Bool("v", false, "Verbose output (show each year)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	fmt.Println("================================================================")
	fmt.Println("Lunar Calendar - Table Check")
	fmt.Println("================================================================")
	fmt.Printf("Years:    %d to %d\n", *startYear, *endYear)
	fmt.Printf("Workers:  %d\n", *workers)
	fmt.Println()

	start := time.Now()
	results, err := checkYears(context.Background(), *startYear, *endYear, *workers)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	days := 0
	for _, r := range results {
		days += r.DaysChecked
		if len(r.Failures) > 0 {
			failed++
		}
		if *verbose || len(r.Failures) > 0 {
			status := "ok"
			if len(r.Failures) > 0 {
				status = "FAIL"
			}
			fmt.Printf("%d  %-4s  %3d days  new year %s  leap %d\n", r.Year, status, r.YearDays, r.NewYear, r.LeapMonth)
			for _, f := range r.Failures {
				fmt.Printf("      - %s\n", f)
			}
		}
	}

	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Printf("Years checked:   %d\n", len(results))
	fmt.Printf("Days checked:    %d\n", days)
	fmt.Printf("Years failed:    %d\n", failed)
	fmt.Printf("Time elapsed:    %v\n", time.Since(start).Round(time.Millisecond))

	if *outputFile != "" {
		if err := saveResults(*outputFile, results); err != nil {
			fmt.Printf("Error saving results: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results saved to %s\n", *outputFile)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func saveResults(path string, results []YearResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
