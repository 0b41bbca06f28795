// Command apitest smoke tests a running calendar planner API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -key $API_KEY
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type solarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d solarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DateInfo is the response for /dates/{date} and /dates/today
type DateInfo struct {
	Solar   solarDate `json:"solar"`
	Weekday string    `json:"weekday"`
	Lunar   struct {
		YearName  string `json:"year_name"`
		MonthName string `json:"month_name"`
		DayName   string `json:"day_name"`
		IsLeap    bool   `json:"is_leap"`
		Zodiac    string `json:"zodiac"`
	} `json:"lunar"`
	SolarTerm   string   `json:"solar_term"`
	Festivals   []string `json:"festivals"`
	DisplayText string   `json:"display_text"`
}

// Plan is the subset of a generated plan the runner inspects.
type Plan struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	TotalDays int    `json:"total_days"`
	Phases    []struct {
		Title string `json:"title"`
		Tasks []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"tasks"`
	} `json:"phases"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Calendar Planner API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testToday()
	tr.testKnownDates()
	tr.testConversions()
	tr.testMonthAndYear()
	tr.testEdgeCases()
	tr.testPlans()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health struct {
		Status string `json:"status"`
	}
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}
	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	var info DateInfo
	if err := tr.getData("/api/v1/dates/today", &info); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today: %s %s%s", info.Solar, info.Lunar.MonthName, info.Lunar.DayName))
	tr.printDateDetail(&info)
}

func (tr *TestRunner) testKnownDates() {
	tr.printSection("Known Dates")

	cases := []struct {
		date, lunar, display string
	}{
		{"2024-02-10", "正月初一", "春节"},
		{"2024-02-04", "腊月廿五", "立春"},
		{"2023-03-23", "闰二月初二", "初二"},
		{"2024-09-17", "八月十五", "中秋节"},
		{"2024-06-10", "五月初五", "端午节"},
	}
	for _, c := range cases {
		var info DateInfo
		if err := tr.getData("/api/v1/dates/"+c.date, &info); err != nil {
			tr.recordError(c.date, err.Error())
			continue
		}
		got := info.Lunar.MonthName + info.Lunar.DayName
		if got != c.lunar || info.DisplayText != c.display {
			tr.recordError(c.date, fmt.Sprintf("got %s/%s, want %s/%s", got, info.DisplayText, c.lunar, c.display))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s -> %s (%s)", c.date, got, info.DisplayText))
		tr.printDateDetail(&info)
	}
}

func (tr *TestRunner) testConversions() {
	tr.printSection("Conversions")

	var conv struct {
		Solar solarDate `json:"solar"`
	}
	if err := tr.getData("/api/v1/convert/lunar?year=2023&month=2&day=2&leap=true", &conv); err != nil {
		tr.recordError("Lunar to solar", err.Error())
	} else if conv.Solar.String() != "2023-03-23" {
		tr.recordError("Lunar to solar", fmt.Sprintf("got %s, want 2023-03-23", conv.Solar))
	} else {
		tr.recordSuccess("闰二月初二 2023 -> 2023-03-23")
	}

	var back struct {
		Lunar struct {
			Month  int  `json:"month"`
			Day    int  `json:"day"`
			IsLeap bool `json:"is_leap"`
		} `json:"lunar"`
	}
	if err := tr.getData("/api/v1/convert/solar/2023-03-23", &back); err != nil {
		tr.recordError("Solar to lunar", err.Error())
	} else if back.Lunar.Month != 2 || back.Lunar.Day != 2 || !back.Lunar.IsLeap {
		tr.recordError("Solar to lunar", fmt.Sprintf("got %+v, want leap 2-2", back.Lunar))
	} else {
		tr.recordSuccess("2023-03-23 -> leap 2-2")
	}

	var rng struct {
		Count int `json:"count"`
	}
	if err := tr.getData("/api/v1/dates?start=2024-02-01&end=2024-02-29", &rng); err != nil {
		tr.recordError("Range", err.Error())
	} else if rng.Count != 29 {
		tr.recordError("Range", fmt.Sprintf("got %d days, want 29", rng.Count))
	} else {
		tr.recordSuccess("Range 2024-02: 29 days")
	}
}

func (tr *TestRunner) testMonthAndYear() {
	tr.printSection("Month and Year")

	var view struct {
		LeadingBlanks int `json:"leading_blanks"`
		Days          []struct {
			DisplayText string `json:"display_text"`
		} `json:"days"`
	}
	if err := tr.getData("/api/v1/calendar/2024/2", &view); err != nil {
		tr.recordError("Month", err.Error())
	} else if view.LeadingBlanks != 4 || len(view.Days) != 29 {
		tr.recordError("Month", fmt.Sprintf("got %d blanks/%d days, want 4/29", view.LeadingBlanks, len(view.Days)))
	} else {
		tr.recordSuccess("Month 2024-02 grid")
	}

	var year struct {
		LeapMonth int       `json:"leap_month"`
		NewYear   solarDate `json:"new_year"`
	}
	if err := tr.getData("/api/v1/years/2025", &year); err != nil {
		tr.recordError("Year", err.Error())
	} else if year.LeapMonth != 6 || year.NewYear.String() != "2025-01-29" {
		tr.recordError("Year", fmt.Sprintf("got leap %d new year %s, want 6 2025-01-29", year.LeapMonth, year.NewYear))
	} else {
		tr.recordSuccess("Year 2025: 闰六月, 春节 2025-01-29")
	}

	var terms struct {
		Terms []struct{} `json:"terms"`
	}
	if err := tr.getData("/api/v1/solar-terms/2024", &terms); err != nil {
		tr.recordError("Solar terms", err.Error())
	} else if len(terms.Terms) != 24 {
		tr.recordError("Solar terms", fmt.Sprintf("got %d, want 24", len(terms.Terms)))
	} else {
		tr.recordSuccess("Solar terms 2024: 24")
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/v1/dates/1900-01-30", http.StatusBadRequest, "OUT_OF_RANGE"},
		{"/api/v1/dates/2101-01-01", http.StatusBadRequest, "OUT_OF_RANGE"},
		{"/api/v1/dates/2024-02-30", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/convert/lunar?year=2024&month=2&day=1&leap=true", http.StatusBadRequest, "OUT_OF_RANGE"},
		{"/api/v1/unknown", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, c := range cases {
		status, resp, err := tr.do(http.MethodGet, c.path, nil)
		if err != nil {
			tr.recordError(c.path, err.Error())
			continue
		}
		code := ""
		if resp.Error != nil {
			code = resp.Error.Code
		}
		if status != c.status || code != c.code {
			tr.recordError(c.path, fmt.Sprintf("got %d %s, want %d %s", status, code, c.status, c.code))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s -> %d %s", c.path, status, code))
	}
}

func (tr *TestRunner) testPlans() {
	tr.printSection("Plans")

	body := map[string]interface{}{
		"title":         "学习日语",
		"start":         "2024-02-10",
		"end":           "2024-03-11",
		"hours_per_day": 1.5,
		"intensity":     3,
	}

	status, resp, err := tr.do(http.MethodPost, "/api/v1/plans", body)
	if err != nil {
		tr.recordError("Create plan", err.Error())
		return
	}
	if status != http.StatusCreated {
		tr.recordError("Create plan", fmt.Sprintf("status %d (is -key set?)", status))
		return
	}
	var plan Plan
	if err := json.Unmarshal(resp.Data, &plan); err != nil {
		tr.recordError("Create plan", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Created plan %s (%s, %d days, %d phases)", plan.ID, plan.Category, plan.TotalDays, len(plan.Phases)))
	if tr.verbose {
		for _, ph := range plan.Phases {
			fmt.Printf("    %s: %d tasks\n", ph.Title, len(ph.Tasks))
		}
	}

	if len(plan.Phases) > 0 && len(plan.Phases[0].Tasks) > 0 {
		taskID := plan.Phases[0].Tasks[0].ID
		status, _, err := tr.do(http.MethodPost, "/api/v1/plans/"+plan.ID+"/tasks/"+taskID+"/toggle", nil)
		if err != nil || status != http.StatusOK {
			tr.recordError("Toggle task", fmt.Sprintf("status %d err %v", status, err))
		} else {
			tr.recordSuccess("Toggled first task")
		}
	}

	raw, err := tr.getRaw("/api/v1/plans/" + plan.ID + "/export?format=markdown")
	if err != nil {
		tr.recordError("Export", err.Error())
	} else {
		md, _ := io.ReadAll(raw.Body)
		raw.Body.Close()
		if raw.StatusCode != http.StatusOK || !strings.Contains(string(md), "- [x] ") {
			tr.recordError("Export", fmt.Sprintf("status %d, completed task missing", raw.StatusCode))
		} else {
			tr.recordSuccess("Exported markdown")
		}
	}

	status, _, err = tr.do(http.MethodDelete, "/api/v1/plans/"+plan.ID, nil)
	if err != nil || status != http.StatusOK {
		tr.recordError("Delete plan", fmt.Sprintf("status %d err %v", status, err))
		return
	}
	tr.recordSuccess("Deleted plan")
}

// =============================================================================
// Helpers
// =============================================================================

// do sends a request with the API key and decodes the envelope.
func (tr *TestRunner) do(method, path string, body interface{}) (int, *APIResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}

	resp, err := tr.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, &apiResp, nil
}

// getData GETs path and decodes the data of a successful response.
func (tr *TestRunner) getData(path string, target interface{}) error {
	_, resp, err := tr.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if !resp.Success {
		errMsg := "unknown error"
		if resp.Error != nil {
			errMsg = resp.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}
	return json.Unmarshal(resp.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, tr.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}
	return tr.client.Do(req)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDateDetail(d *DateInfo) {
	if !tr.verbose || d == nil {
		return
	}
	fmt.Printf("    %s %s%s%s (%s)\n", d.Weekday, d.Lunar.YearName, d.Lunar.MonthName, d.Lunar.DayName, d.Lunar.Zodiac)
	if d.SolarTerm != "" {
		fmt.Printf("    Solar term: %s\n", d.SolarTerm)
	}
	if len(d.Festivals) > 0 {
		fmt.Printf("    Festivals: %v\n", d.Festivals)
	}
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for plan endpoints")
	verbose := flag.Bool("v", false, "Verbose output (show date details)")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
