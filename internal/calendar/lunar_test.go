package calendar

import (
	"errors"
	"testing"
)

func TestYearQueries(t *testing.T) {
	tests := []struct {
		year     int
		leap     int
		leapDays int
		yearDays int
		month12  int
	}{
		{year: 1900, leap: 8, leapDays: 29, yearDays: 384, month12: 30},
		{year: 2020, leap: 4, leapDays: 29, yearDays: 384},
		{year: 2023, leap: 2, leapDays: 29, yearDays: 384, month12: 30},
		{year: 2024, leap: 0, leapDays: 0, yearDays: 354, month12: 29},
		{year: 2025, leap: 6, leapDays: 29, yearDays: 384},
		{year: 2033, leap: 11, leapDays: 29, yearDays: 384},
	}

	for _, tt := range tests {
		leap, err := LeapMonth(tt.year)
		if err != nil {
			t.Fatalf("LeapMonth(%d) error = %v", tt.year, err)
		}
		if leap != tt.leap {
			t.Errorf("LeapMonth(%d) = %d, want %d", tt.year, leap, tt.leap)
		}
		if got, _ := LeapMonthLength(tt.year); got != tt.leapDays {
			t.Errorf("LeapMonthLength(%d) = %d, want %d", tt.year, got, tt.leapDays)
		}
		if got, _ := YearLength(tt.year); got != tt.yearDays {
			t.Errorf("YearLength(%d) = %d, want %d", tt.year, got, tt.yearDays)
		}
		if tt.month12 != 0 {
			if got, _ := MonthLength(tt.year, 12); got != tt.month12 {
				t.Errorf("MonthLength(%d, 12) = %d, want %d", tt.year, got, tt.month12)
			}
		}
	}
}

func TestYearLengthMatchesMonths(t *testing.T) {
	for year := MinYear; year <= MaxYear; year++ {
		total, _ := LeapMonthLength(year)
		for m := 1; m <= 12; m++ {
			n, err := MonthLength(year, m)
			if err != nil {
				t.Fatalf("MonthLength(%d, %d) error = %v", year, m, err)
			}
			if n != 29 && n != 30 {
				t.Fatalf("MonthLength(%d, %d) = %d, want 29 or 30", year, m, n)
			}
			total += n
		}
		if got, _ := YearLength(year); got != total {
			t.Errorf("YearLength(%d) = %d, want %d", year, got, total)
		}
	}
}

func TestYearQueries_OutOfRange(t *testing.T) {
	for _, year := range []int{1899, 2101} {
		if _, err := YearLength(year); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("YearLength(%d) error = %v, want ErrOutOfRange", year, err)
		}
		if _, err := LeapMonth(year); !IsOutOfRange(err) {
			t.Errorf("LeapMonth(%d) error = %v, want ErrOutOfRange", year, err)
		}
	}
	if _, err := MonthLength(2024, 13); !IsOutOfRange(err) {
		t.Errorf("MonthLength(2024, 13) error = %v, want ErrOutOfRange", err)
	}
}

func TestSolarToLunar(t *testing.T) {
	tests := []struct {
		name  string
		solar SolarDate
		want  LunarDate
		month string
		day   string
	}{
		{"lunar epoch", SolarDate{1900, 1, 31}, LunarDate{1900, 1, 1, false}, "正月", "初一"},
		{"new year 2024", SolarDate{2024, 2, 10}, LunarDate{2024, 1, 1, false}, "正月", "初一"},
		{"new year eve 2025", SolarDate{2025, 1, 28}, LunarDate{2024, 12, 29, false}, "腊月", "廿九"},
		{"new year 2025", SolarDate{2025, 1, 29}, LunarDate{2025, 1, 1, false}, "正月", "初一"},
		{"last day before leap month", SolarDate{2023, 3, 21}, LunarDate{2023, 2, 30, false}, "二月", "三十"},
		{"first day of leap month", SolarDate{2023, 3, 22}, LunarDate{2023, 2, 1, true}, "闰二月", "初一"},
		{"last day of leap month", SolarDate{2023, 4, 19}, LunarDate{2023, 2, 29, true}, "闰二月", "廿九"},
		{"month after leap month", SolarDate{2023, 4, 20}, LunarDate{2023, 3, 1, false}, "三月", "初一"},
		{"leap fourth month", SolarDate{2020, 5, 23}, LunarDate{2020, 4, 1, true}, "闰四月", "初一"},
		{"mid autumn", SolarDate{2020, 10, 1}, LunarDate{2020, 8, 15, false}, "八月", "十五"},
		{"leap eleventh month", SolarDate{2033, 12, 22}, LunarDate{2033, 11, 1, true}, "闰冬月", "初一"},
		{"last supported day", SolarDate{2100, 12, 31}, LunarDate{2100, 12, 1, false}, "腊月", "初一"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SolarToLunar(tt.solar.Year, tt.solar.Month, tt.solar.Day)
			if err != nil {
				t.Fatalf("SolarToLunar(%s) error = %v", tt.solar, err)
			}
			if got.LunarDate != tt.want {
				t.Errorf("SolarToLunar(%s) = %+v, want %+v", tt.solar, got.LunarDate, tt.want)
			}
			if got.MonthName != tt.month {
				t.Errorf("MonthName = %q, want %q", got.MonthName, tt.month)
			}
			if got.DayName != tt.day {
				t.Errorf("DayName = %q, want %q", got.DayName, tt.day)
			}
		})
	}
}

func TestSolarToLunar_Labels(t *testing.T) {
	got, err := SolarToLunar(2024, 2, 10)
	if err != nil {
		t.Fatalf("SolarToLunar() error = %v", err)
	}
	if got.YearName != "甲辰年" {
		t.Errorf("YearName = %q, want %q", got.YearName, "甲辰年")
	}
	if got.Zodiac != "龙" {
		t.Errorf("Zodiac = %q, want %q", got.Zodiac, "龙")
	}
	if s := got.Sexagenary.String(); s != "甲辰年 丙寅月 甲辰日" {
		t.Errorf("Sexagenary = %q, want %q", s, "甲辰年 丙寅月 甲辰日")
	}
}

func TestSolarToLunar_RangeGuard(t *testing.T) {
	tests := []struct {
		name string
		date SolarDate
	}{
		{"before 1900", SolarDate{1899, 12, 31}},
		{"after 2100", SolarDate{2101, 1, 1}},
		{"before lunar epoch", SolarDate{1900, 1, 30}},
		{"first of 1900", SolarDate{1900, 1, 1}},
		{"invalid day", SolarDate{2023, 2, 29}},
		{"invalid month", SolarDate{2023, 13, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SolarToLunar(tt.date.Year, tt.date.Month, tt.date.Day)
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("SolarToLunar(%+v) error = %v, want ErrOutOfRange", tt.date, err)
			}
		})
	}
}

func TestLunarToSolar(t *testing.T) {
	tests := []struct {
		name  string
		lunar LunarDate
		want  SolarDate
	}{
		{"epoch", LunarDate{1900, 1, 1, false}, SolarDate{1900, 1, 31}},
		{"new year 2024", LunarDate{2024, 1, 1, false}, SolarDate{2024, 2, 10}},
		{"ordinary second month 2023", LunarDate{2023, 2, 1, false}, SolarDate{2023, 2, 20}},
		{"leap second month 2023", LunarDate{2023, 2, 1, true}, SolarDate{2023, 3, 22}},
		{"third month after leap", LunarDate{2023, 3, 1, false}, SolarDate{2023, 4, 20}},
		{"leap fourth month 2020", LunarDate{2020, 4, 1, true}, SolarDate{2020, 5, 23}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LunarToSolar(tt.lunar.Year, tt.lunar.Month, tt.lunar.Day, tt.lunar.IsLeap)
			if err != nil {
				t.Fatalf("LunarToSolar(%+v) error = %v", tt.lunar, err)
			}
			if got != tt.want {
				t.Errorf("LunarToSolar(%+v) = %s, want %s", tt.lunar, got, tt.want)
			}
		})
	}
}

func TestLunarToSolar_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		lunar LunarDate
	}{
		{"year before range", LunarDate{1899, 1, 1, false}},
		{"year after range", LunarDate{2101, 1, 1, false}},
		{"leap request in year without leap month", LunarDate{2024, 1, 1, true}},
		{"leap request for wrong month", LunarDate{2023, 3, 1, true}},
		{"day past short month", LunarDate{2024, 12, 30, false}},
		{"month zero", LunarDate{2024, 0, 1, false}},
		{"day zero", LunarDate{2024, 1, 0, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LunarToSolar(tt.lunar.Year, tt.lunar.Month, tt.lunar.Day, tt.lunar.IsLeap)
			if !IsOutOfRange(err) {
				t.Errorf("LunarToSolar(%+v) error = %v, want ErrOutOfRange", tt.lunar, err)
			}
		})
	}
}

func TestLeapRejectionEveryYear(t *testing.T) {
	for year := MinYear; year <= MaxYear; year++ {
		leap, _ := LeapMonth(year)
		for m := 1; m <= 12; m++ {
			_, err := LunarToSolar(year, m, 1, true)
			if m == leap && err != nil {
				t.Errorf("LunarToSolar(%d, %d, 1, leap) error = %v", year, m, err)
			}
			if m != leap && !IsOutOfRange(err) {
				t.Errorf("LunarToSolar(%d, %d, 1, leap) error = %v, want ErrOutOfRange", year, m, err)
			}
		}
	}
}

func TestRoundTrip_Solar(t *testing.T) {
	start := SolarDate{1900, 1, 31}
	end := SolarDate{2100, 12, 31}
	for d := start; !end.Before(d); d = d.AddDays(1) {
		l, err := SolarToLunar(d.Year, d.Month, d.Day)
		if err != nil {
			t.Fatalf("SolarToLunar(%s) error = %v", d, err)
		}
		back, err := l.ToSolar()
		if err != nil {
			t.Fatalf("LunarToSolar(%+v) error = %v", l.LunarDate, err)
		}
		if back != d {
			t.Fatalf("round trip %s -> %+v -> %s", d, l.LunarDate, back)
		}
	}
}

func TestRoundTrip_Lunar(t *testing.T) {
	check := func(want LunarDate) {
		t.Helper()
		s, err := want.ToSolar()
		if err != nil {
			t.Fatalf("LunarToSolar(%+v) error = %v", want, err)
		}
		got, err := SolarToLunar(s.Year, s.Month, s.Day)
		if err != nil {
			t.Fatalf("SolarToLunar(%s) error = %v", s, err)
		}
		if got.LunarDate != want {
			t.Fatalf("round trip %+v -> %s -> %+v", want, s, got.LunarDate)
		}
	}

	// Lunar 2100 runs into 2101, past the solar range, so stop at 2099.
	for year := MinYear; year < MaxYear; year++ {
		leap, _ := LeapMonth(year)
		for m := 1; m <= 12; m++ {
			n, _ := MonthLength(year, m)
			for d := 1; d <= n; d++ {
				check(LunarDate{Year: year, Month: m, Day: d})
			}
			if m == leap {
				n, _ := LeapMonthLength(year)
				for d := 1; d <= n; d++ {
					check(LunarDate{Year: year, Month: m, Day: d, IsLeap: true})
				}
			}
		}
	}
}
