package calendar

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

const dateLayout = "2006-01-02"

// SolarDate is a proleptic Gregorian calendar date with no time of day
// or zone attached.
type SolarDate struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// NewSolarDate returns the civil date of t in t's location.
func NewSolarDate(t time.Time) SolarDate {
	y, m, d := t.Date()
	return SolarDate{Year: y, Month: int(m), Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (SolarDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return SolarDate{}, err
	}
	return NewSolarDate(t), nil
}

// ValidateSolar reports whether year/month/day names a real Gregorian date.
func ValidateSolar(year, month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d not in [1, 12]: %w", month, ErrOutOfRange)
	}
	if n := int(datetime.DaysInMonth(year, datetime.Month(month))); day < 1 || day > n {
		return fmt.Errorf("day %d not in [1, %d] for %04d-%02d: %w", day, n, year, month, ErrOutOfRange)
	}
	return nil
}

// Time returns midnight UTC of the date.
func (d SolarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d SolarDate) String() string {
	return d.Time().Format(dateLayout)
}

func (d SolarDate) AddDays(n int) SolarDate {
	return NewSolarDate(d.Time().AddDate(0, 0, n))
}

func (d SolarDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d SolarDate) Before(o SolarDate) bool {
	return d.Time().Before(o.Time())
}

// daysSince returns the signed whole-day difference to - from.
func daysSince(from, to SolarDate) int {
	return int((to.Time().Unix() - from.Time().Unix()) / 86400)
}

// DaysBetween returns the absolute number of days between a and b.
func DaysBetween(a, b SolarDate) int {
	n := daysSince(a, b)
	if n < 0 {
		return -n
	}
	return n
}

var weekdayNames = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// FormatSolarCN formats a date as 2024年2月10日.
func FormatSolarCN(d SolarDate) string {
	return fmt.Sprintf("%d年%d月%d日", d.Year, d.Month, d.Day)
}

// WeekdayCN returns the Chinese weekday name, e.g. 星期六.
func WeekdayCN(d SolarDate) string {
	return weekdayNames[d.Weekday()]
}

// mod is the non-negative remainder of a / n.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
