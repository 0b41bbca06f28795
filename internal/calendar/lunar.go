// Package calendar converts between the Gregorian calendar and the Chinese
// lunisolar calendar for the years 1900 through 2100, and derives
// stem-branch labels, zodiac animals, solar terms and festivals.
//
// All functions are pure over read-only tables and safe for concurrent use.
package calendar

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a year falls outside [MinYear, MaxYear],
// a date does not exist in its calendar, or a leap month is requested for
// a month that is not the year's leap month.
var ErrOutOfRange = errors.New("date out of range")

// IsOutOfRange checks if an error is an out-of-range error.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// lunarEpoch is the solar date of lunar 1900-01-01.
var lunarEpoch = SolarDate{Year: 1900, Month: 1, Day: 31}

// LunarDate is a date in the Chinese lunisolar calendar. A leap month
// shares its number with the ordinary month it follows.
type LunarDate struct {
	Year   int  `json:"year" yaml:"year"`
	Month  int  `json:"month" yaml:"month"`
	Day    int  `json:"day" yaml:"day"`
	IsLeap bool `json:"is_leap" yaml:"is_leap"`
}

// Lunar is a LunarDate together with its display labels.
type Lunar struct {
	LunarDate
	YearName   string     `json:"year_name"`  // 甲辰年
	MonthName  string     `json:"month_name"` // 正月, 闰四月
	DayName    string     `json:"day_name"`   // 初一
	Sexagenary Sexagenary `json:"sexagenary"`
	Zodiac     string     `json:"zodiac"`
}

// YearLength returns the number of days in the given lunar year,
// including its leap month.
func YearLength(year int) (int, error) {
	r, err := recordFor(year)
	if err != nil {
		return 0, err
	}
	return r.days, nil
}

// LeapMonth returns the leap month of the year, 0 if there is none.
func LeapMonth(year int) (int, error) {
	r, err := recordFor(year)
	if err != nil {
		return 0, err
	}
	return r.leapMonth, nil
}

// LeapMonthLength returns 29 or 30, or 0 when the year has no leap month.
func LeapMonthLength(year int) (int, error) {
	r, err := recordFor(year)
	if err != nil {
		return 0, err
	}
	return r.leapDays, nil
}

// MonthLength returns the length of the ordinary month 1..12.
func MonthLength(year, month int) (int, error) {
	r, err := recordFor(year)
	if err != nil {
		return 0, err
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("lunar month %d not in [1, 12]: %w", month, ErrOutOfRange)
	}
	return r.monthDays[month-1], nil
}

// SolarToLunar converts a Gregorian date to the lunar calendar.
// Dates before the lunar epoch (1900-01-31) are out of range because
// lunar 1899 is not tabulated.
func SolarToLunar(year, month, day int) (Lunar, error) {
	if year < MinYear || year > MaxYear {
		return Lunar{}, fmt.Errorf("solar year %d not in [%d, %d]: %w", year, MinYear, MaxYear, ErrOutOfRange)
	}
	if err := ValidateSolar(year, month, day); err != nil {
		return Lunar{}, err
	}
	target := SolarDate{Year: year, Month: month, Day: day}
	offset := daysSince(lunarEpoch, target)
	if offset < 0 {
		return Lunar{}, fmt.Errorf("%s precedes lunar epoch %s: %w", target, lunarEpoch, ErrOutOfRange)
	}
	ld, ok := lunarFromOffset(offset)
	if !ok {
		return Lunar{}, fmt.Errorf("%s beyond lunar year %d: %w", target, MaxYear, ErrOutOfRange)
	}
	return describe(ld), nil
}

// lunarFromOffset walks years and then months, visiting a leap month
// right after the ordinary month of the same number. An offset landing
// exactly on the end of that ordinary month resolves to the first day of
// the leap month.
func lunarFromOffset(offset int) (LunarDate, bool) {
	year := MinYear
	for year < MaxYear && offset >= records[year-MinYear].days {
		offset -= records[year-MinYear].days
		year++
	}
	r := records[year-MinYear]
	for m := 1; m <= 12; m++ {
		if offset < r.monthDays[m-1] {
			return LunarDate{Year: year, Month: m, Day: offset + 1}, true
		}
		offset -= r.monthDays[m-1]
		if m == r.leapMonth {
			if offset < r.leapDays {
				return LunarDate{Year: year, Month: m, Day: offset + 1, IsLeap: true}, true
			}
			offset -= r.leapDays
		}
	}
	return LunarDate{}, false
}

// LunarToSolar converts a lunar date to the Gregorian calendar. isLeap
// selects the leap occurrence of month and is rejected unless month is
// the year's leap month.
func LunarToSolar(year, month, day int, isLeap bool) (SolarDate, error) {
	r, err := recordFor(year)
	if err != nil {
		return SolarDate{}, err
	}
	if month < 1 || month > 12 {
		return SolarDate{}, fmt.Errorf("lunar month %d not in [1, 12]: %w", month, ErrOutOfRange)
	}
	if isLeap && month != r.leapMonth {
		return SolarDate{}, fmt.Errorf("lunar year %d has no leap month %d: %w", year, month, ErrOutOfRange)
	}
	length := r.monthDays[month-1]
	if isLeap {
		length = r.leapDays
	}
	if day < 1 || day > length {
		return SolarDate{}, fmt.Errorf("lunar day %d not in [1, %d]: %w", day, length, ErrOutOfRange)
	}

	return lunarEpoch.AddDays(r.dayOffset(month, day, isLeap)), nil
}

// dayOffset counts days from the lunar epoch to the given day of the
// year. month must be in [1, 12]; day is not checked against the month
// length.
func (r yearRecord) dayOffset(month, day int, isLeap bool) int {
	offset := r.offset
	for m := 1; m < month; m++ {
		offset += r.monthDays[m-1]
		if m == r.leapMonth {
			offset += r.leapDays
		}
	}
	if isLeap {
		offset += r.monthDays[month-1]
	}
	return offset + day - 1
}

// ToSolar is shorthand for LunarToSolar on d.
func (d LunarDate) ToSolar() (SolarDate, error) {
	return LunarToSolar(d.Year, d.Month, d.Day, d.IsLeap)
}

// MonthLabel returns the month label, prefixed with 闰 for a leap month.
func (d LunarDate) MonthLabel() string {
	name := LunarMonthName(d.Month) + "月"
	if d.IsLeap {
		return "闰" + name
	}
	return name
}

func describe(ld LunarDate) Lunar {
	return Lunar{
		LunarDate:  ld,
		YearName:   YearStemBranch(ld.Year),
		MonthName:  ld.MonthLabel(),
		DayName:    LunarDayName(ld.Day),
		Sexagenary: SexagenaryOf(ld),
		Zodiac:     Zodiac(ld.Year),
	}
}
