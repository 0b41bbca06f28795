package calendar

import (
	"fmt"
	"time"
)

// The term formula is a mean approximation: a fixed tropical year added to
// the 1900 小寒 instant. Dates may be a day off near term boundaries.
var termEpoch = time.Date(1900, time.January, 6, 2, 5, 0, 0, time.UTC)

const msPerTropicalYear = 31556925974.7

// SolarTerm is one of the 24 solar terms of a year.
type SolarTerm struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Month int    `json:"month" yaml:"month"`
	Day   int    `json:"day" yaml:"day"`
}

// SolarTermDate returns the UTC civil date of term index (0..23) in year.
func SolarTermDate(year, index int) (SolarDate, error) {
	if year < MinYear || year > MaxYear {
		return SolarDate{}, fmt.Errorf("year %d not in [%d, %d]: %w", year, MinYear, MaxYear, ErrOutOfRange)
	}
	if index < 0 || index >= len(solarTermMinutes) {
		return SolarDate{}, fmt.Errorf("solar term %d not in [0, 23]: %w", index, ErrOutOfRange)
	}
	return termDate(year, index), nil
}

func termDate(year, index int) SolarDate {
	ms := int64(msPerTropicalYear*float64(year-MinYear)) + int64(solarTermMinutes[index])*60_000
	return NewSolarDate(termEpoch.Add(time.Duration(ms) * time.Millisecond))
}

// SolarTermOn returns the name of the solar term falling on the date, if any.
func SolarTermOn(year, month, day int) (string, bool) {
	if year < MinYear || year > MaxYear {
		return "", false
	}
	for i := range solarTermMinutes {
		if d := termDate(year, i); d.Month == month && d.Day == day {
			return solarTermNames[i], true
		}
	}
	return "", false
}

// AllSolarTerms returns the 24 terms of year in index order.
func AllSolarTerms(year int) ([]SolarTerm, error) {
	if year < MinYear || year > MaxYear {
		return nil, fmt.Errorf("year %d not in [%d, %d]: %w", year, MinYear, MaxYear, ErrOutOfRange)
	}
	terms := make([]SolarTerm, 0, len(solarTermNames))
	for i, name := range solarTermNames {
		d := termDate(year, i)
		terms = append(terms, SolarTerm{Index: i, Name: name, Month: d.Month, Day: d.Day})
	}
	return terms, nil
}
