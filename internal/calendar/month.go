package calendar

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

var gregorianMonthNames = [12]string{
	"一月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "十一月", "十二月",
}

// DayCell is one day of a MonthView. Info is nil for days that precede
// the lunar epoch.
type DayCell struct {
	Day         int       `json:"day"`
	Weekday     int       `json:"weekday"` // 0 = Sunday
	IsWeekend   bool      `json:"is_weekend"`
	HasFestival bool      `json:"has_festival"`
	HasTerm     bool      `json:"has_solar_term"`
	DisplayText string    `json:"display_text"`
	Info        *DateInfo `json:"info,omitempty"`
}

// MonthView is a single page of a wall calendar.
type MonthView struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Title      string `json:"title"`       // 2024年 二月
	LunarTitle string `json:"lunar_title"` // 甲辰年 正月, of the 1st of the month

	// LeadingBlanks is the number of empty cells before day 1 in a
	// Sunday-first week layout.
	LeadingBlanks int       `json:"leading_blanks"`
	Days          []DayCell `json:"days"`
}

// MonthGrid builds the calendar page for a Gregorian month.
func MonthGrid(year, month int) (MonthView, error) {
	if year < MinYear || year > MaxYear {
		return MonthView{}, fmt.Errorf("year %d not in [%d, %d]: %w", year, MinYear, MaxYear, ErrOutOfRange)
	}
	if month < 1 || month > 12 {
		return MonthView{}, fmt.Errorf("month %d not in [1, 12]: %w", month, ErrOutOfRange)
	}

	first := SolarDate{Year: year, Month: month, Day: 1}
	view := MonthView{
		Year:          year,
		Month:         month,
		Title:         fmt.Sprintf("%d年 %s", year, gregorianMonthNames[month-1]),
		LeadingBlanks: int(first.Weekday()),
	}
	if l, err := SolarToLunar(year, month, 1); err == nil {
		view.LunarTitle = l.YearName + " " + l.MonthName
	}

	n := int(datetime.DaysInMonth(year, datetime.Month(month)))
	view.Days = make([]DayCell, 0, n)
	for day := 1; day <= n; day++ {
		wd := SolarDate{Year: year, Month: month, Day: day}.Weekday()
		cell := DayCell{
			Day:       day,
			Weekday:   int(wd),
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
		}
		if info, err := GetDateInfo(year, month, day); err == nil {
			cell.Info = &info
			cell.DisplayText = info.DisplayText
			cell.HasFestival = len(info.Festivals) > 0
			cell.HasTerm = info.SolarTerm != ""
		}
		view.Days = append(view.Days, cell)
	}
	return view, nil
}
