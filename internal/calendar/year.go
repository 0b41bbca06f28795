package calendar

// YearInfo summarises one lunar year.
type YearInfo struct {
	Year          int       `json:"year"`
	StemBranch    string    `json:"stem_branch"` // 甲辰年
	Zodiac        string    `json:"zodiac"`
	Days          int       `json:"days"`
	MonthDays     [12]int   `json:"month_days"`
	LeapMonth     int       `json:"leap_month,omitempty"`
	LeapMonthName string    `json:"leap_month_name,omitempty"` // 闰四月
	LeapMonthDays int       `json:"leap_month_days,omitempty"`
	NewYear       SolarDate `json:"new_year"` // solar date of 正月初一
}

// DescribeYear returns the month layout and labels of a lunar year.
func DescribeYear(year int) (YearInfo, error) {
	r, err := recordFor(year)
	if err != nil {
		return YearInfo{}, err
	}
	info := YearInfo{
		Year:          year,
		StemBranch:    YearStemBranch(year),
		Zodiac:        Zodiac(year),
		Days:          r.days,
		MonthDays:     r.monthDays,
		LeapMonth:     r.leapMonth,
		LeapMonthDays: r.leapDays,
		NewYear:       lunarEpoch.AddDays(r.offset),
	}
	if r.leapMonth != 0 {
		info.LeapMonthName = LunarDate{Year: year, Month: r.leapMonth, IsLeap: true}.MonthLabel()
	}
	return info, nil
}
