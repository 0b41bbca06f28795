package calendar

// DateInfo aggregates everything known about a single Gregorian date.
type DateInfo struct {
	Solar         SolarDate `json:"solar"`
	Weekday       string    `json:"weekday"`
	Lunar         Lunar     `json:"lunar"`
	SolarTerm     string    `json:"solar_term,omitempty"`
	LunarFestival string    `json:"lunar_festival,omitempty"`
	SolarFestival string    `json:"solar_festival,omitempty"`
	Festivals     []string  `json:"festivals,omitempty"`

	// DisplayText is the single label for a calendar cell: the solar term,
	// else the lunar festival, else the solar festival, else the lunar day.
	DisplayText string `json:"display_text"`
}

// GetDateInfo returns the combined calendar facts for a Gregorian date.
func GetDateInfo(year, month, day int) (DateInfo, error) {
	lunar, err := SolarToLunar(year, month, day)
	if err != nil {
		return DateInfo{}, err
	}
	solar := SolarDate{Year: year, Month: month, Day: day}
	info := DateInfo{
		Solar:   solar,
		Weekday: WeekdayCN(solar),
		Lunar:   lunar,
	}
	info.SolarTerm, _ = SolarTermOn(year, month, day)
	// Festivals key on month and day alone, so a leap month repeats them.
	info.LunarFestival, _ = LunarFestival(lunar.Month, lunar.Day)
	info.SolarFestival, _ = SolarFestival(month, day)

	for _, f := range []string{info.LunarFestival, info.SolarFestival} {
		if f != "" {
			info.Festivals = append(info.Festivals, f)
		}
	}

	switch {
	case info.SolarTerm != "":
		info.DisplayText = info.SolarTerm
	case info.LunarFestival != "":
		info.DisplayText = info.LunarFestival
	case info.SolarFestival != "":
		info.DisplayText = info.SolarFestival
	default:
		info.DisplayText = lunar.DayName
	}
	return info, nil
}
