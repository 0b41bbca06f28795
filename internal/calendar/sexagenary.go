package calendar

import "encoding/json"

// dayPillarEpoch is 1900-01-01, a 甲戌 day (stem 0, branch 10).
var dayPillarEpoch = SolarDate{Year: 1900, Month: 1, Day: 1}

const (
	dayPillarEpochStem   = 0
	dayPillarEpochBranch = 10
)

// firstMonthStem gives the stem of lunar month 1 for each pair of year
// stems: 甲己→丙, 乙庚→戊, 丙辛→庚, 丁壬→壬, 戊癸→甲.
var firstMonthStem = [5]int{2, 4, 6, 8, 0}

// StemBranch is one position in the sixty-step cycle.
type StemBranch struct {
	Stem   int `json:"stem"`
	Branch int `json:"branch"`
}

func (sb StemBranch) String() string {
	return StemName(sb.Stem) + BranchName(sb.Branch)
}

// Sexagenary holds the year, month and day stem-branch labels of a lunar
// date. Day is meaningful only when DayKnown is set.
type Sexagenary struct {
	Year     StemBranch
	Month    StemBranch
	Day      StemBranch
	DayKnown bool
}

// String renders the labels as "甲辰年 丙寅月 甲辰日", with 未知 in place
// of the day label when it could not be computed.
func (s Sexagenary) String() string {
	day := "未知"
	if s.DayKnown {
		day = s.Day.String() + "日"
	}
	return s.Year.String() + "年 " + s.Month.String() + "月 " + day
}

func (s Sexagenary) MarshalJSON() ([]byte, error) {
	out := struct {
		Year  string `json:"year"`
		Month string `json:"month"`
		Day   string `json:"day,omitempty"`
		Text  string `json:"text"`
	}{
		Year:  s.Year.String(),
		Month: s.Month.String(),
		Text:  s.String(),
	}
	if s.DayKnown {
		out.Day = s.Day.String()
	}
	return json.Marshal(out)
}

// yearStemBranch uses the lunar new year as the cutover, not Lichun.
func yearStemBranch(year int) StemBranch {
	return StemBranch{Stem: mod(year-4, 10), Branch: mod(year-4, 12)}
}

// SexagenaryOf computes the stem-branch labels of a lunar date. The day
// label always counts from the ordinary month, so a leap-month day shares
// its label with the same day of the month it follows. The day label is
// unknown only when the year or month is outside the tables.
func SexagenaryOf(d LunarDate) Sexagenary {
	year := yearStemBranch(d.Year)
	s := Sexagenary{
		Year: year,
		Month: StemBranch{
			Stem:   mod(firstMonthStem[year.Stem%5]+d.Month-1, 10),
			Branch: mod(d.Month+1, 12),
		},
	}
	r, err := recordFor(d.Year)
	if err != nil || d.Month < 1 || d.Month > 12 {
		return s
	}
	solar := lunarEpoch.AddDays(r.dayOffset(d.Month, d.Day, false))
	n := daysSince(dayPillarEpoch, solar)
	s.Day = StemBranch{
		Stem:   mod(dayPillarEpochStem+n, 10),
		Branch: mod(dayPillarEpochBranch+n, 12),
	}
	s.DayKnown = true
	return s
}

// YearStemBranch returns the stem-branch name of a lunar year, e.g. 甲辰年.
func YearStemBranch(year int) string {
	return yearStemBranch(year).String() + "年"
}

// Zodiac returns the zodiac animal of a lunar year.
func Zodiac(year int) string {
	return ZodiacName(mod(year-4, 12))
}
