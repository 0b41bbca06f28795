package calendar

import "fmt"

// Supported range of the lunar table, inclusive.
const (
	MinYear = 1900
	MaxYear = 2100
)

// lunarInfo holds one packed record per lunar year starting at 1900.
//
//	bits 0-3   leap month number (0 = none)
//	bits 4-15  lengths of months 12..1, set = 30 days (month m is bit 16-m)
//	bit 16     length of the leap month, set = 30 days
var lunarInfo = [MaxYear - MinYear + 1]int{
	0x04bd8, 0x04ae0, 0x0a570, 0x054d5, 0x0d260, 0x0d950, 0x16554, 0x056a0, 0x09ad0, 0x055d2, // 1900
	0x04ae0, 0x0a5b6, 0x0a4d0, 0x0d250, 0x1d255, 0x0b540, 0x0d6a0, 0x0ada2, 0x095b0, 0x14977, // 1910
	0x04970, 0x0a4b0, 0x0b4b5, 0x06a50, 0x06d40, 0x1ab54, 0x02b60, 0x09570, 0x052f2, 0x04970, // 1920
	0x06566, 0x0d4a0, 0x0ea50, 0x06e95, 0x05ad0, 0x02b60, 0x186e3, 0x092e0, 0x1c8d7, 0x0c950, // 1930
	0x0d4a0, 0x1d8a6, 0x0b550, 0x056a0, 0x1a5b4, 0x025d0, 0x092d0, 0x0d2b2, 0x0a950, 0x0b557, // 1940
	0x06ca0, 0x0b550, 0x15355, 0x04da0, 0x0a5b0, 0x14573, 0x052b0, 0x0a9a8, 0x0e950, 0x06aa0, // 1950
	0x0aea6, 0x0ab50, 0x04b60, 0x0aae4, 0x0a570, 0x05260, 0x0f263, 0x0d950, 0x05b57, 0x056a0, // 1960
	0x096d0, 0x04dd5, 0x04ad0, 0x0a4d0, 0x0d4d4, 0x0d250, 0x0d558, 0x0b540, 0x0b6a0, 0x195a6, // 1970
	0x095b0, 0x049b0, 0x0a974, 0x0a4b0, 0x0b27a, 0x06a50, 0x06d40, 0x0af46, 0x0ab60, 0x09570, // 1980
	0x04af5, 0x04970, 0x064b0, 0x074a3, 0x0ea50, 0x06b58, 0x05ac0, 0x0ab60, 0x096d5, 0x092e0, // 1990
	0x0c960, 0x0d954, 0x0d4a0, 0x0da50, 0x07552, 0x056a0, 0x0abb7, 0x025d0, 0x092d0, 0x0cab5, // 2000
	0x0a950, 0x0b4a0, 0x0baa4, 0x0ad50, 0x055d9, 0x04ba0, 0x0a5b0, 0x15176, 0x052b0, 0x0a930, // 2010
	0x07954, 0x06aa0, 0x0ad50, 0x05b52, 0x04b60, 0x0a6e6, 0x0a4e0, 0x0d260, 0x0ea65, 0x0d530, // 2020
	0x05aa0, 0x076a3, 0x096d0, 0x04afb, 0x04ad0, 0x0a4d0, 0x1d0b6, 0x0d250, 0x0d520, 0x0dd45, // 2030
	0x0b5a0, 0x056d0, 0x055b2, 0x049b0, 0x0a577, 0x0a4b0, 0x0aa50, 0x1b255, 0x06d20, 0x0ada0, // 2040
	0x14b63, 0x09370, 0x049f8, 0x04970, 0x064b0, 0x168a6, 0x0ea50, 0x06b20, 0x1a6c4, 0x0aae0, // 2050
	0x0a2e0, 0x0d2e3, 0x0c960, 0x0d557, 0x0d4a0, 0x0da50, 0x05d55, 0x056a0, 0x0a6d0, 0x055d4, // 2060
	0x052d0, 0x0a9b8, 0x0a950, 0x0b4a0, 0x0b6a6, 0x0ad50, 0x055a0, 0x0aba4, 0x0a5b0, 0x052b0, // 2070
	0x0b273, 0x06930, 0x07337, 0x06aa0, 0x0ad50, 0x14b55, 0x04b60, 0x0a570, 0x054e4, 0x0d160, // 2080
	0x0e968, 0x0d520, 0x0daa0, 0x16aa6, 0x056d0, 0x04ae0, 0x0a9d4, 0x0a2d0, 0x0d150, 0x0f252, // 2090
	0x0d520, // 2100
}

var (
	stemNames   = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	branchNames = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	zodiacNames = [12]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}
	monthNames  = [12]string{"正", "二", "三", "四", "五", "六", "七", "八", "九", "十", "冬", "腊"}
	dayNames    = [30]string{
		"初一", "初二", "初三", "初四", "初五", "初六", "初七", "初八", "初九", "初十",
		"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
		"廿一", "廿二", "廿三", "廿四", "廿五", "廿六", "廿七", "廿八", "廿九", "三十",
	}
)

// Solar terms in index order, starting with the term nearest January 6.
var solarTermNames = [24]string{
	"小寒", "大寒", "立春", "雨水", "惊蛰", "春分",
	"清明", "谷雨", "立夏", "小满", "芒种", "夏至",
	"小暑", "大暑", "立秋", "处暑", "白露", "秋分",
	"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

// solarTermMinutes are mean offsets, in minutes, of each term from the
// first term of the year.
var solarTermMinutes = [24]int{
	0, 21208, 42467, 63836, 85337, 107014, 128867, 150921, 173149, 195551,
	218072, 240693, 263343, 285989, 308563, 331033, 353350, 375494, 397447,
	419210, 440795, 462224, 483532, 504758,
}

type monthDay struct{ month, day int }

var lunarFestivals = map[monthDay]string{
	{1, 1}:   "春节",
	{1, 15}:  "元宵节",
	{2, 2}:   "龙抬头",
	{5, 5}:   "端午节",
	{7, 7}:   "七夕节",
	{7, 15}:  "中元节",
	{8, 15}:  "中秋节",
	{9, 9}:   "重阳节",
	{12, 8}:  "腊八节",
	{12, 23}: "小年",
	{12, 30}: "除夕",
}

var solarFestivals = map[monthDay]string{
	{1, 1}:   "元旦",
	{2, 14}:  "情人节",
	{3, 8}:   "妇女节",
	{3, 12}:  "植树节",
	{4, 1}:   "愚人节",
	{5, 1}:   "劳动节",
	{5, 4}:   "青年节",
	{6, 1}:   "儿童节",
	{7, 1}:   "建党节",
	{8, 1}:   "建军节",
	{9, 10}:  "教师节",
	{10, 1}:  "国庆节",
	{12, 25}: "圣诞节",
}

// yearRecord is the decoded form of one lunarInfo entry.
type yearRecord struct {
	monthDays [12]int // ordinary months 1..12, 29 or 30
	leapMonth int     // 0 when the year has no leap month
	leapDays  int     // 0, 29 or 30
	days      int     // total days in the lunar year
	offset    int     // days from the lunar epoch to the first day of this year
}

var records = decodeTable()

func decodeTable() [len(lunarInfo)]yearRecord {
	var out [len(lunarInfo)]yearRecord
	offset := 0
	for i, info := range lunarInfo {
		r := decodeRecord(info)
		r.offset = offset
		offset += r.days
		out[i] = r
	}
	return out
}

func decodeRecord(info int) yearRecord {
	var r yearRecord
	for m := 1; m <= 12; m++ {
		r.monthDays[m-1] = 29
		if info&(0x10000>>m) != 0 {
			r.monthDays[m-1] = 30
		}
		r.days += r.monthDays[m-1]
	}
	if r.leapMonth = info & 0xf; r.leapMonth != 0 {
		r.leapDays = 29
		if info&0x10000 != 0 {
			r.leapDays = 30
		}
	}
	r.days += r.leapDays
	return r
}

func recordFor(year int) (yearRecord, error) {
	if year < MinYear || year > MaxYear {
		return yearRecord{}, fmt.Errorf("year %d not in [%d, %d]: %w", year, MinYear, MaxYear, ErrOutOfRange)
	}
	return records[year-MinYear], nil
}

// StemName returns the heavenly stem for index 0..9, or "" if out of range.
func StemName(i int) string {
	if i < 0 || i >= len(stemNames) {
		return ""
	}
	return stemNames[i]
}

// BranchName returns the earthly branch for index 0..11, or "" if out of range.
func BranchName(i int) string {
	if i < 0 || i >= len(branchNames) {
		return ""
	}
	return branchNames[i]
}

// ZodiacName returns the zodiac animal for branch index 0..11, or "".
func ZodiacName(i int) string {
	if i < 0 || i >= len(zodiacNames) {
		return ""
	}
	return zodiacNames[i]
}

// LunarMonthName returns the bare month label (正, 二 ... 腊) for month 1..12.
func LunarMonthName(month int) string {
	if month < 1 || month > len(monthNames) {
		return ""
	}
	return monthNames[month-1]
}

// LunarDayName returns the day label (初一 ... 三十) for day 1..30.
func LunarDayName(day int) string {
	if day < 1 || day > len(dayNames) {
		return ""
	}
	return dayNames[day-1]
}

// SolarTermName returns the name of term 0..23, or "".
func SolarTermName(i int) string {
	if i < 0 || i >= len(solarTermNames) {
		return ""
	}
	return solarTermNames[i]
}

// LunarFestival looks up a festival by lunar month and day.
func LunarFestival(month, day int) (string, bool) {
	name, ok := lunarFestivals[monthDay{month, day}]
	return name, ok
}

// SolarFestival looks up a festival by Gregorian month and day.
func SolarFestival(month, day int) (string, bool) {
	name, ok := solarFestivals[monthDay{month, day}]
	return name, ok
}
