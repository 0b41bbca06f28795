package calendar

import "testing"

func TestMonthGrid(t *testing.T) {
	view, err := MonthGrid(2024, 2)
	if err != nil {
		t.Fatalf("MonthGrid(2024, 2) error = %v", err)
	}

	if view.Title != "2024年 二月" {
		t.Errorf("Title = %q, want %q", view.Title, "2024年 二月")
	}
	if view.LunarTitle != "癸卯年 腊月" {
		t.Errorf("LunarTitle = %q, want %q", view.LunarTitle, "癸卯年 腊月")
	}
	if view.LeadingBlanks != 4 {
		t.Errorf("LeadingBlanks = %d, want 4", view.LeadingBlanks)
	}
	if len(view.Days) != 29 {
		t.Fatalf("len(Days) = %d, want 29", len(view.Days))
	}

	var festivals, terms []int
	for _, cell := range view.Days {
		if cell.Info == nil {
			t.Fatalf("day %d has no info", cell.Day)
		}
		if cell.HasFestival {
			festivals = append(festivals, cell.Day)
		}
		if cell.HasTerm {
			terms = append(terms, cell.Day)
		}
	}
	if got, want := festivals, []int{2, 9, 10, 14, 24}; !equalInts(got, want) {
		t.Errorf("festival days = %v, want %v", got, want)
	}
	if got, want := terms, []int{4, 19}; !equalInts(got, want) {
		t.Errorf("term days = %v, want %v", got, want)
	}

	newYear := view.Days[9]
	if newYear.DisplayText != "春节" || newYear.Weekday != 6 || !newYear.IsWeekend {
		t.Errorf("Feb 10 cell = %+v", newYear)
	}
}

func TestMonthGrid_BeforeLunarEpoch(t *testing.T) {
	view, err := MonthGrid(1900, 1)
	if err != nil {
		t.Fatalf("MonthGrid(1900, 1) error = %v", err)
	}
	if view.LunarTitle != "" {
		t.Errorf("LunarTitle = %q, want empty", view.LunarTitle)
	}
	for _, cell := range view.Days[:30] {
		if cell.Info != nil {
			t.Fatalf("day %d has info before the lunar epoch", cell.Day)
		}
	}
	if last := view.Days[30]; last.Info == nil || last.DisplayText != "春节" {
		t.Errorf("Jan 31 cell = %+v, want 春节", last)
	}
}

func TestMonthGrid_DayCount(t *testing.T) {
	tests := []struct {
		year, month, days int
	}{
		{2023, 2, 28},
		{2024, 2, 29},
		{2100, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tt := range tests {
		view, err := MonthGrid(tt.year, tt.month)
		if err != nil {
			t.Fatalf("MonthGrid(%d, %d) error = %v", tt.year, tt.month, err)
		}
		if len(view.Days) != tt.days {
			t.Errorf("MonthGrid(%d, %d) has %d days, want %d", tt.year, tt.month, len(view.Days), tt.days)
		}
		if last := view.Days[len(view.Days)-1]; last.Day != tt.days {
			t.Errorf("MonthGrid(%d, %d) last day = %d, want %d", tt.year, tt.month, last.Day, tt.days)
		}
	}
}

func TestMonthGrid_OutOfRange(t *testing.T) {
	for _, args := range [][2]int{{1899, 12}, {2101, 1}, {2024, 0}, {2024, 13}} {
		if _, err := MonthGrid(args[0], args[1]); !IsOutOfRange(err) {
			t.Errorf("MonthGrid(%d, %d) error = %v, want ErrOutOfRange", args[0], args[1], err)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
