package derive

import "testing"

func strPtr(s string) *string { return &s }

func TestAvailableSeats(t *testing.T) {
	cases := []struct {
		total, booked, want int
	}{
		{100, 30, 70},
		{50, 60, 0},
		{0, 0, 0},
		{10, 10, 0},
	}
	for _, c := range cases {
		if got := AvailableSeats(c.total, c.booked); got != c.want {
			t.Fatalf("AvailableSeats(%d, %d) = %d, want %d", c.total, c.booked, got, c.want)
		}
	}
}

func TestSpansWeekend(t *testing.T) {
	cases := []struct {
		start, end string
		want       bool
	}{
		{"2024-06-03", "2024-06-07", false}, // mon..fri
		{"2024-06-07", "2024-06-10", true},  // fri..mon crosses sat+sun
		{"2024-06-08", "2024-06-08", true},  // single saturday
		{"2024-06-09", "2024-06-09", true},  // single sunday
		{"2024-06-04", "2024-06-04", false},
		{"2024-06-03 10:00:00", "2024-06-08 12:00:00", true}, // datetime inputs
	}
	for _, c := range cases {
		if got := SpansWeekend(strPtr(c.start), strPtr(c.end)); got != c.want {
			t.Fatalf("SpansWeekend(%q, %q) = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}

func TestSpansWeekendMissingOrMalformed(t *testing.T) {
	if SpansWeekend(nil, strPtr("2024-06-10")) {
		t.Fatal("nil start should not span weekend")
	}
	if SpansWeekend(strPtr("2024-06-07"), nil) {
		t.Fatal("nil end should not span weekend")
	}
	if SpansWeekend(strPtr("not a date"), strPtr("2024-06-10")) {
		t.Fatal("malformed start should not span weekend")
	}
}

func TestWholeDay(t *testing.T) {
	cases := []struct {
		start, end *string
		want       bool
	}{
		{strPtr("00:00:00"), strPtr("23:59:59"), true},
		{nil, nil, true},
		{strPtr(""), strPtr(""), true},
		{strPtr("00:00:00"), strPtr(""), true},
		{strPtr("09:00:00"), strPtr("23:59:59"), false},
		{strPtr("00:00:00"), strPtr("18:00:00"), false},
	}
	for _, c := range cases {
		if got := WholeDay(c.start, c.end); got != c.want {
			t.Fatalf("WholeDay(%v, %v) = %v, want %v", deref(c.start), deref(c.end), got, c.want)
		}
	}
}

func TestFormatHHMM(t *testing.T) {
	if got := FormatHHMM(strPtr("09:30:00")); got == nil || *got != "09:30" {
		t.Fatalf("FormatHHMM(09:30:00) = %v", deref(got))
	}
	if got := FormatHHMM(strPtr("09:30")); got == nil || *got != "09:30" {
		t.Fatalf("FormatHHMM(09:30) = %v", deref(got))
	}
	if got := FormatHHMM(nil); got != nil {
		t.Fatalf("FormatHHMM(nil) = %v, want nil", *got)
	}
	if got := FormatHHMM(strPtr("")); got != nil {
		t.Fatalf("FormatHHMM(\"\") = %v, want nil", *got)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
