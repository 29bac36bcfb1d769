package estimate

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		seconds int
		ok      bool
	}{
		{"PT45S", 45, true},
		{"PT1H", 3600, true},
		{"PT1H30M", 5400, true},
		{"PT0S", 0, true},
		{"P1DT2H", 93600, true},
		{"P1W", 604800, true},
		{"P1Y2M3DT4H5M6S", 365*86400 + 2*30*86400 + 3*86400 + 4*3600 + 5*60 + 6, true},
		// designators are case-insensitive, whitespace is trimmed, and a
		// bare "P"/"PT" is degenerate but grammatical
		{"pt1h30m", 5400, true},
		{"  PT10M  ", 600, true},
		{"P", 0, true},
		{"PT", 0, true},
		{"", 0, false},
		{"1h30m", 0, false},
		{"PTXS", 0, false},
		{"PT1H garbage", 0, false},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		if got != c.seconds || ok != c.ok {
			t.Errorf("Parse(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.seconds, c.ok)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{45, "0:45"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{5400, "1:30:00"},
		{93600, "26:00:00"}, // days fold into hours
		{-5, "0:00"},
	}
	for _, c := range cases {
		if got := Format(c.seconds); got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PT45S", "0:45"},
		{"PT1H", "1:00:00"},
		{"P1DT2H", "26:00:00"},
		{"", "0:00"},
	}
	for _, c := range cases {
		secs, _ := Parse(c.in)
		if got := Format(secs); got != c.want {
			t.Errorf("Format(Parse(%q)) = %q, want %q", c.in, got, c.want)
		}
	}
}
