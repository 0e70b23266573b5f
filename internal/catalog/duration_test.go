package catalog

import "testing"

func TestParseHHMMSS(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00:00", 0, false},
		{"00:01:01", 61, false},
		{"01:23:45", 5025, false},
		{"10:00:00", 36000, false},
		{"100:00:00", 360000, false},
		{"00:60:00", 0, true},
		{"00:00:60", 0, true},
		{"1:2", 0, true},
		{"aa:bb:cc", 0, true},
		{"-1:00:00", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseHHMMSS(c.in)
			if c.wantErr {
				if err == nil {
					t.Errorf("ParseHHMMSS(%q): expected error, got %d", c.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHHMMSS(%q): %v", c.in, err)
			}
			if got != c.want {
				t.Errorf("ParseHHMMSS(%q): got %d want %d", c.in, got, c.want)
			}
		})
	}
}

func TestFormatHHMMSS(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{5025, "01:23:45"},
		{-5, "00:00:00"},
	}

	for _, c := range cases {
		if got := FormatHHMMSS(c.in); got != c.want {
			t.Errorf("FormatHHMMSS(%d): got %q want %q", c.in, got, c.want)
		}
	}
}

func TestFormatHHMMSS_round_trips(t *testing.T) {
	for _, seconds := range []int{0, 1, 59, 60, 3599, 3600, 5025, 86399} {
		got, err := ParseHHMMSS(FormatHHMMSS(seconds))
		if err != nil || got != seconds {
			t.Errorf("round trip %d: got %d err %v", seconds, got, err)
		}
	}
}
