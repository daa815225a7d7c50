package gold

import "testing"

func TestIsRainCondition(t *testing.T) {
	cases := []struct {
		condition string
		want      bool
	}{
		{"Rain", true},
		{"light rain", true},
		{"Drizzle", true},
		{"Thunderstorm", true},
		{"tropical STORM", true},
		{"Clouds", false},
		{"Clear", false},
		{"Unknown", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsRainCondition(tc.condition); got != tc.want {
			t.Errorf("IsRainCondition(%q) = %v, want %v", tc.condition, got, tc.want)
		}
	}
}

func TestIsLunchTimeBoundaries(t *testing.T) {
	cases := []struct {
		clock string
		want  bool
	}{
		{"11:00:00", true},
		{"14:00:00", true},
		{"12:30:45", true},
		{"10:59:59", false},
		{"14:00:01", false},
		{"09:00:00", false},
		{"18:30:00", false},
		{"noonish", false},
		{"12:30", false},
	}

	for _, tc := range cases {
		if got := IsLunchTime(tc.clock); got != tc.want {
			t.Errorf("IsLunchTime(%q) = %v, want %v", tc.clock, got, tc.want)
		}
	}
}
