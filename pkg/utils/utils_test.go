package utils

import "testing"

func TestFormatRoundedUnit(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{3599, "59m"},
		{3600, "60m"},
		{3601, "1h"},
		{7322, "2h"},
		{-90, "1m"},
	}

	for _, tt := range tests {
		if got := FormatRoundedUnit(tt.seconds); got != tt.want {
			t.Errorf("FormatRoundedUnit(%d) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00:00"},
		{59, "0:00:59"},
		{61, "0:01:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-5, "0:00:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}
