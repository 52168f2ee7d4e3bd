package easystats

import (
	"fmt"
	"testing"
)

func TestDecodeMadeAttempt(t *testing.T) {
	tests := []struct {
		raw       string
		made, att int
	}{
		{"10-16", 10, 16},
		{"5-10", 5, 10},
		{"0-0", 0, 0},
		{" 4 - 12 ", 4, 12},
		{"", 0, 0},
		{"-", 0, 0},
		{"–", 0, 0},
		{"abc", 0, 0},
		{"4-", 0, 0},
		{"4-12-3", 0, 0},
	}
	for _, tt := range tests {
		made, att := DecodeMadeAttempt(tt.raw)
		if made != tt.made || att != tt.att {
			t.Errorf("DecodeMadeAttempt(%q) = (%d, %d), want (%d, %d)",
				tt.raw, made, att, tt.made, tt.att)
		}
	}
}

func TestDecodeMadeAttemptRoundTrip(t *testing.T) {
	for _, pair := range [][2]int{{0, 0}, {1, 1}, {7, 23}, {15, 40}} {
		made, att := DecodeMadeAttempt(fmt.Sprintf("%d-%d", pair[0], pair[1]))
		if made != pair[0] || att != pair[1] {
			t.Fatalf("round trip %v failed: got (%d, %d)", pair, made, att)
		}
	}
}

func TestDecodeNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"15", 15},
		{"2.5", 2.5},
		{"45%", 45},
		{"+7", 7},
		{"-3", -3},
		{"", 0},
		{"-", 0},
		{"–", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		if got := DecodeNumber(tt.raw); got != tt.want {
			t.Errorf("DecodeNumber(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
