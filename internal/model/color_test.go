package model

import "testing"

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		ok      bool
	}{
		{"#4CAF50", 0x4C, 0xAF, 0x50, true},
		{"ff0000", 0xFF, 0, 0, true},
		{"#abc", 0xAA, 0xBB, 0xCC, true},
		{"#12345", 0, 0, 0, false},
		{"#zzzzzz", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}
	for _, tt := range tests {
		r, g, b, ok := ParseHexColor(tt.in)
		if ok != tt.ok || r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("ParseHexColor(%q) = %d,%d,%d,%v; want %d,%d,%d,%v", tt.in, r, g, b, ok, tt.r, tt.g, tt.b, tt.ok)
		}
	}
}
