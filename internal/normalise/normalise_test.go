package normalise

import (
	"fmt"
	"strings"
	"testing"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"15JAN", "15 de enero"},
		{"01FEB", "1 de febrero"},
		{"28feb", "28 de febrero"},
		{"31Mar", "31 de marzo"},
		{"10APR", "10 de abril"},
		{"05MAY", "5 de mayo"},
		{"20JUN", "20 de junio"},
		{"04JUL", "4 de julio"},
		{"15AUG", "15 de agosto"},
		{"09SEP", "9 de septiembre"},
		{"12OCT", "12 de octubre"},
		{"30NOV", "30 de noviembre"},
		{"25DEC", "25 de diciembre"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.token); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestFormatDateUnknownMonthEchoed(t *testing.T) {
	for _, code := range []string{"XYZ", "ENE", "ABR", "DIC"} {
		got := FormatDate("15" + code)
		if got != "15 de "+code {
			t.Errorf("FormatDate(15%s) = %q, want code echoed", code, got)
		}
	}
}

func TestFormatDateDeterministic(t *testing.T) {
	for code := range monthNames {
		token := "07" + code
		first := FormatDate(token)
		for i := 0; i < 3; i++ {
			if got := FormatDate(token); got != first {
				t.Fatalf("FormatDate(%q) not deterministic: %q vs %q", token, got, first)
			}
		}
		if !strings.HasPrefix(first, "7 de ") {
			t.Errorf("FormatDate(%q) = %q", token, first)
		}
	}
}

func TestFormatDateMalformed(t *testing.T) {
	for _, token := range []string{"", "1JAN", "JAN15", "15JANU"} {
		if got := FormatDate(token); got != token {
			t.Errorf("FormatDate(%q) = %q, want unchanged", token, got)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"0800", "08:00"},
		{"2359", "23:59"},
		{"0000", "00:00"},
		{"1640+1", "16:40+1"},
		{"12", "12"},
		{"AB12", "AB12"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.token); got != tt.want {
			t.Errorf("FormatTime(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestFormatTimeRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 7 {
			token := fmt.Sprintf("%02d%02d", h, m)
			out := FormatTime(token)
			again := FormatTime(strings.Replace(out[:5], ":", "", 1))
			if again != out {
				t.Fatalf("round trip %q: %q != %q", token, again, out)
			}
		}
	}
}

func TestIsNextDay(t *testing.T) {
	tests := []struct {
		name     string
		dep, arr string
		offset   int
		want     bool
	}{
		{"no arrival date", "15 de enero", "", 0, false},
		{"same date", "15 de enero", "15 de enero", 0, false},
		{"later date", "15 de enero", "16 de enero", 0, true},
		{"explicit offset", "15 de enero", "", 1, true},
		{"explicit zero offset", "15 de enero", "", 0, false},
	}
	for _, tt := range tests {
		if got := IsNextDay(tt.dep, tt.arr, tt.offset); got != tt.want {
			t.Errorf("%s: IsNextDay = %v, want %v", tt.name, got, tt.want)
		}
	}
}
