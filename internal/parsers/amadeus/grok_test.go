package amadeus

import (
	"testing"

	"gds_translator/internal/gds"
	"gds_translator/internal/parsers/line"
)

func TestAmadeusGrammar(t *testing.T) {
	p := line.New(gds.Amadeus, Grammar)

	tests := []struct {
		name    string
		text    string
		want    *gds.LineFields
		noMatch bool
	}{
		{
			name: "basic segment",
			text: "  1  IB6501 Y 15JAN 3 MADCCS HK1  1200 1640",
			want: &gds.LineFields{
				Segment: "1", Airline: "IB", Flight: "6501", DepartureDate: "15JAN",
				Origin: "MAD", Destination: "CCS", DepartureTime: "1200", ArrivalTime: "1640",
			},
		},
		{
			name: "day offset glued to arrival",
			text: "2 UX 071 J 20MAR 5 CCSMAD HK2 1930 1050+1 E UX/ABC123",
			want: &gds.LineFields{
				Segment: "2", Airline: "UX", Flight: "071", DepartureDate: "20MAR",
				Origin: "CCS", Destination: "MAD", DepartureTime: "1930", ArrivalTime: "1050", DayOffset: "+1",
			},
		},
		{
			name: "status with separate quantity",
			text: "3 CM 222 M 01APR 1 PTYBOG HK 2 0815 0950",
			want: &gds.LineFields{
				Segment: "3", Airline: "CM", Flight: "222", DepartureDate: "01APR",
				Origin: "PTY", Destination: "BOG", DepartureTime: "0815", ArrivalTime: "0950",
			},
		},
		{
			name:    "digit in carrier code",
			text:    "1 4M6501 Y 15JAN 3 MADCCS HK1 1200 1640",
			noMatch: true,
		},
		{
			name: "offset separated by whitespace is not a marker",
			text: "1 IB6501 Y 15JAN 3 MADCCS HK1 1200 1640 +1",
			want: &gds.LineFields{
				Segment: "1", Airline: "IB", Flight: "6501", DepartureDate: "15JAN",
				Origin: "MAD", Destination: "CCS", DepartureTime: "1200", ArrivalTime: "1640",
			},
		},
		{
			name:    "missing class letter",
			text:    "1 IB6501 15JAN 3 MADCCS HK1 1200 1640",
			noMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if tt.noMatch {
				if got != nil {
					t.Fatalf("expected no match, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected match, got nil")
			}
			if *got != *tt.want {
				t.Errorf("fields = %+v\nwant %+v", *got, *tt.want)
			}
		})
	}
}
