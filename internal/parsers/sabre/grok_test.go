package sabre

import (
	"testing"

	"gds_translator/internal/gds"
	"gds_translator/internal/parsers/line"
)

func TestSabreGrammar(t *testing.T) {
	p := line.New(gds.Sabre, Grammar)

	tests := []struct {
		name    string
		text    string
		want    *gds.LineFields
		noMatch bool
	}{
		{
			name: "basic segment",
			text: "1 AA 123 15JAN X CCSMIA# 0800 1200",
			want: &gds.LineFields{
				Segment: "1", Airline: "AA", Flight: "123", DepartureDate: "15JAN",
				Origin: "CCS", Destination: "MIA", DepartureTime: "0800", ArrivalTime: "1200",
			},
		},
		{
			name: "next day arrival date",
			text: " 2 AA 904Y 15JAN 3 MIAMAD HK1 1720 0735 16JAN /DCAA /E",
			want: &gds.LineFields{
				Segment: "2", Airline: "AA", Flight: "904Y", DepartureDate: "15JAN",
				Origin: "MIA", Destination: "MAD", DepartureTime: "1720", ArrivalTime: "0735", ArrivalDate: "16JAN",
			},
		},
		{
			name: "alphanumeric carrier and spaced flight number",
			text: "3 4M 12 3 02feb W LIMEZE*SS1 0610 0845",
			want: &gds.LineFields{
				Segment: "3", Airline: "4M", Flight: "123", DepartureDate: "02FEB",
				Origin: "LIM", Destination: "EZE", DepartureTime: "0610", ArrivalTime: "0845",
			},
		},
		{
			name: "carrier glued to flight number",
			text: "4 AV245 10MAR T BOGCCS HK2 1300 1530",
			want: &gds.LineFields{
				Segment: "4", Airline: "AV", Flight: "245", DepartureDate: "10MAR",
				Origin: "BOG", Destination: "CCS", DepartureTime: "1300", ArrivalTime: "1530",
			},
		},
		{
			name:    "missing arrival time",
			text:    "1 AA 123 15JAN X CCSMIA# 0800",
			noMatch: true,
		},
		{
			name:    "route with separator",
			text:    "1 AA 123 15JAN X CCS-MIA 0800 1200",
			noMatch: true,
		},
		{
			name:    "free text",
			text:    "PLEASE RECONFIRM 72 HOURS BEFORE DEPARTURE",
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
