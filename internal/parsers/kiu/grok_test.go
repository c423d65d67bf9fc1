package kiu

import (
	"testing"

	"gds_translator/internal/gds"
	"gds_translator/internal/parsers/line"
)

func TestKIUGrammar(t *testing.T) {
	p := line.New(gds.KIU, Grammar)

	tests := []struct {
		name    string
		text    string
		want    *gds.LineFields
		noMatch bool
	}{
		{
			name: "basic segment",
			text: "1 V0 1234 Y 15JAN MO CCSPMV HK1 0700 0745",
			want: &gds.LineFields{
				Segment: "1", Airline: "V0", Flight: "1234Y", DepartureDate: "15JAN",
				Origin: "CCS", Destination: "PMV", DepartureTime: "0700", ArrivalTime: "0745",
			},
		},
		{
			name: "arrival date glued to arrival time",
			text: "2 ES 502 Y 15JAN MO CCSMIA HK1 2300 004516JAN",
			want: &gds.LineFields{
				Segment: "2", Airline: "ES", Flight: "502Y", DepartureDate: "15JAN",
				Origin: "CCS", Destination: "MIA", DepartureTime: "2300", ArrivalTime: "0045", ArrivalDate: "16JAN",
			},
		},
		{
			name: "lower case input",
			text: "3 ql 301 10feb tu ccsbla ok 0900 1000",
			want: &gds.LineFields{
				Segment: "3", Airline: "QL", Flight: "301", DepartureDate: "10FEB",
				Origin: "CCS", Destination: "BLA", DepartureTime: "0900", ArrivalTime: "1000",
			},
		},
		{
			name:    "single character weekday",
			text:    "1 V0 1234 Y 15JAN M CCSPMV HK1 0700 0745",
			noMatch: true,
		},
		{
			name:    "garbage",
			text:    "1 V0 ???? 15JAN MO CCSPMV",
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
