package itinerary

import (
	"strings"
	"testing"

	"gds_translator/internal/gds"
)

func TestText(t *testing.T) {
	raw := "1 AA 904 15JAN 3 MIAMAD HK1 1720 0735 16JAN\nnot a segment"
	res, err := ParseItinerary(raw, gds.Sabre, testAirlines, testAirports)
	if err != nil {
		t.Fatalf("ParseItinerary error: %v", err)
	}

	text := res.Text()
	for _, want := range []string{
		"AA 904 - American Airlines",
		"Salida:  15 de enero 17:20  Miami (MIA)",
		"Llegada: 16 de enero 07:35  Madrid (MAD) (+1 día)",
		"Formato no reconocido: not a segment",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
}

func TestTextSameDay(t *testing.T) {
	res, err := ParseItinerary(sabreLine, gds.Sabre, testAirlines, testAirports)
	if err != nil {
		t.Fatalf("ParseItinerary error: %v", err)
	}
	if strings.Contains(res.Text(), NextDayNote) {
		t.Errorf("same-day segment rendered with next-day note:\n%s", res.Text())
	}
}
