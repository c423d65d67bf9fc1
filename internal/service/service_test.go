package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"gds_translator/internal/batch"
	"gds_translator/internal/gds"
	"gds_translator/internal/itinerary"
	"gds_translator/internal/lookup"
	"gds_translator/internal/quote"
	"gds_translator/internal/storage"
)

const sabreLine = "1 AA 123 15JAN X CCSMIA# 0800 1200"

type memoryAudit struct {
	mu     sync.Mutex
	events []storage.TranslationEvent
	err    error
}

func (m *memoryAudit) RecordTranslations(_ context.Context, events []storage.TranslationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return m.err
}

func newTestService(opts ...Option) *Service {
	return New(
		lookup.Directory{"AA": "American Airlines"},
		lookup.Directory{"CCS": "Caracas", "MIA": "Miami"},
		opts...,
	)
}

func TestParse(t *testing.T) {
	audit := &memoryAudit{}
	svc := newTestService(WithAudit(audit))

	resp, err := svc.Parse(context.Background(), ParseRequest{
		RawItinerary: sabreLine + "\n\nnot a flight",
		Format:       "sabre",
	})
	require.NoError(t, err)
	require.Equal(t, gds.Sabre, resp.Format)
	require.Equal(t, Stats{Lines: 2, Segments: 1, LineErrors: 1}, resp.Stats)
	require.Contains(t, resp.Text, "AA 123 - American Airlines")

	require.Len(t, audit.events, 1)
	ev := audit.events[0]
	require.True(t, ev.Success)
	require.Equal(t, "SABRE", ev.Format)
	require.EqualValues(t, 1, ev.Segments)
	require.EqualValues(t, 1, ev.LineErrors)
	require.Empty(t, ev.BatchID)
}

func TestParseResponseJSON(t *testing.T) {
	svc := newTestService()
	resp, err := svc.Parse(context.Background(), ParseRequest{RawItinerary: sabreLine, Format: "SABRE"})
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	require.Equal(t, "SABRE", body["gds_format"])
	require.Contains(t, body, "entries")
	require.Contains(t, body, "stats")

	entries := body["entries"].([]any)
	seg := entries[0].(map[string]any)["segment"].(map[string]any)
	require.Equal(t, "15 de enero", seg["departure_date"])
	require.Equal(t, false, seg["next_day"])
	require.NotContains(t, seg, "AirlineSource")
}

func TestParseUnsupportedFormat(t *testing.T) {
	audit := &memoryAudit{}
	svc := newTestService(WithAudit(audit))

	_, err := svc.Parse(context.Background(), ParseRequest{RawItinerary: sabreLine, Format: "galileo"})
	require.ErrorIs(t, err, itinerary.ErrUnsupportedFormat)
	require.Empty(t, audit.events, "rejected requests are not audited")
}

func TestAuditFailureDoesNotFailRequest(t *testing.T) {
	svc := newTestService(WithAudit(&memoryAudit{err: errors.New("clickhouse down")}))
	_, err := svc.Parse(context.Background(), ParseRequest{RawItinerary: sabreLine, Format: "SABRE"})
	require.NoError(t, err)
}

func TestBatch(t *testing.T) {
	audit := &memoryAudit{}
	svc := newTestService(WithAudit(audit), WithBatchOptions(batch.WithWorkers(3)))

	res, err := svc.Batch(context.Background(), BatchRequest{Items: []batch.Item{
		{ID: "1", RawItinerary: sabreLine, Format: "SABRE"},
		{ID: "2", RawItinerary: "junk\nmore junk", Format: "AMADEUS"},
		{ID: "3", RawItinerary: sabreLine, Format: "PARS"},
	}})
	require.NoError(t, err)
	require.Equal(t, batch.Summary{Total: 3, Successful: 2, Failed: 1}, res.Summary)

	require.Len(t, audit.events, 3)
	for i, ev := range audit.events {
		require.Equal(t, res.BatchID.String(), ev.BatchID)
		require.Equal(t, res.Items[i].ID, ev.ItemID)
	}
	require.False(t, audit.events[2].Success)
	require.NotEmpty(t, audit.events[2].Error)
}

func TestBatchTooLarge(t *testing.T) {
	svc := newTestService(WithBatchOptions(batch.WithMaxItems(2)))
	require.Equal(t, 2, svc.MaxBatchItems())

	_, err := svc.Batch(context.Background(), BatchRequest{Items: make([]batch.Item, 3)})
	require.ErrorIs(t, err, batch.ErrBatchSizeExceeded)
}

func TestQuote(t *testing.T) {
	svc := newTestService()

	res, err := svc.Quote(context.Background(), quote.Input{BaseFare: "100", ConsolidatorFee: "25", InternalFee: "15", MarginPercent: "10"})
	require.NoError(t, err)
	require.Equal(t, "154", res.FinalPrice.String())

	_, err = svc.Quote(context.Background(), quote.Input{MarginPercent: "10"})
	require.ErrorIs(t, err, quote.ErrInvalidInput)
}

func TestLookup(t *testing.T) {
	svc := newTestService()

	got, err := svc.Lookup("airlines", "aa")
	require.NoError(t, err)
	require.Equal(t, &LookupResponse{Kind: lookup.Airlines, Code: "AA", Name: "American Airlines", Source: "resolved"}, got)

	got, err = svc.Lookup("AIRPORTS", "BOG")
	require.NoError(t, err)
	require.Equal(t, "BOG", got.Name)
	require.Equal(t, "fallback", got.Source)

	_, err = svc.Lookup("hotels", "X")
	require.ErrorIs(t, err, lookup.ErrUnknownKind)
}

func TestFormats(t *testing.T) {
	require.Equal(t, []gds.Format{gds.Sabre, gds.Amadeus, gds.KIU}, newTestService().Formats())
}
