// Package service exposes itinerary translation, batch translation and
// quoting to the transport layers. Request and response bodies are shared by
// the HTTP API and the NATS bus.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gds_translator/internal/batch"
	"gds_translator/internal/gds"
	"gds_translator/internal/itinerary"
	"gds_translator/internal/lookup"
	"gds_translator/internal/quote"
	"gds_translator/internal/storage"
)

// AuditRecorder stores translation events. *storage.ClickHouseDB satisfies it.
type AuditRecorder interface {
	RecordTranslations(ctx context.Context, events []storage.TranslationEvent) error
}

// ParseRequest asks for one itinerary to be translated.
type ParseRequest struct {
	RawItinerary string `json:"raw_itinerary"`
	Format       string `json:"gds_format"`
}

// Stats counts a result's entries.
type Stats struct {
	Lines      int `json:"lines"`
	Segments   int `json:"segments"`
	LineErrors int `json:"line_errors"`
}

// ParseResponse is a translated itinerary.
type ParseResponse struct {
	*itinerary.ParseResult
	Stats Stats  `json:"stats"`
	Text  string `json:"text"`
}

// BatchRequest asks for several itineraries to be translated.
type BatchRequest struct {
	Items []batch.Item `json:"items"`
}

// LookupResponse is one resolved directory code.
type LookupResponse struct {
	Kind   lookup.Kind `json:"kind"`
	Code   string      `json:"code"`
	Name   string      `json:"name"`
	Source string      `json:"source"`
}

// Service holds read-only directories and the engine components built on
// them. It is safe for concurrent use.
type Service struct {
	airlines   lookup.Directory
	airports   lookup.Directory
	translator *itinerary.Translator
	batch      *batch.Processor
	audit      AuditRecorder
	logger     *zap.Logger
	batchOpts  []batch.Option
}

// Option configures a Service.
type Option func(*Service)

// WithAudit records every translation with r.
func WithAudit(r AuditRecorder) Option {
	return func(s *Service) { s.audit = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithBatchOptions configures the batch processor.
func WithBatchOptions(opts ...batch.Option) Option {
	return func(s *Service) { s.batchOpts = append(s.batchOpts, opts...) }
}

// New creates a Service.
func New(airlines, airports lookup.Directory, opts ...Option) *Service {
	s := &Service{
		airlines: airlines,
		airports: airports,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.translator = itinerary.NewTranslator(airlines, airports, itinerary.WithLogger(s.logger))
	s.batch = batch.NewProcessor(s.translator, append([]batch.Option{batch.WithLogger(s.logger)}, s.batchOpts...)...)
	return s
}

// Formats lists the supported GDS formats.
func (s *Service) Formats() []gds.Format {
	return gds.Formats()
}

// MaxBatchItems returns the batch size limit.
func (s *Service) MaxBatchItems() int {
	return s.batch.MaxItems()
}

// Parse translates one itinerary. The error is itinerary.ErrUnsupportedFormat
// for a bad format or a *itinerary.GlobalParseError for a translator fault.
func (s *Service) Parse(ctx context.Context, req ParseRequest) (*ParseResponse, error) {
	format, err := gds.ParseFormat(req.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", itinerary.ErrUnsupportedFormat, req.Format)
	}

	res, err := s.translator.Parse(req.RawItinerary, format)
	s.record(ctx, event("", "", format, res, err))
	if err != nil {
		s.logger.Warn("itinerary translation failed",
			zap.String("gds_format", format.String()),
			zap.Error(err))
		return nil, err
	}

	resp := NewParseResponse(res)
	s.logger.Info("itinerary translated",
		zap.String("gds_format", format.String()),
		zap.Int("segments", resp.Stats.Segments),
		zap.Int("line_errors", resp.Stats.LineErrors))
	return resp, nil
}

// Batch translates several itineraries. The error is
// batch.ErrBatchSizeExceeded when there are too many items.
func (s *Service) Batch(ctx context.Context, req BatchRequest) (*batch.Result, error) {
	res, err := s.batch.Translate(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	events := make([]storage.TranslationEvent, 0, len(res.Items))
	for _, o := range res.Items {
		var itemErr error
		if !o.Success {
			itemErr = errors.New(o.Error)
		}
		events = append(events, event(res.BatchID.String(), o.ID, o.Format, o.Result, itemErr))
	}
	s.record(ctx, events...)
	return res, nil
}

// Quote prices one quote. The error is quote.ErrInvalidInput when there is
// nothing to price.
func (s *Service) Quote(_ context.Context, in quote.Input) (*quote.Result, error) {
	return quote.Calculate(in)
}

// Lookup resolves one code against the loaded directories.
func (s *Service) Lookup(kind, code string) (*LookupResponse, error) {
	k, err := lookup.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	dir := s.airlines
	if k == lookup.Airports {
		dir = s.airports
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	res, err := lookup.Resolve(k, code, dir)
	if err != nil {
		return nil, err
	}
	return &LookupResponse{
		Kind:   k,
		Code:   code,
		Name:   res.Name,
		Source: res.Source.String(),
	}, nil
}

// NewParseResponse wraps a result with its counts and text rendering.
func NewParseResponse(res *itinerary.ParseResult) *ParseResponse {
	return &ParseResponse{
		ParseResult: res,
		Stats: Stats{
			Lines:      len(res.Entries),
			Segments:   len(res.Segments()),
			LineErrors: len(res.LineErrors()),
		},
		Text: res.Text(),
	}
}

func event(batchID, itemID string, format gds.Format, res *itinerary.ParseResult, err error) storage.TranslationEvent {
	e := storage.TranslationEvent{
		ID:         uuid.New(),
		RecordedAt: time.Now().UTC(),
		BatchID:    batchID,
		ItemID:     itemID,
		Format:     format.String(),
		Success:    err == nil,
	}
	if err != nil {
		e.Error = err.Error()
	}
	if res != nil {
		e.Lines = uint32(len(res.Entries))
		e.Segments = uint32(len(res.Segments()))
		e.LineErrors = uint32(len(res.LineErrors()))
	}
	return e
}

// record writes audit events. Audit failures are logged and never reach
// the caller.
func (s *Service) record(ctx context.Context, events ...storage.TranslationEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.RecordTranslations(ctx, events); err != nil {
		s.logger.Warn("audit write failed", zap.Int("events", len(events)), zap.Error(err))
	}
}
