// Package batch translates several itineraries in one call.
package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gds_translator/internal/gds"
	"gds_translator/internal/itinerary"
)

// MaxItems is the default limit on items per batch.
const MaxItems = 10

// ErrBatchSizeExceeded is returned before any item is processed.
var ErrBatchSizeExceeded = errors.New("batch size exceeded")

// Translator parses one itinerary. *itinerary.Translator satisfies it.
type Translator interface {
	Parse(raw string, format gds.Format) (*itinerary.ParseResult, error)
}

// Item is one itinerary submitted in a batch. Format is the caller's text
// and is validated per item.
type Item struct {
	ID           string `json:"id"`
	RawItinerary string `json:"raw_itinerary"`
	Format       string `json:"gds_format"`
}

// Outcome is the result for one item. Result is set when Success is true,
// Error otherwise.
type Outcome struct {
	ID      string                 `json:"id"`
	Success bool                   `json:"success"`
	Format  gds.Format             `json:"gds_format,omitempty"`
	Result  *itinerary.ParseResult `json:"result,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Summary counts outcomes.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Result holds one outcome per item, in submission order.
type Result struct {
	BatchID uuid.UUID `json:"batch_id"`
	Items   []Outcome `json:"items"`
	Summary Summary   `json:"summary"`
}

// Processor runs batches against a Translator.
type Processor struct {
	translator Translator
	workers    int
	maxItems   int
	logger     *zap.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets how many items may be translated at once. Values below
// one mean sequential processing.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n < 1 {
			n = 1
		}
		p.workers = n
	}
}

// WithMaxItems overrides MaxItems.
func WithMaxItems(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxItems = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a Processor.
func NewProcessor(t Translator, opts ...Option) *Processor {
	p := &Processor{
		translator: t,
		workers:    1,
		maxItems:   MaxItems,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxItems returns the configured item limit.
func (p *Processor) MaxItems() int { return p.maxItems }

// Translate processes every item and summarises the outcomes. A failing
// item is recorded and never stops its siblings. Items not started before
// ctx is done are recorded as failed with the context error.
func (p *Processor) Translate(ctx context.Context, items []Item) (*Result, error) {
	if len(items) > p.maxItems {
		return nil, fmt.Errorf("%w: %d items, limit is %d", ErrBatchSizeExceeded, len(items), p.maxItems)
	}

	res := &Result{
		BatchID: uuid.New(),
		Items:   make([]Outcome, len(items)),
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				res.Items[i] = Outcome{ID: item.ID, Error: err.Error()}
				return nil
			}
			res.Items[i] = p.translate(item)
			return nil
		})
	}
	_ = g.Wait()

	res.Summary = summarise(res.Items)
	p.logger.Info("batch translated",
		zap.String("batch_id", res.BatchID.String()),
		zap.Int("total", res.Summary.Total),
		zap.Int("successful", res.Summary.Successful),
		zap.Int("failed", res.Summary.Failed))
	return res, nil
}

func (p *Processor) translate(item Item) (out Outcome) {
	out.ID = item.ID

	format, err := gds.ParseFormat(item.Format)
	if err != nil {
		out.Error = fmt.Errorf("%w: %q", itinerary.ErrUnsupportedFormat, item.Format).Error()
		return out
	}
	out.Format = format

	defer func() {
		if r := recover(); r != nil {
			out.Result = nil
			out.Success = false
			out.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	result, err := p.translator.Parse(item.RawItinerary, format)
	if err != nil {
		p.logger.Warn("batch item failed",
			zap.String("item_id", item.ID),
			zap.String("gds_format", format.String()),
			zap.Error(err))
		out.Error = err.Error()
		return out
	}
	out.Success = true
	out.Result = result
	return out
}

func summarise(items []Outcome) Summary {
	s := Summary{Total: len(items)}
	for _, o := range items {
		if o.Success {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return s
}
