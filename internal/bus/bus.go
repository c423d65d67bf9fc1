// Package bus serves the translator over NATS request/reply. Request and
// reply bodies are the JSON documents used by the HTTP API.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"gds_translator/internal/quote"
	"gds_translator/internal/service"
)

// Subjects served by the bus.
const (
	SubjectParse = "gds.itinerary.parse"
	SubjectBatch = "gds.itinerary.batch"
	SubjectQuote = "gds.quote.calculate"
)

// requestTimeout bounds the work done for one message.
const requestTimeout = 30 * time.Second

// Conn is the part of *nats.Conn the bus uses.
type Conn interface {
	QueueSubscribe(subject, queue string, cb nats.MsgHandler) (*nats.Subscription, error)
	Publish(subject string, data []byte) error
}

// ErrorReply is the body sent back when a request fails.
type ErrorReply struct {
	Error string `json:"error"`
}

// Bus answers translation requests received on NATS subjects.
type Bus struct {
	conn   Conn
	svc    *service.Service
	queue  string
	logger *zap.Logger
	subs   []*nats.Subscription
}

// New creates a Bus. Subscriptions join queue so several instances share the load.
func New(conn Conn, svc *service.Service, queue string, logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{conn: conn, svc: svc, queue: queue, logger: logger}
}

// Connect dials a NATS server with reconnect logging.
func Connect(url string, logger *zap.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("gds-translator"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

// Start subscribes to every subject.
func (b *Bus) Start() error {
	handlers := map[string]func(context.Context, []byte) (any, error){
		SubjectParse: b.parse,
		SubjectBatch: b.batch,
		SubjectQuote: b.quote,
	}
	for _, subject := range []string{SubjectParse, SubjectBatch, SubjectQuote} {
		sub, err := b.conn.QueueSubscribe(subject, b.queue, b.handler(subject, handlers[subject]))
		if err != nil {
			b.Stop()
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		b.subs = append(b.subs, sub)
	}
	b.logger.Info("nats bus listening", zap.String("queue", b.queue))
	return nil
}

// Stop removes all subscriptions.
func (b *Bus) Stop() {
	for _, sub := range b.subs {
		if err := sub.Unsubscribe(); err != nil {
			b.logger.Debug("nats unsubscribe", zap.String("subject", sub.Subject), zap.Error(err))
		}
	}
	b.subs = nil
}

func (b *Bus) handler(subject string, fn func(context.Context, []byte) (any, error)) nats.MsgHandler {
	return func(msg *nats.Msg) {
		if msg.Reply == "" {
			b.logger.Warn("nats request without reply subject", zap.String("subject", subject))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var reply any
		resp, err := fn(ctx, msg.Data)
		if err != nil {
			b.logger.Debug("nats request failed", zap.String("subject", subject), zap.Error(err))
			reply = ErrorReply{Error: err.Error()}
		} else {
			reply = resp
		}

		data, err := json.Marshal(reply)
		if err != nil {
			data, _ = json.Marshal(ErrorReply{Error: "encode reply: " + err.Error()})
		}
		if err := b.conn.Publish(msg.Reply, data); err != nil {
			b.logger.Warn("nats reply failed", zap.String("subject", subject), zap.Error(err))
		}
	}
}

func (b *Bus) parse(ctx context.Context, data []byte) (any, error) {
	var req service.ParseRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return b.svc.Parse(ctx, req)
}

func (b *Bus) batch(ctx context.Context, data []byte) (any, error) {
	var req service.BatchRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return b.svc.Batch(ctx, req)
}

func (b *Bus) quote(ctx context.Context, data []byte) (any, error) {
	var in quote.Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return b.svc.Quote(ctx, in)
}
