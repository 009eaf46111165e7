package service

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"mutants.dev/backend/internal/constant"
	"mutants.dev/backend/internal/model"
	"mutants.dev/backend/internal/pkg/observability"
)

var ErrPublishTimeout = errors.New("timeout waiting for NATS response")

type EventsParams struct {
	fx.In

	JetStream nats.JetStreamContext `optional:"true"`
}

// Events publishes classification events to JetStream. With NATS disabled every
// publish is a no-op.
type Events struct {
	js      nats.JetStreamContext
	timeout time.Duration
}

func NewEvents(p EventsParams) *Events {
	return &Events{
		js:      p.JetStream,
		timeout: time.Millisecond * 500,
	}
}

func (s *Events) Enabled() bool {
	return s.js != nil
}

// PublishClassified sends evt using its hash as the message id, so JetStream drops
// repeats of the same grid within the stream's duplicate window.
func (s *Events) PublishClassified(ctx context.Context, evt *model.ClassificationEvent) error {
	if s.js == nil {
		return nil
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	pub, err := s.js.PublishAsync(constant.ClassificationSubject, payload, nats.MsgId(evt.Hash))
	if err != nil {
		observability.EventPublishFailures.WithLabelValues(constant.ClassificationSubject).Inc()
		return err
	}

	select {
	case err := <-pub.Err():
		observability.EventPublishFailures.WithLabelValues(constant.ClassificationSubject).Inc()
		return err
	case <-pub.Ok():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.timeout):
		observability.EventPublishFailures.WithLabelValues(constant.ClassificationSubject).Inc()
		return ErrPublishTimeout
	}
}
