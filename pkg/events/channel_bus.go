package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// ChannelTopic is the GoChannel topic every in-process event goes through.
const ChannelTopic = "events"

// ChannelBus carries events over a watermill GoChannel. It stands in for
// NATS when no NATS_URL is configured so the activity feed keeps working on
// one node. Subjects and durable names are ignored: every subscriber sees
// every event, in publish order.
type ChannelBus struct {
	pubSub *gochannel.GoChannel
	log    *zap.Logger
}

func NewChannelBus(log *zap.Logger) *ChannelBus {
	if log == nil {
		log = zap.NewNop()
	}
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		// keeps events ordered per publisher
		BlockPublishUntilSubscriberAck: true,
	}, watermill.NopLogger{})

	return &ChannelBus{pubSub: pubSub, log: log}
}

func (b *ChannelBus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(ToEnvelope(event))
	if err != nil {
		return err
	}
	return b.pubSub.Publish(ChannelTopic, message.NewMessage(watermill.NewUUID(), payload))
}

// Subscribe consumes until ctx is cancelled. A failed handler is logged and
// the event acked; nothing is redelivered in-process.
func (b *ChannelBus) Subscribe(ctx context.Context, subject, durableName string, handler Handler) error {
	messages, err := b.pubSub.Subscribe(ctx, ChannelTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var env Envelope
			if err := json.Unmarshal(msg.Payload, &env); err != nil {
				b.log.Error("dropping undecodable event", zap.String("durable", durableName), zap.Error(err))
				msg.Ack()
				continue
			}
			if err := handler(ctx, env.Event()); err != nil {
				b.log.Warn("event handler failed", zap.String("type", env.Type), zap.String("durable", durableName), zap.Error(err))
			}
			msg.Ack()
		}
	}()
	return nil
}

func (b *ChannelBus) Close() {
	if err := b.pubSub.Close(); err != nil {
		b.log.Warn("closing event bus", zap.Error(err))
	}
}
