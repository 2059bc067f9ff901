package chat

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"pulse_chat_server/pkg/constants"
	"pulse_chat_server/pkg/errorx"
)

// ChannelBroker is the in-process broker: a buffered channel drained by
// one consumer goroutine. Default mode for single-node deployments.
type ChannelBroker struct {
	handler envelopeHandler
	queue   chan *TransmitEnvelope

	closeOnce sync.Once
	done      chan struct{}
	drained   chan struct{}
}

// NewChannelBroker builds an in-process broker over the given consumer.
func NewChannelBroker(handler envelopeHandler) *ChannelBroker {
	return &ChannelBroker{
		handler: handler,
		queue:   make(chan *TransmitEnvelope, constants.CHANNEL_SIZE),
		done:    make(chan struct{}),
		drained: make(chan struct{}),
	}
}

// Publish enqueues an envelope without blocking. A full queue means the
// consumer is behind; the caller gets a transient error to surface.
func (b *ChannelBroker) Publish(ctx context.Context, env *TransmitEnvelope) error {
	select {
	case <-b.done:
		return errorx.New(errorx.CodeTransient, "message broker is shut down")
	default:
	}
	select {
	case b.queue <- env:
		return nil
	default:
		zap.L().Warn("channel broker saturated, rejecting message",
			zap.Uint("sender", env.SenderID))
		return errorx.New(errorx.CodeTransient, "server busy, try again")
	}
}

// Start launches the single consumer goroutine.
func (b *ChannelBroker) Start() {
	go func() {
		defer close(b.drained)
		for {
			select {
			case env := <-b.queue:
				b.handler.ConsumeEnvelope(context.Background(), env)
			case <-b.done:
				// Drain what was accepted before shutdown.
				for {
					select {
					case env := <-b.queue:
						b.handler.ConsumeEnvelope(context.Background(), env)
					default:
						return
					}
				}
			}
		}
	}()
}

// Close stops intake and waits for the consumer to drain the queue.
func (b *ChannelBroker) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
	})
	<-b.drained
	return nil
}
