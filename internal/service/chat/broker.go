package chat

import (
	"context"

	"pulse_chat_server/internal/dto/event"
)

// TransmitEnvelope carries one send_message request through a broker.
// ConnID routes delivery errors back to the originating connection when
// the consumer runs in the same process.
type TransmitEnvelope struct {
	ConnID      string                   `json:"conn_id"`
	SenderID    uint                     `json:"sender_id"`
	SenderName  string                   `json:"sender_name"`
	SenderImage string                   `json:"sender_image"`
	Request     event.SendMessageRequest `json:"request"`
}

// MessageBroker decouples message intake from delivery. Both
// implementations feed a single consumer, so guard checks, persistence
// and broadcast happen in submission order per broker.
type MessageBroker interface {
	// Publish hands an envelope to the broker. It never blocks the
	// read loop; a saturated broker reports a transient error.
	Publish(ctx context.Context, env *TransmitEnvelope) error
	// Start launches the consumer.
	Start()
	// Close stops the consumer and releases broker resources.
	Close() error
}

// envelopeHandler is the consumer side of a broker, implemented by the
// gateway.
type envelopeHandler interface {
	ConsumeEnvelope(ctx context.Context, env *TransmitEnvelope)
}
