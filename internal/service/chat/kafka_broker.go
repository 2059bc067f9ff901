package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"pulse_chat_server/internal/config"
	"pulse_chat_server/pkg/errorx"
)

// KafkaBroker routes envelopes through a kafka topic so several server
// nodes can share one delivery stream. Envelopes are keyed by sender id
// to keep one sender's messages ordered within a partition.
type KafkaBroker struct {
	handler envelopeHandler
	writer  *kafka.Writer
	reader  *kafka.Reader

	closeOnce sync.Once
	done      chan struct{}
	drained   chan struct{}
}

// NewKafkaBroker builds a broker over the configured topic and consumer
// group. The configured timeout is in seconds.
func NewKafkaBroker(conf *config.KafkaConfig, handler envelopeHandler) *KafkaBroker {
	timeout := time.Duration(conf.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(conf.HostPort),
		Topic:                  conf.ChatTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           timeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{conf.HostPort},
		Topic:          conf.ChatTopic,
		GroupID:        "chat",
		CommitInterval: timeout,
		StartOffset:    kafka.LastOffset,
	})
	return &KafkaBroker{
		handler: handler,
		writer:  writer,
		reader:  reader,
		done:    make(chan struct{}),
		drained: make(chan struct{}),
	}
}

// Publish writes an envelope to the topic.
func (b *KafkaBroker) Publish(ctx context.Context, env *TransmitEnvelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeInternal, "marshal message envelope")
	}
	err = b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(env.SenderID), 10)),
		Value: value,
	})
	if err != nil {
		return errorx.Wrap(err, errorx.CodeTransient, "publish message")
	}
	return nil
}

// Start launches the consumer loop reading the topic until Close.
func (b *KafkaBroker) Start() {
	go func() {
		defer close(b.drained)
		for {
			msg, err := b.reader.ReadMessage(context.Background())
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
					return
				}
				select {
				case <-b.done:
					return
				default:
				}
				zap.L().Error("kafka read failed", zap.Error(err))
				continue
			}
			var env TransmitEnvelope
			if err := json.Unmarshal(msg.Value, &env); err != nil {
				zap.L().Error("malformed message envelope",
					zap.Int64("offset", msg.Offset), zap.Error(err))
				continue
			}
			b.handler.ConsumeEnvelope(context.Background(), &env)
		}
	}()
}

// Close shuts down the writer and reader and waits for the consumer.
func (b *KafkaBroker) Close() error {
	var werr, rerr error
	b.closeOnce.Do(func() {
		close(b.done)
		werr = b.writer.Close()
		rerr = b.reader.Close()
	})
	<-b.drained
	if werr != nil {
		return werr
	}
	return rerr
}
