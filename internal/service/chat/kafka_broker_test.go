package chat

import (
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse_chat_server/internal/config"
)

func TestKafkaBrokerTimeoutUnit(t *testing.T) {
	// The TOML timeout is an integer number of seconds, not a duration.
	var conf struct {
		Kafka config.KafkaConfig `toml:"kafkaConfig"`
	}
	_, err := toml.Decode(`
[kafkaConfig]
messageMode = "kafka"
hostPort = "127.0.0.1:9092"
chatTopic = "messages"
timeout = 5
`, &conf)
	require.NoError(t, err)
	require.Equal(t, 5, conf.Kafka.Timeout)

	b := NewKafkaBroker(&conf.Kafka, nil)
	assert.Equal(t, 5*time.Second, b.writer.WriteTimeout)
	assert.Equal(t, 5*time.Second, b.reader.Config().CommitInterval)
}

func TestKafkaBrokerTimeoutDefault(t *testing.T) {
	b := NewKafkaBroker(&config.KafkaConfig{
		HostPort:  "127.0.0.1:9092",
		ChatTopic: "messages",
	}, nil)
	assert.Equal(t, 10*time.Second, b.writer.WriteTimeout)
	assert.Equal(t, 10*time.Second, b.reader.Config().CommitInterval)
}
