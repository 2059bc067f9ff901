package chat

import (
	"go.uber.org/zap"

	"pulse_chat_server/internal/config"
	"pulse_chat_server/internal/dao/mysql"
	"pulse_chat_server/internal/dao/redis"
)

// ChatServer aggregates the realtime engine. One instance serves all
// websocket traffic of a node.
type ChatServer struct {
	Registry *RoomRegistry
	Presence *PresenceTracker
	Guard    *Guard
	Pipeline *MessagePipeline
	Gateway  *Gateway
	Broker   MessageBroker
	History  *History
}

// NewChatServer assembles the engine and selects the broker mode from
// configuration: "kafka" shares delivery across nodes, anything else
// runs the in-process channel broker.
func NewChatServer(conf *config.Config, repos *mysql.Repositories, cache redis.AsyncCacheService) *ChatServer {
	registry := NewRoomRegistry()
	presence := NewPresenceTracker(repos.User, cache, registry)
	guard := NewGuard(repos.GroupMember, repos.BlockedUser)
	pipeline := NewMessagePipeline(repos.Message, repos.User, guard, registry, cache)
	gateway := NewGateway(registry, presence, guard, pipeline, repos.User)
	history := NewHistory(repos.Message, repos.User, guard, cache)

	var broker MessageBroker
	if conf.KafkaConfig.MessageMode == "kafka" {
		broker = NewKafkaBroker(&conf.KafkaConfig, gateway)
		zap.L().Info("message broker: kafka",
			zap.String("topic", conf.KafkaConfig.ChatTopic))
	} else {
		broker = NewChannelBroker(gateway)
		zap.L().Info("message broker: channel")
	}
	gateway.SetBroker(broker)

	return &ChatServer{
		Registry: registry,
		Presence: presence,
		Guard:    guard,
		Pipeline: pipeline,
		Gateway:  gateway,
		Broker:   broker,
		History:  history,
	}
}

// Start launches the broker consumer.
func (s *ChatServer) Start() {
	s.Broker.Start()
}

// Close stops the broker; live websockets drain through their own
// teardown paths.
func (s *ChatServer) Close() {
	if err := s.Broker.Close(); err != nil {
		zap.L().Error("broker close failed", zap.Error(err))
	}
}
