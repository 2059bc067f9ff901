package constants

import "time"

const (
	CHANNEL_SIZE  = 100              // broker and per-connection channel buffer
	FILE_MAX_SIZE = 50 << 20         // upload size limit in bytes
	REDIS_TIMEOUT = 30 * time.Minute // conversation cache TTL

	// STORY_LIFETIME is the fixed time a story stays visible after
	// creation.
	STORY_LIFETIME = 24 * time.Hour

	// STORE_TIMEOUT bounds every persistent-store call issued from the
	// realtime path.
	STORE_TIMEOUT = 5 * time.Second

	// SEND_TIMEOUT bounds enqueueing an outbound frame to a single
	// subscriber before delivery to that subscriber is abandoned.
	SEND_TIMEOUT = 2 * time.Second
)
