package live

import (
	"net/http"
	"time"
)

// Config configures a live Server.
type Config struct {
	// ReadTimeout is the maximum time between client messages. The client
	// answers pings, so an idle but open tab stays connected.
	ReadTimeout time.Duration

	// WriteTimeout bounds each websocket write.
	WriteTimeout time.Duration

	// HeartbeatInterval is how often the server pings the client.
	HeartbeatInterval time.Duration

	// ConnectTimeout is how long a session waits for its websocket after
	// the page was served before it is discarded.
	ConnectTimeout time.Duration

	// EventQueueSize is the per-session event buffer.
	EventQueueSize int

	// MaxSessions limits concurrent sessions. Zero means unlimited.
	MaxSessions int

	// MetricsPath serves Prometheus metrics. Empty disables the endpoint.
	MetricsPath string

	// CheckOrigin validates websocket origins. Nil allows same-origin
	// requests only.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 20 * time.Second,
		ConnectTimeout:    30 * time.Second,
		EventQueueSize:    64,
		MetricsPath:       "/metrics",
	}
}
