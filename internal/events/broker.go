// Package events streams state changes to presentation clients over SSE.
package events

import (
	"encoding/json"
	"net/http"

	"github.com/r3labs/sse/v2"
	"go.uber.org/zap"
)

// Stream is the single SSE stream id clients subscribe to.
const Stream = "reminders"

// Event kinds.
const (
	KindReminder = "reminder"
	KindSettings = "settings"
	KindHistory  = "history"
	KindAlarm    = "alarm"
)

// Broker publishes JSON events to SSE subscribers.
type Broker struct {
	server *sse.Server
	logger *zap.SugaredLogger
}

// NewBroker creates a broker with its stream ready. Old events are not replayed
// to new subscribers; they read /api/state first.
func NewBroker(logger *zap.SugaredLogger) *Broker {
	server := sse.New()
	server.AutoReplay = false
	server.CreateStream(Stream)
	return &Broker{server: server, logger: logger}
}

// Publish sends payload as an event of the given kind.
func (b *Broker) Publish(kind string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Warnw("events: encode failed", "kind", kind, "error", err)
		return
	}
	b.server.Publish(Stream, &sse.Event{Event: []byte(kind), Data: data})
}

// ServeHTTP subscribes the client to the reminders stream.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("stream") == "" {
		q := r.URL.Query()
		q.Set("stream", Stream)
		r.URL.RawQuery = q.Encode()
	}
	b.server.ServeHTTP(w, r)
}

// Close disconnects all subscribers.
func (b *Broker) Close() {
	b.server.Close()
}
