package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBrokerStreamsPublishedEvents(t *testing.T) {
	b := NewBroker(zap.NewNop().Sugar())
	t.Cleanup(b.Close)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.ServeHTTP(rr, req)
	}()

	time.Sleep(100 * time.Millisecond)
	b.Publish(KindReminder, map[string]string{"time": "8:30 AM"})
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after client disconnect")
	}

	body := rr.Body.String()
	assert.Contains(t, body, "event: reminder")
	assert.Contains(t, body, `"time":"8:30 AM"`)
}

func TestBrokerPublishUnencodable(t *testing.T) {
	b := NewBroker(zap.NewNop().Sugar())
	t.Cleanup(b.Close)

	assert.NotPanics(t, func() {
		b.Publish(KindSettings, make(chan int))
	})
}
