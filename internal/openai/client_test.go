package openai

import (
	"context"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientWithoutKey(t *testing.T) {
	t.Parallel()
	client := New("", Options{})
	ctx := context.Background()

	assert.False(t, client.Enabled())

	_, err := client.GenerateReminder(ctx, "8:30 AM")
	assert.ErrorIs(t, err, ErrClientNotInitialised)

	_, err = client.Synthesize(ctx, "hello")
	assert.ErrorIs(t, err, ErrClientNotInitialised)
}

func TestGenerateReminderTrimsContent(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  Stretch now, it's 8:30 AM.  "}}]}`))
	}))
	t.Cleanup(srv.Close)

	client := New("test-key", Options{BaseURL: srv.URL})
	text, err := client.GenerateReminder(context.Background(), "8:30 AM")
	require.NoError(t, err)
	assert.Equal(t, "Stretch now, it's 8:30 AM.", text)
}

func TestGenerateReminderEmptyChoices(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := New("test-key", Options{BaseURL: srv.URL})
	_, err := client.GenerateReminder(context.Background(), "8:30 AM")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestSynthesizeReturnsPCM(t *testing.T) {
	t.Parallel()
	samples := []int16{0, 16384, -16384}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)
		w.Header().Set("Content-Type", "audio/pcm")
		_ = binary.Write(w, binary.LittleEndian, samples)
	}))
	t.Cleanup(srv.Close)

	client := New("test-key", Options{BaseURL: srv.URL})
	pcm, err := client.Synthesize(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, pcm, 6)
}
