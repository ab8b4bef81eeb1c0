package bot

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/pathakanu/phtReminder/internal/model"
)

// Handler returns the HTTP API used by presentation clients. stream serves
// the server-sent events endpoint and may be nil.
func (b *Bot) Handler(stream http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(b.logRequests)
	if len(b.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: b.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"*"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		b.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", b.handleState)
		r.Put("/settings", b.handleUpdateSettings)
		r.Post("/audio/unlock", b.handleUnlockAudio)
		r.Post("/alarm/test", b.handleTestAlarm)
		r.Delete("/history", b.handleClearHistory)
		if stream != nil {
			r.Get("/events", stream.ServeHTTP)
		}
	})
	return r
}

func (b *Bot) handleState(w http.ResponseWriter, _ *http.Request) {
	b.writeJSON(w, http.StatusOK, b.Snapshot())
}

// settingsRequest is the whole settings record; every field must be present.
type settingsRequest struct {
	EnableAI  *bool `json:"enableAI"`
	EnableTTS *bool `json:"enableTTS"`
	Frequency int   `json:"frequency"`
}

func (i *settingsRequest) FromJSON(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(i)
}

func (i settingsRequest) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.EnableAI, validation.NotNil),
		validation.Field(&i.EnableTTS, validation.NotNil),
		validation.Field(&i.Frequency, validation.Required, model.FrequencyRule()),
	)
}

func (i settingsRequest) Settings() model.Settings {
	return model.Settings{EnableAI: *i.EnableAI, EnableTTS: *i.EnableTTS, Frequency: i.Frequency}
}

func (b *Bot) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	input := settingsRequest{}
	if err := input.FromJSON(http.MaxBytesReader(w, r.Body, 1<<10)); err != nil {
		b.writeError(w, http.StatusBadRequest, "settings must be a JSON object with enableAI, enableTTS and frequency")
		return
	}
	if err := input.Validate(); err != nil {
		b.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid settings", "fields": err})
		return
	}

	if err := b.UpdateSettings(r.Context(), input.Settings()); err != nil {
		if errors.Is(err, model.ErrInvalidFrequency) {
			b.writeError(w, http.StatusBadRequest, model.ErrInvalidFrequency.Error())
			return
		}
		b.logger.Errorw("update settings", "error", err)
		b.writeError(w, http.StatusInternalServerError, "could not update settings")
		return
	}
	b.writeJSON(w, http.StatusOK, b.Settings())
}

func (b *Bot) handleUnlockAudio(w http.ResponseWriter, _ *http.Request) {
	b.UnlockAudio()
	b.writeJSON(w, http.StatusOK, map[string]string{"audio": b.gate.Status()})
}

func (b *Bot) handleTestAlarm(w http.ResponseWriter, r *http.Request) {
	played := b.TestAlarm(b.ctx)
	b.writeJSON(w, http.StatusOK, map[string]any{
		"played": played,
		"audio":  b.gate.Status(),
	})
}

func (b *Bot) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := b.ClearHistory(r.Context(), confirmed); err != nil {
		if errors.Is(err, ErrConfirmationRequired) {
			b.writeError(w, http.StatusBadRequest, "add ?confirm=true to clear the history")
			return
		}
		b.writeError(w, http.StatusInternalServerError, "could not clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Bot) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		b.logger.Debugw("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (b *Bot) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		b.logger.Warnw("response encode", "error", err)
	}
}

func (b *Bot) writeError(w http.ResponseWriter, status int, message string) {
	b.writeJSON(w, status, map[string]string{"error": message})
}
