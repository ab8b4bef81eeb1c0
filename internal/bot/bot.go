package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pathakanu/phtReminder/internal/audio"
	"github.com/pathakanu/phtReminder/internal/clock"
	"github.com/pathakanu/phtReminder/internal/events"
	"github.com/pathakanu/phtReminder/internal/message"
	"github.com/pathakanu/phtReminder/internal/model"
	"github.com/pathakanu/phtReminder/internal/notify"
	"github.com/pathakanu/phtReminder/internal/store"
	"github.com/pathakanu/phtReminder/internal/trigger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AlarmWindow is the default time the alarm-active flag stays raised after a sound.
const AlarmWindow = 8 * time.Second

// ErrConfirmationRequired is returned when clearing history without confirmation.
var ErrConfirmationRequired = errors.New("clearing history requires confirmation")

// Resolver produces reminder text and never fails.
type Resolver interface {
	Resolve(ctx context.Context, timeLabel string, frequency int, aiEnabled bool) message.Result
}

// Speaker reads text aloud, degrading silently.
type Speaker interface {
	Speak(ctx context.Context, text string) string
}

// Notifier fans reminder text out to granted notification channels.
type Notifier interface {
	RequestPermissions(ctx context.Context)
	Permissions() map[string]notify.Permission
	Notify(ctx context.Context, body string) int
}

// Publisher forwards state changes to presentation clients.
type Publisher interface {
	Publish(kind string, payload any)
}

// Options holds the collaborators of a Bot. Settings and History are
// required; every other field has a default.
type Options struct {
	Clock       clock.Clock
	Settings    *store.SettingsStore
	History     *store.HistoryStore
	Resolver    Resolver
	Speaker     Speaker
	Player      audio.Player
	Gate        *audio.Gate
	Notifier    Notifier
	Events      Publisher
	Logger      *zap.SugaredLogger
	SpeechDelay time.Duration
	AlarmWindow time.Duration
	SampleRate  int
	NewID       func() string

	// AllowedOrigins is passed to the CORS middleware of Handler.
	AllowedOrigins []string
}

// Bot coordinates the reminder trigger, the fire path and the persisted state.
type Bot struct {
	clock       clock.Clock
	settings    *store.SettingsStore
	history     *store.HistoryStore
	resolver    Resolver
	speaker     Speaker
	player      audio.Player
	gate        *audio.Gate
	notifier    Notifier
	events      Publisher
	logger      *zap.SugaredLogger
	speechDelay time.Duration
	alarmWindow time.Duration
	sampleRate  int
	newID       func() string
	cron        *cron.Cron
	origins     []string

	ctx      context.Context
	inflight sync.WaitGroup

	// mu serializes settings, history and the trigger cursor.
	mu          sync.Mutex
	current     model.Settings
	entries     []model.Reminder
	trigger     *trigger.Trigger
	alarmActive bool
	alarmTimer  *time.Timer
}

// New creates a fully configured Bot and loads the persisted state.
func New(ctx context.Context, opts Options) *Bot {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Events == nil {
		opts.Events = nopPublisher{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Resolver == nil {
		opts.Resolver = message.NewResolver(nil, opts.Logger)
	}
	if opts.Speaker == nil {
		opts.Speaker = nopSpeaker{}
	}
	if opts.Player == nil {
		opts.Player = nopPlayer{}
	}
	if opts.Gate == nil {
		opts.Gate = audio.NewGate(false)
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewCenter(opts.Logger)
	}
	if opts.AlarmWindow <= 0 {
		opts.AlarmWindow = AlarmWindow
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = 24000
	}
	if opts.NewID == nil {
		opts.NewID = newReminderID
	}

	b := &Bot{
		clock:       opts.Clock,
		settings:    opts.Settings,
		history:     opts.History,
		resolver:    opts.Resolver,
		speaker:     opts.Speaker,
		player:      opts.Player,
		gate:        opts.Gate,
		notifier:    opts.Notifier,
		events:      opts.Events,
		logger:      opts.Logger,
		speechDelay: opts.SpeechDelay,
		alarmWindow: opts.AlarmWindow,
		sampleRate:  opts.SampleRate,
		newID:       opts.NewID,
		cron:        cron.New(cron.WithSeconds(), cron.WithLocation(clock.PHT)),
		ctx:         context.Background(),
		trigger:     trigger.New(),
		origins:     opts.AllowedOrigins,
	}
	b.current = b.settings.Load(ctx)
	b.entries = b.history.Load(ctx)
	return b
}

// StartScheduler requests notification permissions and starts the
// once-per-second tick.
func (b *Bot) StartScheduler(ctx context.Context) error {
	b.ctx = ctx
	b.notifier.RequestPermissions(ctx)

	_, err := b.cron.AddFunc("* * * * * *", func() {
		b.Tick()
	})
	if err != nil {
		return err
	}
	b.cron.Start()
	b.logger.Infow("scheduler started", "frequency", b.Settings().Frequency, "audio", b.gate.Status())
	return nil
}

// StopScheduler stops the ticks and waits for in-flight fire paths.
func (b *Bot) StopScheduler() {
	ctx := b.cron.Stop()
	<-ctx.Done()
	b.inflight.Wait()

	b.mu.Lock()
	if b.alarmTimer != nil {
		b.alarmTimer.Stop()
	}
	b.mu.Unlock()
}

// Wait blocks until every fire path started so far has finished.
func (b *Bot) Wait() {
	b.inflight.Wait()
}

// Tick evaluates the trigger at the current PHT instant and launches the
// fire path on a new boundary. It never blocks on the fire path.
func (b *Bot) Tick() trigger.Evaluation {
	now := b.clock.Now()

	b.mu.Lock()
	snapshot := b.current
	ev := b.trigger.Evaluate(now, snapshot.Frequency)
	b.mu.Unlock()

	if ev.Fire {
		b.logger.Infow("boundary reached", "time", clock.Label(now), "frequency", snapshot.Frequency)
		ctx := b.ctx
		b.async(func() {
			b.fire(ctx, now, snapshot)
		})
	}
	return ev
}

func (b *Bot) fire(ctx context.Context, boundary time.Time, settings model.Settings) {
	label := clock.Label(boundary)
	res := b.resolver.Resolve(ctx, label, settings.Frequency, settings.EnableAI)

	audible := b.gate.Unlocked()
	if audible {
		b.soundAlarm(ctx)
	}

	reminder := model.Reminder{
		ID:      b.newID(),
		Time:    label,
		Message: res.Text,
		Type:    model.ReminderTypeSystem,
	}
	if res.UsedAI {
		reminder.Type = model.ReminderTypeAI
	}
	b.appendReminder(ctx, reminder)
	b.events.Publish(events.KindReminder, reminder)

	if settings.EnableTTS && audible {
		b.async(func() {
			if !sleepCtx(ctx, b.speechDelay) {
				return
			}
			b.speaker.Speak(ctx, res.Text)
		})
	}

	b.async(func() {
		b.notifier.Notify(ctx, res.Text)
	})

	b.logger.Infow("reminder fired",
		"id", reminder.ID,
		"time", reminder.Time,
		"type", reminder.Type,
		"fallback", res.Fallback,
		"audible", audible,
	)
}

func (b *Bot) appendReminder(ctx context.Context, r model.Reminder) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = model.PrependReminder(b.entries, r)
	if err := b.history.Save(ctx, b.entries); err != nil {
		b.logger.Errorw("history: save failed", "error", err)
	}
}

// soundAlarm plays the alert tone and keeps the alarm flag up for the alarm window.
func (b *Bot) soundAlarm(ctx context.Context) {
	b.mu.Lock()
	b.alarmActive = true
	if b.alarmTimer != nil {
		b.alarmTimer.Stop()
	}
	b.alarmTimer = time.AfterFunc(b.alarmWindow, func() {
		b.mu.Lock()
		b.alarmActive = false
		b.mu.Unlock()
		b.events.Publish(events.KindAlarm, map[string]bool{"active": false})
	})
	b.mu.Unlock()
	b.events.Publish(events.KindAlarm, map[string]bool{"active": true})

	tone := audio.AlertTone(b.sampleRate)
	b.async(func() {
		if err := b.player.Play(ctx, tone, b.sampleRate); err != nil {
			b.logger.Warnw("alarm: playback failed", "error", err)
		}
	})
}

// TestAlarm plays the alert sound once without recording a reminder.
// It reports false when audio is still locked.
func (b *Bot) TestAlarm(ctx context.Context) bool {
	if !b.gate.Unlocked() {
		return false
	}
	b.soundAlarm(ctx)
	return true
}

// UnlockAudio records the user gesture that permits sound and speech.
func (b *Bot) UnlockAudio() {
	b.gate.Unlock()
	b.logger.Infow("audio unlocked")
}

// Settings returns the current settings.
func (b *Bot) Settings() model.Settings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// UpdateSettings replaces the whole settings record and persists it. The new
// frequency applies from the next tick.
func (b *Bot) UpdateSettings(ctx context.Context, s model.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	b.current = s
	if err := b.settings.Save(ctx, s); err != nil {
		b.logger.Errorw("settings: save failed", "error", err)
	}
	b.mu.Unlock()

	b.events.Publish(events.KindSettings, s)
	b.logger.Infow("settings updated", "enableAI", s.EnableAI, "enableTTS", s.EnableTTS, "frequency", s.Frequency)
	return nil
}

// History returns a copy of the reminder log, newest first.
func (b *Bot) History() []model.Reminder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Reminder{}, b.entries...)
}

// ClearHistory empties the reminder log once the user has confirmed.
func (b *Bot) ClearHistory(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	b.mu.Lock()
	b.entries = []model.Reminder{}
	if err := b.history.Clear(ctx); err != nil {
		b.logger.Errorw("history: clear failed", "error", err)
	}
	b.mu.Unlock()

	b.events.Publish(events.KindHistory, []model.Reminder{})
	b.logger.Infow("history cleared")
	return nil
}

// State is everything a presentation layer renders.
type State struct {
	Now              time.Time                    `json:"now"`
	Clock            string                       `json:"clock"`
	TimeLabel        string                       `json:"timeLabel"`
	SecondsUntilNext int                          `json:"secondsUntilNext"`
	Countdown        string                       `json:"countdown"`
	Settings         model.Settings               `json:"settings"`
	History          []model.Reminder             `json:"history"`
	AlarmActive      bool                         `json:"alarmActive"`
	Audio            string                       `json:"audio"`
	Notifications    map[string]notify.Permission `json:"notifications"`
}

// Snapshot reads the current state without advancing the trigger.
func (b *Bot) Snapshot() State {
	now := b.clock.Now()

	b.mu.Lock()
	settings := b.current
	history := append([]model.Reminder{}, b.entries...)
	alarm := b.alarmActive
	b.mu.Unlock()

	secs := trigger.SecondsUntilNext(now, settings.Frequency)
	return State{
		Now:              now,
		Clock:            now.Format("3:04:05 PM"),
		TimeLabel:        clock.Label(now),
		SecondsUntilNext: secs,
		Countdown:        trigger.FormatCountdown(secs),
		Settings:         settings,
		History:          history,
		AlarmActive:      alarm,
		Audio:            b.gate.Status(),
		Notifications:    b.notifier.Permissions(),
	}
}

func (b *Bot) async(fn func()) {
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Errorw("panic in fire path", "panic", r)
			}
		}()
		fn()
	}()
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func newReminderID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

type nopSpeaker struct{}

func (nopSpeaker) Speak(context.Context, string) string { return "" }

type nopPlayer struct{}

func (nopPlayer) Play(context.Context, []float32, int) error { return nil }
