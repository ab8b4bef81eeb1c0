package main

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathakanu/phtReminder/internal/audio"
	"github.com/pathakanu/phtReminder/internal/bot"
	"github.com/pathakanu/phtReminder/internal/clock"
	"github.com/pathakanu/phtReminder/internal/config"
	"github.com/pathakanu/phtReminder/internal/database"
	"github.com/pathakanu/phtReminder/internal/events"
	"github.com/pathakanu/phtReminder/internal/logging"
	"github.com/pathakanu/phtReminder/internal/message"
	"github.com/pathakanu/phtReminder/internal/notify"
	myopenai "github.com/pathakanu/phtReminder/internal/openai"
	"github.com/pathakanu/phtReminder/internal/store"
	"github.com/pathakanu/phtReminder/internal/twilio"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type app struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
	db     *gorm.DB
	broker *events.Broker
	bot    *bot.Bot
}

// newApp loads configuration and wires every component of the reminder bot.
// logOutputs redirects the logger, e.g. to a file while the dashboard runs.
func newApp(ctx context.Context, envFile string, logOutputs ...string) (*app, error) {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, logOutputs...)
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg.DatabaseURL, cfg.DatabasePath, logger)
	if err != nil {
		return nil, goerr.Wrap(err, "database init failed")
	}
	kv := database.NewKV(db)

	openAIClient := myopenai.New(cfg.OpenAIAPIKey, myopenai.Options{
		Model:    cfg.OpenAIModel,
		TTSModel: cfg.OpenAITTSModel,
		Voice:    cfg.OpenAITTSVoice,
		BaseURL:  cfg.OpenAIBaseURL,
	})
	var (
		generator message.Generator
		synth     audio.Synthesizer
	)
	if openAIClient.Enabled() {
		generator = openAIClient
		synth = openAIClient
	} else {
		logger.Infow("openai: no API key, using template messages and local speech")
	}

	player := audio.NewCommandPlayer(cfg.PCMPlayerCmd)
	speaker := audio.NewSpeaker(synth, myopenai.SpeechSampleRate, player, audio.NewCommandSynth(cfg.LocalTTSCmd), logger)

	notifiers := []notify.Notifier{notify.NewDesktop(cfg.DesktopNotify)}
	if cfg.HasTwilio() {
		twilioClient := twilio.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)
		notifiers = append(notifiers, notify.NewWhatsApp(twilioClient, cfg.NotifyWhatsAppTo))
	}

	broker := events.NewBroker(logger)

	reminderBot := bot.New(ctx, bot.Options{
		Clock:       clock.System{},
		Settings:    store.NewSettingsStore(kv, logger),
		History:     store.NewHistoryStore(kv, logger),
		Resolver:    message.NewResolver(generator, logger),
		Speaker:     speaker,
		Player:      player,
		Gate:        audio.NewGate(cfg.AudioUnlocked),
		Notifier:    notify.NewCenter(logger, notifiers...),
		Events:      broker,
		Logger:      logger,
		SpeechDelay: cfg.SpeechDelay,
		SampleRate:  myopenai.SpeechSampleRate,

		AllowedOrigins: cfg.AllowedOrigins,
	})

	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		broker: broker,
		bot:    reminderBot,
	}, nil
}

// Close releases the event stream and the database connection.
func (a *app) Close() {
	a.broker.Close()
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.Warnw("database close", "error", err)
		}
	}
	_ = a.logger.Sync()
}
