package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	DatabasePath   string   `env:"DATABASE_PATH" envDefault:"reminders.db"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`

	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel    string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAITTSModel string `env:"OPENAI_TTS_MODEL" envDefault:"gpt-4o-mini-tts"`
	OpenAITTSVoice string `env:"OPENAI_TTS_VOICE" envDefault:"alloy"`
	OpenAIBaseURL  string `env:"OPENAI_BASE_URL"`

	TwilioAccountSID     string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `env:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppNumber string `env:"TWILIO_WHATSAPP_NUMBER"`
	NotifyWhatsAppTo     string `env:"NOTIFY_WHATSAPP_TO"`
	DesktopNotify        bool   `env:"DESKTOP_NOTIFY" envDefault:"true"`

	// PCMPlayerCmd reads raw little-endian float32 mono samples on stdin.
	// "{rate}" is replaced with the sample rate.
	PCMPlayerCmd  string        `env:"PCM_PLAYER_CMD" envDefault:"aplay -q -t raw -f FLOAT_LE -c 1 -r {rate}"`
	LocalTTSCmd   string        `env:"LOCAL_TTS_CMD" envDefault:"espeak"`
	AudioUnlocked bool          `env:"AUDIO_UNLOCKED" envDefault:"false"`
	SpeechDelay   time.Duration `env:"SPEECH_DELAY" envDefault:"1500ms"`
}

// Load reads configuration values and prepares defaults where applicable.
// Variables already set in the environment win over the dotenv files.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse environment")
	}
	if cfg.SpeechDelay < 0 {
		return nil, goerr.New("SPEECH_DELAY must not be negative", goerr.V("speech_delay", cfg.SpeechDelay))
	}
	return cfg, nil
}

// HasTwilio reports whether outbound WhatsApp delivery is fully configured.
func (c *Config) HasTwilio() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" &&
		c.TwilioWhatsAppNumber != "" && c.NotifyWhatsAppTo != ""
}
