package model

import (
	"errors"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/m-mizutani/goerr/v2"
)

// Frequencies lists the reminder intervals, in minutes, that can be selected.
var Frequencies = []int{10, 15, 30}

// ErrInvalidFrequency is returned when a frequency outside Frequencies is requested.
var ErrInvalidFrequency = errors.New("frequency must be one of 10, 15 or 30 minutes")

// Settings controls reminder generation and delivery.
type Settings struct {
	EnableAI  bool `json:"enableAI"`
	EnableTTS bool `json:"enableTTS"`
	Frequency int  `json:"frequency"`
}

// DefaultSettings is used on first run and whenever the persisted record is unusable.
func DefaultSettings() Settings {
	return Settings{
		EnableAI:  true,
		EnableTTS: true,
		Frequency: 10,
	}
}

// FrequencyRule accepts only the selectable intervals.
func FrequencyRule() validation.Rule {
	choices := make([]interface{}, len(Frequencies))
	for i, f := range Frequencies {
		choices[i] = f
	}
	return validation.In(choices...).Error(ErrInvalidFrequency.Error())
}

// Validate checks the frequency against the selectable intervals.
func (s Settings) Validate() error {
	if err := validation.Validate(s.Frequency, validation.Required, FrequencyRule()); err != nil {
		return goerr.Wrap(ErrInvalidFrequency, "invalid settings", goerr.V("frequency", s.Frequency))
	}
	return nil
}

// NextFrequency cycles through Frequencies, used by the terminal dashboard.
func NextFrequency(current int) int {
	idx := slices.Index(Frequencies, current)
	return Frequencies[(idx+1)%len(Frequencies)]
}
