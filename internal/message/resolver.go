package message

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Generator produces reminder text for a PHT time label.
type Generator interface {
	GenerateReminder(ctx context.Context, timeLabel string) (string, error)
}

// Result is always usable: Text is never empty.
type Result struct {
	Text string
	// UsedAI is true whenever generation was attempted, even if it fell back.
	UsedAI bool
	// Fallback is true when the template was used after a generation attempt.
	Fallback bool
}

// Resolver turns a boundary into reminder text.
type Resolver struct {
	generator Generator
	logger    *zap.SugaredLogger
}

// NewResolver creates a Resolver. generator may be nil, in which case every
// AI attempt falls back to the template.
func NewResolver(generator Generator, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{generator: generator, logger: logger}
}

// Template is the deterministic reminder text.
func Template(timeLabel string, frequency int) string {
	return fmt.Sprintf("It's %s. Time for your %d-minute reminder!", timeLabel, frequency)
}

// Resolve never fails. With aiEnabled it makes a single generation attempt and
// falls back to Template on any error or blank answer.
func (r *Resolver) Resolve(ctx context.Context, timeLabel string, frequency int, aiEnabled bool) Result {
	if !aiEnabled {
		return Result{Text: Template(timeLabel, frequency)}
	}

	fallback := Result{Text: Template(timeLabel, frequency), UsedAI: true, Fallback: true}
	if r.generator == nil {
		return fallback
	}

	text, err := r.generate(ctx, timeLabel)
	if err != nil {
		r.logger.Warnw("message: generation failed, using template", "label", timeLabel, "error", err)
		return fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		r.logger.Warnw("message: generation returned blank text, using template", "label", timeLabel)
		return fallback
	}
	return Result{Text: text, UsedAI: true}
}

func (r *Resolver) generate(ctx context.Context, timeLabel string) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("generator panic: %v", p)
		}
	}()
	return r.generator.GenerateReminder(ctx, timeLabel)
}
