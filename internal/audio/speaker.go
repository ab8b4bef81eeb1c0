package audio

import (
	"context"
	"os/exec"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"
)

// Synthesizer is a remote text-to-speech service returning raw PCM16 mono.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// LocalSynth speaks text on the device itself.
type LocalSynth interface {
	Say(ctx context.Context, text string) error
}

// CommandSynth runs a speech program such as espeak or say with the text as
// its final argument.
type CommandSynth struct {
	command string
}

// NewCommandSynth returns a LocalSynth for command.
func NewCommandSynth(command string) *CommandSynth {
	return &CommandSynth{command: command}
}

// Say runs the speech command.
func (c *CommandSynth) Say(ctx context.Context, text string) error {
	args := strings.Fields(c.command)
	if len(args) == 0 {
		return goerr.New("no local speech command configured")
	}
	args = append(args, text)
	if err := exec.CommandContext(ctx, args[0], args[1:]...).Run(); err != nil {
		return goerr.Wrap(err, "local speech failed", goerr.V("command", args[0]))
	}
	return nil
}

// Speaker tries remote synthesis first, then the local synthesizer, and
// otherwise gives up quietly.
type Speaker struct {
	remote     Synthesizer
	sampleRate int
	player     Player
	local      LocalSynth
	logger     *zap.SugaredLogger
}

// NewSpeaker wires the speech fallback chain. remote and local may be nil.
func NewSpeaker(remote Synthesizer, sampleRate int, player Player, local LocalSynth, logger *zap.SugaredLogger) *Speaker {
	return &Speaker{
		remote:     remote,
		sampleRate: sampleRate,
		player:     player,
		local:      local,
		logger:     logger,
	}
}

// Speak reports which path succeeded: "remote", "local" or "" when both failed.
func (s *Speaker) Speak(ctx context.Context, text string) string {
	if s.remote != nil {
		err := s.speakRemote(ctx, text)
		if err == nil {
			return "remote"
		}
		s.logger.Warnw("speech: remote synthesis failed, trying local", "error", err)
	}

	if s.local != nil {
		err := s.local.Say(ctx, text)
		if err == nil {
			return "local"
		}
		s.logger.Warnw("speech: local synthesis failed", "error", err)
	}
	return ""
}

func (s *Speaker) speakRemote(ctx context.Context, text string) error {
	pcm, err := s.remote.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	samples := DecodePCM16(pcm)
	if len(samples) == 0 {
		return goerr.New("speech audio has no samples", goerr.V("bytes", len(pcm)))
	}
	return s.player.Play(ctx, samples, s.sampleRate)
}
