package audio

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Player outputs float samples.
type Player interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
}

// CommandPlayer pipes raw float32 LE samples into an external program such as aplay.
type CommandPlayer struct {
	template string
}

// NewCommandPlayer builds a player from a command line; "{rate}" is
// substituted with the sample rate of each clip.
func NewCommandPlayer(template string) *CommandPlayer {
	return &CommandPlayer{template: template}
}

// Play blocks until the command exits or ctx is cancelled.
func (p *CommandPlayer) Play(ctx context.Context, samples []float32, sampleRate int) error {
	args := strings.Fields(strings.ReplaceAll(p.template, "{rate}", strconv.Itoa(sampleRate)))
	if len(args) == 0 {
		return goerr.New("no player command configured")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = bytes.NewReader(EncodeFloat32LE(samples))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return goerr.Wrap(err, "player command failed",
			goerr.V("command", args[0]),
			goerr.V("stderr", strings.TrimSpace(stderr.String())))
	}
	return nil
}
