package audio

import "sync/atomic"

// Gate models the one-time user gesture that permits audio output.
type Gate struct {
	unlocked atomic.Bool
}

// NewGate returns a gate, optionally already unlocked for headless setups.
func NewGate(unlocked bool) *Gate {
	g := &Gate{}
	g.unlocked.Store(unlocked)
	return g
}

// Unlock permits audio from now on.
func (g *Gate) Unlock() {
	g.unlocked.Store(true)
}

// Unlocked reports whether audio may play.
func (g *Gate) Unlocked() bool {
	return g.unlocked.Load()
}

// Status is "ready" or "muted", as shown to the user.
func (g *Gate) Status() string {
	if g.Unlocked() {
		return "ready"
	}
	return "muted"
}
