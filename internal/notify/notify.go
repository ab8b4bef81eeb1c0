// Package notify delivers reminder notifications through every channel the
// user has granted.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Permission mirrors the three states of a notification permission prompt.
type Permission string

const (
	// PermissionDefault means the channel has not been asked yet.
	PermissionDefault Permission = "default"
	// PermissionGranted means reminders are delivered on the channel.
	PermissionGranted Permission = "granted"
	// PermissionDenied means the channel is skipped until restart.
	PermissionDenied Permission = "denied"
)

// Title is the heading of every reminder notification.
const Title = "PHT Reminder"

// Notifier is one delivery channel.
type Notifier interface {
	Name() string
	// RequestPermission is asked once at startup.
	RequestPermission(ctx context.Context) Permission
	Notify(ctx context.Context, title, body string) error
}

// Center fans a notification out to every granted Notifier.
type Center struct {
	notifiers []Notifier
	logger    *zap.SugaredLogger

	mu          sync.RWMutex
	permissions map[string]Permission
	requested   bool
}

// NewCenter creates a Center. Permissions stay "default" until RequestPermissions.
func NewCenter(logger *zap.SugaredLogger, notifiers ...Notifier) *Center {
	perms := make(map[string]Permission, len(notifiers))
	for _, n := range notifiers {
		perms[n.Name()] = PermissionDefault
	}
	return &Center{notifiers: notifiers, logger: logger, permissions: perms}
}

// RequestPermissions asks each notifier once; later calls are no-ops.
func (c *Center) RequestPermissions(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.requested {
		return
	}
	c.requested = true
	for _, n := range c.notifiers {
		perm := n.RequestPermission(ctx)
		c.permissions[n.Name()] = perm
		c.logger.Infow("notify: permission resolved", "notifier", n.Name(), "permission", perm)
	}
}

// Permissions returns a copy of the current permission per notifier.
func (c *Center) Permissions() map[string]Permission {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Permission, len(c.permissions))
	for k, v := range c.permissions {
		out[k] = v
	}
	return out
}

// Notify delivers body to every granted notifier and returns how many
// succeeded. Failures are logged and do not stop the others.
func (c *Center) Notify(ctx context.Context, body string) int {
	perms := c.Permissions()
	delivered := 0
	for _, n := range c.notifiers {
		if perms[n.Name()] != PermissionGranted {
			continue
		}
		if err := n.Notify(ctx, Title, body); err != nil {
			c.logger.Warnw("notify: delivery failed", "notifier", n.Name(), "error", err)
			continue
		}
		delivered++
	}
	return delivered
}
