package notify

import (
	"context"
	"os/exec"

	"github.com/m-mizutani/goerr/v2"
)

// Desktop raises notifications through notify-send.
type Desktop struct {
	enabled  bool
	lookPath func(string) (string, error)
	path     string
}

// NewDesktop returns a desktop notifier; disabled ones deny permission.
func NewDesktop(enabled bool) *Desktop {
	return &Desktop{enabled: enabled, lookPath: exec.LookPath}
}

// Name identifies the channel in permission maps and logs.
func (d *Desktop) Name() string { return "desktop" }

// RequestPermission grants only when enabled and notify-send is on PATH.
func (d *Desktop) RequestPermission(context.Context) Permission {
	if !d.enabled {
		return PermissionDenied
	}
	path, err := d.lookPath("notify-send")
	if err != nil {
		return PermissionDenied
	}
	d.path = path
	return PermissionGranted
}

// Notify shows one notification titled title.
func (d *Desktop) Notify(ctx context.Context, title, body string) error {
	if d.path == "" {
		return goerr.New("desktop notifications unavailable")
	}
	cmd := exec.CommandContext(ctx, d.path, "--app-name", title, "--urgency", "normal", title, body)
	if err := cmd.Run(); err != nil {
		return goerr.Wrap(err, "notify-send failed")
	}
	return nil
}
