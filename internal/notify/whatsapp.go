package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// MessageSender is the subset of the Twilio client used here.
type MessageSender interface {
	SendWhatsAppMessage(to, body string) (string, error)
}

// WhatsApp pushes reminders to a phone through Twilio.
type WhatsApp struct {
	sender MessageSender
	to     string
}

// NewWhatsApp returns a WhatsApp notifier. A nil sender or empty recipient
// means permission is denied.
func NewWhatsApp(sender MessageSender, to string) *WhatsApp {
	return &WhatsApp{sender: sender, to: to}
}

// Name identifies the channel in permission maps and logs.
func (w *WhatsApp) Name() string { return "whatsapp" }

// RequestPermission grants when a sender and recipient are configured.
func (w *WhatsApp) RequestPermission(context.Context) Permission {
	if w.sender == nil || w.to == "" {
		return PermissionDenied
	}
	return PermissionGranted
}

// Notify sends title in bold followed by body to the configured recipient.
func (w *WhatsApp) Notify(_ context.Context, title, body string) error {
	if w.sender == nil {
		return goerr.New("whatsapp sender not configured")
	}
	if _, err := w.sender.SendWhatsAppMessage(w.to, fmt.Sprintf("*%s*\n%s", title, body)); err != nil {
		return err
	}
	return nil
}
