package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	name     string
	perm     Permission
	err      error
	asked    int
	received []string
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) RequestPermission(context.Context) Permission {
	f.asked++
	return f.perm
}

func (f *fakeNotifier) Notify(_ context.Context, title, body string) error {
	f.received = append(f.received, title+"|"+body)
	return f.err
}

func TestCenterRequestsPermissionOnce(t *testing.T) {
	a := &fakeNotifier{name: "a", perm: PermissionGranted}
	c := NewCenter(zap.NewNop().Sugar(), a)

	assert.Equal(t, PermissionDefault, c.Permissions()["a"])
	c.RequestPermissions(context.Background())
	c.RequestPermissions(context.Background())

	assert.Equal(t, 1, a.asked)
	assert.Equal(t, PermissionGranted, c.Permissions()["a"])
}

func TestCenterNotifySkipsDeniedAndIsolatesFailures(t *testing.T) {
	failing := &fakeNotifier{name: "failing", perm: PermissionGranted, err: errors.New("offline")}
	denied := &fakeNotifier{name: "denied", perm: PermissionDenied}
	ok := &fakeNotifier{name: "ok", perm: PermissionGranted}
	c := NewCenter(zap.NewNop().Sugar(), failing, denied, ok)
	c.RequestPermissions(context.Background())

	delivered := c.Notify(context.Background(), "It's 8:30 AM.")

	assert.Equal(t, 1, delivered)
	assert.Len(t, failing.received, 1)
	assert.Empty(t, denied.received)
	require.Len(t, ok.received, 1)
	assert.Equal(t, "PHT Reminder|It's 8:30 AM.", ok.received[0])
}

func TestCenterNotifyBeforePermission(t *testing.T) {
	a := &fakeNotifier{name: "a", perm: PermissionGranted}
	c := NewCenter(zap.NewNop().Sugar(), a)
	assert.Zero(t, c.Notify(context.Background(), "x"))
}

func TestDesktopPermission(t *testing.T) {
	d := NewDesktop(false)
	assert.Equal(t, PermissionDenied, d.RequestPermission(context.Background()))

	d = NewDesktop(true)
	d.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	assert.Equal(t, PermissionDenied, d.RequestPermission(context.Background()))
	assert.Error(t, d.Notify(context.Background(), "t", "b"))

	d.lookPath = func(string) (string, error) { return "/usr/bin/notify-send", nil }
	assert.Equal(t, PermissionGranted, d.RequestPermission(context.Background()))
}

type fakeSender struct {
	to, body string
	err      error
}

func (f *fakeSender) SendWhatsAppMessage(to, body string) (string, error) {
	f.to, f.body = to, body
	return "SM1", f.err
}

func TestWhatsApp(t *testing.T) {
	assert.Equal(t, PermissionDenied, NewWhatsApp(nil, "+63917").RequestPermission(context.Background()))
	assert.Equal(t, PermissionDenied, NewWhatsApp(&fakeSender{}, "").RequestPermission(context.Background()))

	sender := &fakeSender{}
	w := NewWhatsApp(sender, "+639171234567")
	require.Equal(t, PermissionGranted, w.RequestPermission(context.Background()))
	require.NoError(t, w.Notify(context.Background(), Title, "Drink water"))
	assert.Equal(t, "+639171234567", sender.to)
	assert.Equal(t, "*PHT Reminder*\nDrink water", sender.body)

	sender.err = errors.New("rate limited")
	assert.Error(t, w.Notify(context.Background(), Title, "again"))
}
