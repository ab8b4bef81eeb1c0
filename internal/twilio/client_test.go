package twilio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhatsAppAddress(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"   ":                     "",
		"+639171234567":           "whatsapp:+639171234567",
		"639171234567":            "whatsapp:+639171234567",
		" whatsapp:+14155238886 ": "whatsapp:+14155238886",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeWhatsAppAddress(in), "input %q", in)
	}
}

func TestSendWhatsAppMessageValidatesNumbers(t *testing.T) {
	c := New("AC123", "token", "")
	_, err := c.SendWhatsAppMessage("+639171234567", "hi")
	assert.Error(t, err)

	c = New("AC123", "token", "+14155238886")
	_, err = c.SendWhatsAppMessage(" ", "hi")
	assert.Error(t, err)
}
