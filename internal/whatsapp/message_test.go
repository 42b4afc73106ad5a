package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextIsTextOnlyMessage(t *testing.T) {
	msg := MessageFrom(Text("hello"))

	assert.Equal(t, map[string]any{PayloadText: "hello"}, msg.ToMap())
	assert.True(t, msg.CanSend())
	assert.False(t, msg.HasToken())
	assert.Nil(t, msg.ErrorHandler())
	assert.Empty(t, msg.ChatID())
}

func TestMessageFromNil(t *testing.T) {
	assert.Nil(t, MessageFrom(nil))
}

func TestMessageConditions(t *testing.T) {
	assert.True(t, NewMessage("x").When(true).Unless(false).CanSend())
	assert.False(t, NewMessage("x").When(true).When(false).CanSend())
	assert.False(t, NewMessage("x").Unless(true).CanSend())
}

func TestMessageToMapIsACopy(t *testing.T) {
	msg := NewMessage("x").To("1@c.us").Set("link_preview", false)

	m := msg.ToMap()
	m[PayloadText] = "changed"

	assert.Equal(t, "x", msg.PayloadValue(PayloadText))
	assert.Equal(t, "1@c.us", msg.ChatID())
	assert.Equal(t, false, msg.PayloadValue("link_preview"))
}

func TestMessageRequestCarriesToken(t *testing.T) {
	req := NewMessage("x").WithToken(" secret ").Request("2@c.us")

	assert.Equal(t, "2@c.us", req.ChatID)
	assert.Equal(t, "secret", req.Token)
	assert.Equal(t, map[string]any{PayloadText: "x"}, req.Payload)
}

func TestMessageChatIDKeepsNonEmptyValues(t *testing.T) {
	assert.Equal(t, "905551112233", NewMessage("x").Set(PayloadChatID, 905551112233).ChatID())
	assert.Equal(t, "   ", NewMessage("x").To("   ").ChatID())
	assert.Empty(t, NewMessage("x").To("").ChatID())
	assert.Empty(t, NewMessage("x").Set(PayloadChatID, nil).ChatID())
}
