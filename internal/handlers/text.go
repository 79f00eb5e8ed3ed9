package handlers

import (
	"strings"

	tghelpers "github.com/huutien/storebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

var greetingKeywords = []string{"hello", "hi", "chào", "xin chào"}

const (
	greetingReply = "👋 Chào bạn! Gõ /help để xem mình có thể giúp gì nhé."
	defaultReply  = "🤖 Mình đã ghi nhận tin nhắn của bạn. Gõ /help để xem các lệnh."
)

// GreetingReply returns the response for a free-text message: the
// greeting branch when any keyword matches case-insensitively, the
// default acknowledgement otherwise.
func GreetingReply(text string) string {
	lowered := strings.ToLower(text)
	for _, kw := range greetingKeywords {
		if strings.Contains(lowered, kw) {
			return greetingReply
		}
	}
	return defaultReply
}

// FreeText logs an inbound plain-text message and answers with one of
// two fixed replies. Commands never reach this handler.
func (h *Handlers) FreeText(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	if err := h.store.UpsertUser(sender.ID, displayName(sender), sender.Username); err != nil {
		return err
	}
	if err := h.store.AppendMessage(sender.ID, c.Text()); err != nil {
		return err
	}
	return tghelpers.SendText(c, GreetingReply(c.Text()))
}
