package handlers

import (
	"fmt"

	tghelpers "github.com/huutien/storebot/core/telegram/helpers"
	"github.com/huutien/storebot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

const (
	websiteURL = "https://huutien.store/"
	contactURL = "https://t.me/your_contact"
)

const helpText = "📖 *Các lệnh hỗ trợ*\n\n" +
	"/start – bắt đầu và nhận lời chào\n" +
	"/website – mở website HuuTien Store\n" +
	"/help – danh sách lệnh\n" +
	"/about – thông tin về bot\n\n" +
	"Bạn cũng có thể nhắn tin trực tiếp, mình sẽ ghi nhận."

const aboutText = "🤖 *HuuTien Store Bot*\n\n" +
	"Bot chăm sóc khách hàng của HuuTien Store.\n" +
	"Website: https://huutien.store/"

// Start greets the caller and discloses their admin status.
func (h *Handlers) Start(c tele.Context) error {
	if err := h.touch(c, "/start"); err != nil {
		return err
	}

	name := ""
	admin := false
	if s := c.Sender(); s != nil {
		name = displayName(s)
		admin = h.isAdmin(s.ID)
	}

	adminLine := "❌ khách"
	if admin {
		adminLine = "✅ quản trị viên"
	}
	text := fmt.Sprintf(
		"👋 Xin chào %s!\n\n"+
			"Chào mừng bạn đến với *HuuTien Store Bot*.\n"+
			"Gõ /help để xem các lệnh.\n\n"+
			"🔑 Quyền hạn: %s",
		name, adminLine,
	)
	return tghelpers.SendMD(c, text)
}

// Website renders the fixed external-link menu.
func (h *Handlers) Website(c tele.Context) error {
	if err := h.touch(c, "/website"); err != nil {
		return err
	}

	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "🌐 Truy cập Website", URL: websiteURL}},
		[]keyboard.InlineBtn{{Text: "📞 Liên hệ", URL: contactURL}},
	)
	text := "🏠 *Website HuuTien Store*\n\n" +
		"Chào mừng bạn đến với website của chúng tôi!\n" +
		"Nhấn nút bên dưới để truy cập."
	return tghelpers.SendMD(c, text, markup)
}

// Help lists the available commands.
func (h *Handlers) Help(c tele.Context) error {
	if err := h.touch(c, "/help"); err != nil {
		return err
	}
	return tghelpers.SendMD(c, helpText)
}

// About sends static bot information.
func (h *Handlers) About(c tele.Context) error {
	if err := h.touch(c, "/about"); err != nil {
		return err
	}
	return tghelpers.SendMD(c, aboutText)
}

// Denied is the fixed reply for unauthorized privileged access.
func Denied(c tele.Context) error {
	return tghelpers.SendText(c, "🚫 Bạn không có quyền sử dụng chức năng này.")
}
