package admin

import (
	"fmt"
	"strings"

	"github.com/huutien/storebot/core/telegram/format"
	"github.com/huutien/storebot/core/telegram/keyboard"
	"github.com/huutien/storebot/internal/store"

	tele "gopkg.in/telebot.v4"
)

const (
	usersScreenLimit    = 10
	topCommandsLimit    = 5
	messagesScreenLimit = 5
	displayTextRunes    = 50
)

func renderOverview() (string, *tele.ReplyMarkup) {
	text := "🛠 *Bảng điều khiển*\n\nChọn một mục bên dưới."
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "👥 Người dùng", Unique: TokenUsers},
			{Text: "📊 Thống kê", Unique: TokenStats},
		},
		[]keyboard.InlineBtn{
			{Text: "📜 Lệnh đã dùng", Unique: TokenCmdLog},
			{Text: "💬 Tin nhắn", Unique: TokenMessages},
		},
		[]keyboard.InlineBtn{
			{Text: "⚙️ Cài đặt", Unique: TokenSettings},
			{Text: "🚪 Thoát", Unique: TokenExit},
		},
	)
	return text, markup
}

func backMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "⬅️ Quay lại", Unique: TokenBack},
	})
}

func renderUsers(agg *store.Aggregate) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	fmt.Fprintf(&b, "👥 *Người dùng* (%d)\n\n", len(agg.Users))
	users := store.UsersByFirstSeen(agg, usersScreenLimit)
	if len(users) == 0 {
		b.WriteString("Chưa có người dùng nào.")
	}
	for i, u := range users {
		handle := "(không có)"
		if u.Handle != "" {
			handle = "@" + format.EscapeMarkdown(u.Handle)
		}
		fmt.Fprintf(&b, "%d. %s %s – %d lệnh\n",
			i+1, format.EscapeMarkdown(u.Name), handle, u.Commands)
	}
	return b.String(), backMarkup()
}

func renderStats(agg *store.Aggregate) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("📊 *Thống kê*\n\n")
	fmt.Fprintf(&b, "Người dùng: %d\n", len(agg.Users))
	fmt.Fprintf(&b, "Tổng truy vấn: %d\n", agg.TotalQueries)
	fmt.Fprintf(&b, "Số lệnh khác nhau: %d\n", len(agg.CommandsUsed))
	fmt.Fprintf(&b, "Tin nhắn đã ghi: %d\n", len(agg.Messages))

	top := store.TopCommands(agg, topCommandsLimit)
	if len(top) > 0 {
		b.WriteString("\n*Lệnh phổ biến:*\n")
		for _, cc := range top {
			fmt.Fprintf(&b, "%s – %d\n", format.EscapeMarkdown(cc.Name), cc.Count)
		}
	}
	return b.String(), backMarkup()
}

func renderCmdLog(agg *store.Aggregate) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("📜 *Lệnh đã dùng*\n\n")
	all := store.AllCommands(agg)
	if len(all) == 0 {
		b.WriteString("Chưa có lệnh nào được ghi nhận.")
	}
	for _, cc := range all {
		fmt.Fprintf(&b, "%s – %d\n", format.EscapeMarkdown(cc.Name), cc.Count)
	}
	return b.String(), backMarkup()
}

func renderMessages(agg *store.Aggregate) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("💬 *Tin nhắn gần đây*\n\n")
	msgs := store.LastMessages(agg, messagesScreenLimit)
	if len(msgs) == 0 {
		b.WriteString("Chưa có tin nhắn nào.")
	}
	for _, m := range msgs {
		text := m.Text
		if runes := []rune(text); len(runes) > displayTextRunes {
			text = string(runes[:displayTextRunes]) + "…"
		}
		fmt.Fprintf(&b, "`%s`: %s\n", store.Key(m.UserID), format.EscapeMarkdown(text))
	}
	return b.String(), backMarkup()
}

func renderSettings() (string, *tele.ReplyMarkup) {
	text := "⚙️ *Cài đặt*\n\nThao tác dữ liệu:"
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📦 Xuất dữ liệu", Unique: TokenExport},
			{Text: "🧹 Xoá bộ đếm", Unique: TokenReset},
		},
		[]keyboard.InlineBtn{
			{Text: "⬅️ Quay lại", Unique: TokenBack},
		},
	)
	return text, markup
}

func renderExit() (string, *tele.ReplyMarkup) {
	return "👋 Đã đóng bảng điều khiển.", nil
}
