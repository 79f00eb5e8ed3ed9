package admin

import (
	"strings"
	"testing"
	"time"

	"github.com/huutien/storebot/internal/store"
)

func sampleAggregate() *store.Aggregate {
	agg := store.NewAggregate()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	agg.Users[store.Key(1)] = &store.UserRecord{
		ID: 1, Name: "Alice", Handle: "alice",
		FirstSeen: base, LastSeen: base, Commands: 3,
	}
	agg.Users[store.Key(2)] = &store.UserRecord{
		ID: 2, Name: "Bob",
		FirstSeen: base.Add(time.Minute), LastSeen: base.Add(time.Minute), Commands: 1,
	}
	agg.TotalQueries = 4
	agg.CommandsUsed = map[string]int{"/start": 3, "/website": 1}
	agg.Messages = []store.MessageLogEntry{
		{UserID: 1, Text: "hello there", At: base},
		{UserID: 2, Text: strings.Repeat("dài ", 30), At: base.Add(time.Second)},
	}
	return agg
}

func TestRenderUsers(t *testing.T) {
	text, markup := renderUsers(sampleAggregate())
	if !strings.Contains(text, "Alice") || !strings.Contains(text, "@alice") {
		t.Errorf("users screen missing known user: %q", text)
	}
	if !strings.Contains(text, "(không có)") {
		t.Errorf("missing handle fallback not rendered: %q", text)
	}
	if markup == nil || len(markup.InlineKeyboard) == 0 {
		t.Fatal("users screen has no back button")
	}
}

func TestRenderStatsTotals(t *testing.T) {
	text, _ := renderStats(sampleAggregate())
	for _, want := range []string{
		"Người dùng: 2",
		"Tổng truy vấn: 4",
		"Số lệnh khác nhau: 2",
		"Tin nhắn đã ghi: 2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("stats screen missing %q:\n%s", want, text)
		}
	}
}

func TestRenderMessagesDisplayTruncation(t *testing.T) {
	text, _ := renderMessages(sampleAggregate())
	if !strings.Contains(text, "hello there") {
		t.Errorf("messages screen missing entry: %q", text)
	}
	if !strings.Contains(text, "…") {
		t.Errorf("long message not truncated for display: %q", text)
	}
	for _, line := range strings.Split(text, "\n") {
		if len([]rune(line)) > 120 {
			t.Errorf("display line too long: %q", line)
		}
	}
}

func TestRenderEmptyScreens(t *testing.T) {
	empty := store.NewAggregate()
	if text, _ := renderUsers(empty); !strings.Contains(text, "Chưa có người dùng") {
		t.Errorf("empty users screen: %q", text)
	}
	if text, _ := renderCmdLog(empty); !strings.Contains(text, "Chưa có lệnh") {
		t.Errorf("empty cmdlog screen: %q", text)
	}
	if text, _ := renderMessages(empty); !strings.Contains(text, "Chưa có tin nhắn") {
		t.Errorf("empty messages screen: %q", text)
	}
}

func TestOverviewAndSettingsButtons(t *testing.T) {
	_, overview := renderOverview()
	var tokens []string
	for _, row := range overview.InlineKeyboard {
		for _, btn := range row {
			tokens = append(tokens, btn.Unique)
		}
	}
	for _, want := range []string{TokenUsers, TokenStats, TokenCmdLog, TokenMessages, TokenSettings, TokenExit} {
		found := false
		for _, got := range tokens {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("overview missing token %s (got %v)", want, tokens)
		}
	}

	_, settings := renderSettings()
	var settingsTokens []string
	for _, row := range settings.InlineKeyboard {
		for _, btn := range row {
			settingsTokens = append(settingsTokens, btn.Unique)
		}
	}
	for _, want := range []string{TokenExport, TokenReset, TokenBack} {
		found := false
		for _, got := range settingsTokens {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("settings missing token %s (got %v)", want, settingsTokens)
		}
	}
}

func TestRenderExitHasNoButtons(t *testing.T) {
	text, markup := renderExit()
	if markup != nil {
		t.Error("exit screen should drop the keyboard")
	}
	if text == "" {
		t.Error("exit screen has no farewell")
	}
}
