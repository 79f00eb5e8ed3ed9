package admin

import (
	"context"
	"fmt"

	"github.com/huutien/storebot/core/logger"
	tg "github.com/huutien/storebot/core/telegram"
	tghelpers "github.com/huutien/storebot/core/telegram/helpers"
	"github.com/huutien/storebot/internal/store"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Engine drives the admin dashboard. Screens hold no session state:
// each render derives entirely from the incoming token plus a fresh
// store snapshot, so a restart or a stale message changes nothing.
type Engine struct {
	store    *store.Service
	isAdmin  func(userID int64) bool
	onDenied tele.HandlerFunc
}

// NewEngine builds the dashboard engine.
func NewEngine(s *store.Service, isAdmin func(int64) bool, onDenied tele.HandlerFunc) *Engine {
	if isAdmin == nil {
		isAdmin = func(int64) bool { return false }
	}
	if onDenied == nil {
		onDenied = func(tele.Context) error { return nil }
	}
	return &Engine{store: s, isAdmin: isAdmin, onDenied: onDenied}
}

// Dashboard handles the /admin command and opens the Overview screen.
// The command is registered admin-only, so authorization already ran.
func (e *Engine) Dashboard(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	name := sender.FirstName
	if name == "" {
		name = sender.Username
	}
	if err := e.store.UpsertUser(sender.ID, name, sender.Username); err != nil {
		return err
	}
	if err := e.store.RecordCommand(sender.ID, "/admin"); err != nil {
		return err
	}

	text, markup := renderOverview()
	return tghelpers.SendMD(c, text, markup)
}

// Register wires every admin token into the registry. Each handler is
// authorization-guarded independently; there is no session-scoped
// bypass, a replayed token from a non-admin is denied on its own.
func (e *Engine) Register(reg *tg.Registry) error {
	handlers := map[string]tele.HandlerFunc{
		TokenUsers:    e.screen(renderUsers),
		TokenStats:    e.screen(renderStats),
		TokenCmdLog:   e.screen(renderCmdLog),
		TokenMessages: e.screen(renderMessages),
		TokenSettings: e.screen(staticScreen(renderSettings)),
		TokenBack:     e.screen(staticScreen(renderOverview)),
		TokenExit:     e.screen(staticScreen(renderExit)),
		TokenExport:   e.guard(e.exportData),
		TokenReset:    e.guard(e.resetCounters),
	}
	for _, token := range Tokens() {
		if err := reg.RegisterCallback(token, handlers[token]); err != nil {
			return fmt.Errorf("admin: %w", err)
		}
	}
	return nil
}

type screenRender func(agg *store.Aggregate) (string, *tele.ReplyMarkup)

func staticScreen(render func() (string, *tele.ReplyMarkup)) screenRender {
	return func(*store.Aggregate) (string, *tele.ReplyMarkup) {
		return render()
	}
}

// screen renders in place: the existing dashboard message is edited,
// never replaced by a new one.
func (e *Engine) screen(render screenRender) tele.HandlerFunc {
	return e.guard(func(c tele.Context) error {
		text, markup := render(e.store.Snapshot())
		if markup == nil {
			return tghelpers.EditMD(c, text)
		}
		return tghelpers.EditMD(c, text, markup)
	})
}

// guard re-checks authorization before any state read or transition.
func (e *Engine) guard(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil || !e.isAdmin(sender.ID) {
			var uid int64
			if sender != nil {
				uid = sender.ID
			}
			logger.Admin.LogAttrs(context.Background(), slog.LevelWarn, "denied",
				slog.Int64("user_id", uid),
			)
			return e.onDenied(c)
		}
		return next(c)
	}
}

func (e *Engine) exportData(c tele.Context) error {
	name, err := e.store.Export()
	if err != nil {
		return tghelpers.SendText(c, "⚠️ Xuất dữ liệu thất bại, thử lại sau.")
	}
	return tghelpers.SendText(c, "📦 Đã xuất dữ liệu: "+name)
}

func (e *Engine) resetCounters(c tele.Context) error {
	if err := e.store.ResetCounters(); err != nil {
		return tghelpers.SendText(c, "⚠️ Không xoá được bộ đếm, thử lại sau.")
	}
	return tghelpers.SendText(c, "🧹 Đã xoá bộ đếm truy vấn.")
}
