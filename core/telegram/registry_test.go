package telegram

import (
	"testing"

	"github.com/huutien/storebot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestRegisterCommandValidation(t *testing.T) {
	reg := NewRegistry()

	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "start"})
	reg.RegisterCommand("start", commands.Command{Handler: noopHandler, Description: "no slash"})
	reg.RegisterCommand("/empty", commands.Command{Description: "nil handler"})
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "duplicate"})

	if got := len(reg.Commands()); got != 1 {
		t.Fatalf("commands registered = %d, want 1", got)
	}
	if cmd := reg.Commands()["/start"]; cmd.Description != "start" {
		t.Errorf("duplicate registration overwrote the original: %q", cmd.Description)
	}
}

func TestListCommandsVisibleOnly(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/website", commands.Command{Handler: noopHandler, Description: "website"})
	reg.RegisterCommand("/about", commands.Command{Handler: noopHandler, Description: "about"})
	reg.RegisterCommand("/admin", commands.Command{Handler: noopHandler, Description: "admin", AdminOnly: true})
	reg.RegisterCommand("/debug", commands.Command{Handler: noopHandler, Description: "debug", Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 2 {
		t.Fatalf("visible commands = %d, want 2", len(visible))
	}
	if visible[0].Text != "/about" || visible[1].Text != "/website" {
		t.Errorf("visible commands not sorted: %v", visible)
	}
	if all := reg.ListCommands(false); len(all) != 4 {
		t.Errorf("all commands = %d, want 4", len(all))
	}
}

func TestLookupCommandAliases(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/help", commands.Command{
		Handler:     noopHandler,
		Description: "help",
		Aliases:     []string{"h"},
	})

	key, _, ok := reg.LookupCommand("help")
	if !ok || key != "/help" {
		t.Errorf("LookupCommand(help) = %q, %v", key, ok)
	}
	key, _, ok = reg.LookupCommand("/h")
	if !ok || key != "/help" {
		t.Errorf("LookupCommand(/h) = %q, %v", key, ok)
	}
	if _, _, ok := reg.LookupCommand("/missing"); ok {
		t.Error("LookupCommand(/missing) found a command")
	}
}

func TestRegisterCallback(t *testing.T) {
	reg := NewRegistry()

	if err := reg.RegisterCallback("admin_users", noopHandler); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCallback("admin_users", noopHandler); err == nil {
		t.Error("duplicate callback registration did not error")
	}
	if err := reg.RegisterCallback("", noopHandler); err == nil {
		t.Error("empty key registration did not error")
	}
	if err := reg.RegisterCallback("admin_stats", nil); err == nil {
		t.Error("nil handler registration did not error")
	}

	if _, ok := reg.GetCallback("admin_users"); !ok {
		t.Error("registered callback not found")
	}
	if _, ok := reg.GetCallback("admin_nope"); ok {
		t.Error("unregistered callback found")
	}
}

func TestCallbackNotFoundDefaultsToNoop(t *testing.T) {
	reg := NewRegistry()
	h := reg.CallbackNotFound()
	if h == nil {
		t.Fatal("default callback-not-found handler is nil")
	}
	if err := h(nil); err != nil {
		t.Errorf("default handler returned %v", err)
	}
}

func TestTextFallback(t *testing.T) {
	reg := NewRegistry()
	if reg.TextFallback() != nil {
		t.Error("fresh registry has a text fallback")
	}
	called := false
	reg.SetTextFallback(func(tele.Context) error { called = true; return nil })
	if err := reg.TextFallback()(nil); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("text fallback not invoked")
	}
}
