package admin

import (
	"path/filepath"
	"reflect"
	"testing"

	tg "github.com/huutien/storebot/core/telegram"
	"github.com/huutien/storebot/internal/store"

	tele "gopkg.in/telebot.v4"
)

// stubContext provides just enough of tele.Context for guard tests.
// Any other method would panic via the embedded nil interface.
type stubContext struct {
	tele.Context
	sender *tele.User
}

func (s *stubContext) Sender() *tele.User { return s.sender }

func newTestEngine(t *testing.T, isAdmin func(int64) bool, onDenied tele.HandlerFunc) (*Engine, *store.Service) {
	t.Helper()
	dir := t.TempDir()
	svc := store.Open(filepath.Join(dir, "store.json"), dir)
	return NewEngine(svc, isAdmin, onDenied), svc
}

func TestRegisterCoversEveryToken(t *testing.T) {
	e, _ := newTestEngine(t, func(int64) bool { return true }, nil)
	reg := tg.NewRegistry()
	if err := e.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, token := range Tokens() {
		if _, ok := reg.GetCallback(token); !ok {
			t.Errorf("token %s has no handler", token)
		}
	}
}

func TestGuardDeniesWithoutMutation(t *testing.T) {
	denied := 0
	e, svc := newTestEngine(t,
		func(int64) bool { return false },
		func(tele.Context) error { denied++; return nil },
	)
	_ = svc.UpsertUser(1, "Alice", "alice")
	_ = svc.RecordCommand(1, "/start")
	before := svc.Snapshot()

	reg := tg.NewRegistry()
	if err := e.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	c := &stubContext{sender: &tele.User{ID: 99}}
	for _, token := range Tokens() {
		h, _ := reg.GetCallback(token)
		if err := h(c); err != nil {
			t.Fatalf("token %s: %v", token, err)
		}
	}

	if denied != len(Tokens()) {
		t.Errorf("denied = %d, want %d", denied, len(Tokens()))
	}
	after := svc.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("denied callbacks mutated the store:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestGuardDeniesNilSender(t *testing.T) {
	denied := 0
	e, _ := newTestEngine(t,
		func(int64) bool { return true },
		func(tele.Context) error { denied++; return nil },
	)
	h := e.guard(func(tele.Context) error {
		t.Fatal("handler ran without a sender")
		return nil
	})
	if err := h(&stubContext{}); err != nil {
		t.Fatal(err)
	}
	if denied != 1 {
		t.Errorf("denied = %d, want 1", denied)
	}
}
