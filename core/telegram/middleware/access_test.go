package middleware

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

type senderContext struct {
	tele.Context
	sender *tele.User
}

func (s *senderContext) Sender() *tele.User { return s.sender }

func TestAdminOptionsIsAdmin(t *testing.T) {
	opts := AdminOptions{AdminIDs: []int64{42, 1001}}

	if !opts.IsAdmin(42) {
		t.Error("42 must be admin")
	}
	if !opts.IsAdmin(1001) {
		t.Error("1001 must be admin")
	}
	if opts.IsAdmin(43) {
		t.Error("43 must not be admin")
	}
}

func TestAdminOptionsEmptyAllowlistDeniesAll(t *testing.T) {
	var opts AdminOptions
	if opts.IsAdmin(0) || opts.IsAdmin(42) {
		t.Error("empty allowlist must deny everyone")
	}
}

func TestAdminOnlyMiddlewareRejects(t *testing.T) {
	rejected := 0
	handled := 0
	mw := AdminOnlyMiddleware(AdminOptions{
		AdminIDs: []int64{42},
		OnReject: func(tele.Context) error { rejected++; return nil },
	})
	h := mw(func(tele.Context) error { handled++; return nil })

	if err := h(&senderContext{sender: &tele.User{ID: 7}}); err != nil {
		t.Fatal(err)
	}
	if err := h(&senderContext{}); err != nil {
		t.Fatal(err)
	}
	if handled != 0 {
		t.Errorf("handler ran %d times for rejected updates", handled)
	}
	if rejected != 2 {
		t.Errorf("rejected = %d, want 2", rejected)
	}

	if err := h(&senderContext{sender: &tele.User{ID: 42}}); err != nil {
		t.Fatal(err)
	}
	if handled != 1 {
		t.Errorf("handler ran %d times for an allowlisted update, want 1", handled)
	}
}
