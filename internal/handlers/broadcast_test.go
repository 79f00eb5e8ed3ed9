package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huutien/storebot/internal/store"

	tele "gopkg.in/telebot.v4"
)

// fakeAPI overrides just the Send method; everything else panics via
// the embedded nil interface.
type fakeAPI struct {
	tele.API

	mu     sync.Mutex
	sends  []int64
	failID int64
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	user, ok := to.(*tele.User)
	if !ok {
		return nil, errors.New("unexpected recipient")
	}
	f.mu.Lock()
	f.sends = append(f.sends, user.ID)
	f.mu.Unlock()
	if user.ID == f.failID {
		return nil, errors.New("forbidden: bot was blocked by the user")
	}
	return &tele.Message{}, nil
}

type broadcastContext struct {
	tele.Context

	sender *tele.User
	msg    *tele.Message
	api    tele.API
	sent   []string
}

func (b *broadcastContext) Sender() *tele.User     { return b.sender }
func (b *broadcastContext) Message() *tele.Message { return b.msg }
func (b *broadcastContext) Bot() tele.API          { return b.api }

func (b *broadcastContext) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		b.sent = append(b.sent, s)
	}
	return nil
}

func newTestHandlers(t *testing.T) (*Handlers, *store.Service) {
	t.Helper()
	dir := t.TempDir()
	svc := store.Open(filepath.Join(dir, "store.json"), dir)
	h := New(Deps{Store: svc})
	return h, svc
}

func TestBroadcastEmptyPayloadShowsUsage(t *testing.T) {
	h, svc := newTestHandlers(t)
	c := &broadcastContext{
		sender: &tele.User{ID: 7, FirstName: "Op"},
		msg:    &tele.Message{Payload: "   "},
	}

	if err := h.Broadcast(c); err != nil {
		t.Fatal(err)
	}
	if len(c.sent) != 1 || c.sent[0] != broadcastUsage {
		t.Errorf("sent %v, want usage reminder", c.sent)
	}
	if agg := svc.Snapshot(); agg.CommandsUsed["/broadcast"] != 1 {
		t.Errorf("broadcast command not counted: %v", agg.CommandsUsed)
	}
}

func TestBroadcastReportsSuccessCountOnly(t *testing.T) {
	h, svc := newTestHandlers(t)
	if err := svc.UpsertUser(2, "Binh", "binh"); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpsertUser(3, "Chi", "chi"); err != nil {
		t.Fatal(err)
	}

	api := &fakeAPI{failID: 3}
	c := &broadcastContext{
		sender: &tele.User{ID: 1, FirstName: "Op"},
		msg:    &tele.Message{Payload: "Khuyến mãi cuối tuần!"},
		api:    api,
	}

	if err := h.Broadcast(c); err != nil {
		t.Fatal(err)
	}

	// Sender is upserted by the handler itself, so three recipients total.
	api.mu.Lock()
	attempts := len(api.sends)
	api.mu.Unlock()
	if attempts != 3 {
		t.Errorf("send attempts = %d, want 3", attempts)
	}

	want := fmt.Sprintf("📣 Đã gửi tới %d người dùng.", 2)
	if len(c.sent) != 1 || c.sent[0] != want {
		t.Errorf("reply = %v, want %q", c.sent, want)
	}
}

func TestDeniedSendsNotice(t *testing.T) {
	c := &broadcastContext{sender: &tele.User{ID: 5}}
	if err := Denied(c); err != nil {
		t.Fatal(err)
	}
	if len(c.sent) != 1 {
		t.Fatalf("sent %v, want one denial notice", c.sent)
	}
}
