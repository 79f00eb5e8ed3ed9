package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	return Open(filepath.Join(dir, "store.json"), filepath.Join(dir, "exports"))
}

func TestUpsertUserFirstIdentityWins(t *testing.T) {
	s := newTestService(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if err := s.UpsertUser(42, "Alice", "alice"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	s.now = func() time.Time { return base.Add(time.Hour) }
	if err := s.UpsertUser(42, "Impostor", "imp"); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	agg := s.Snapshot()
	if len(agg.Users) != 1 {
		t.Fatalf("users = %d, want 1", len(agg.Users))
	}
	u := agg.Users[Key(42)]
	if u == nil {
		t.Fatal("user 42 missing")
	}
	if u.Name != "Alice" || u.Handle != "alice" {
		t.Errorf("identity overwritten: name=%q handle=%q", u.Name, u.Handle)
	}
	if !u.LastSeen.After(u.FirstSeen) {
		t.Errorf("last seen did not advance: first=%v last=%v", u.FirstSeen, u.LastSeen)
	}
}

func TestRecordCommandCounters(t *testing.T) {
	s := newTestService(t)
	if err := s.UpsertUser(7, "Bob", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.RecordCommand(7, "/start"); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := s.RecordCommand(999, "/help"); err != nil {
		t.Fatalf("record unknown user: %v", err)
	}

	agg := s.Snapshot()
	if agg.TotalQueries != 4 {
		t.Errorf("total = %d, want 4", agg.TotalQueries)
	}
	if agg.CommandsUsed["/start"] != 3 || agg.CommandsUsed["/help"] != 1 {
		t.Errorf("commands_used = %v", agg.CommandsUsed)
	}
	if got := agg.Users[Key(7)].Commands; got != 3 {
		t.Errorf("user commands = %d, want 3", got)
	}
}

func TestAppendMessageTruncation(t *testing.T) {
	s := newTestService(t)

	long := strings.Repeat("x", 150)
	if err := s.AppendMessage(1, long); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendMessage(1, "hello there"); err != nil {
		t.Fatalf("append: %v", err)
	}

	agg := s.Snapshot()
	if len(agg.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(agg.Messages))
	}
	if got := len([]rune(agg.Messages[0].Text)); got != 100 {
		t.Errorf("stored length = %d, want 100", got)
	}
	if agg.Messages[1].Text != "hello there" {
		t.Errorf("short text altered: %q", agg.Messages[1].Text)
	}
}

func TestResetCountersKeepsUsersAndMessages(t *testing.T) {
	s := newTestService(t)
	_ = s.UpsertUser(1, "A", "")
	_ = s.RecordCommand(1, "/start")
	_ = s.AppendMessage(1, "hi")

	if err := s.ResetCounters(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	agg := s.Snapshot()
	if agg.TotalQueries != 0 || len(agg.CommandsUsed) != 0 {
		t.Errorf("counters survived reset: total=%d used=%v", agg.TotalQueries, agg.CommandsUsed)
	}
	if len(agg.Users) != 1 || len(agg.Messages) != 1 {
		t.Errorf("reset touched users/messages: users=%d messages=%d", len(agg.Users), len(agg.Messages))
	}
}

func TestReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")

	s := Open(path, dir)
	_ = s.UpsertUser(42, "Alice", "alice")
	_ = s.RecordCommand(42, "/start")
	_ = s.AppendMessage(42, "hello there")

	before := s.Snapshot()

	reloaded := Open(path, dir)
	after := reloaded.Snapshot()

	if after.TotalQueries != before.TotalQueries {
		t.Errorf("total = %d, want %d", after.TotalQueries, before.TotalQueries)
	}
	u := after.Users[Key(42)]
	if u == nil || u.Name != "Alice" || u.Handle != "alice" {
		t.Fatalf("user lost on reload: %+v", u)
	}
	if len(after.Messages) != 1 || after.Messages[0].Text != "hello there" {
		t.Errorf("messages lost on reload: %+v", after.Messages)
	}
}

func TestOpenCorruptSnapshotFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	writeFile(t, path, "{not json")

	s := Open(path, dir)
	agg := s.Snapshot()
	if len(agg.Users) != 0 || agg.TotalQueries != 0 || len(agg.Messages) != 0 {
		t.Errorf("corrupt snapshot not reset: %+v", agg)
	}
}

func TestExportDoesNotMutateLiveStore(t *testing.T) {
	dir := t.TempDir()
	s := Open(filepath.Join(dir, "store.json"), filepath.Join(dir, "exports"))
	_ = s.UpsertUser(1, "A", "")
	_ = s.RecordCommand(1, "/start")

	before := s.Snapshot()

	name, err := s.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(name, "export_") || !strings.HasSuffix(name, ".json") {
		t.Errorf("artifact name = %q", name)
	}

	after := s.Snapshot()
	if after.TotalQueries != before.TotalQueries || len(after.Users) != len(before.Users) {
		t.Errorf("export mutated store: before=%+v after=%+v", before, after)
	}
}

func TestUserIDsOrderedByFirstSeen(t *testing.T) {
	s := newTestService(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []int64{30, 10, 20} {
		ts := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return ts }
		if err := s.UpsertUser(id, "u", ""); err != nil {
			t.Fatalf("upsert %d: %v", id, err)
		}
	}

	got := s.UserIDs()
	want := []int64{30, 10, 20}
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func TestUsageScenario(t *testing.T) {
	s := newTestService(t)

	// /start
	if err := s.UpsertUser(42, "Alice", "alice"); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordCommand(42, "/start"); err != nil {
		t.Fatal(err)
	}
	// /website
	if err := s.UpsertUser(42, "Alice", "alice"); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordCommand(42, "/website"); err != nil {
		t.Fatal(err)
	}
	// free text
	if err := s.UpsertUser(42, "Alice", "alice"); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendMessage(42, "hello there"); err != nil {
		t.Fatal(err)
	}

	agg := s.Snapshot()
	if len(agg.Users) != 1 {
		t.Fatalf("users = %d, want 1", len(agg.Users))
	}
	u := agg.Users[Key(42)]
	if u.Commands != 2 {
		t.Errorf("commands_count = %d, want 2", u.Commands)
	}
	if agg.CommandsUsed["/start"] != 1 || agg.CommandsUsed["/website"] != 1 {
		t.Errorf("commands_used = %v", agg.CommandsUsed)
	}
	if agg.TotalQueries != 2 {
		t.Errorf("total_queries = %d, want 2", agg.TotalQueries)
	}
	if len(agg.Messages) != 1 || agg.Messages[0].Text != "hello there" {
		t.Errorf("messages = %+v", agg.Messages)
	}
}
