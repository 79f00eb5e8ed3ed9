package store

import (
	"fmt"
	"testing"
	"time"
)

func buildAggregate() *Aggregate {
	agg := NewAggregate()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 12; i++ {
		agg.Users[Key(i)] = &UserRecord{
			ID:        i,
			Name:      fmt.Sprintf("user%d", i),
			FirstSeen: base.Add(time.Duration(i) * time.Minute),
			LastSeen:  base.Add(time.Duration(i) * time.Minute),
		}
	}
	agg.CommandsUsed = map[string]int{
		"/start":     9,
		"/website":   9,
		"/help":      4,
		"/about":     2,
		"/admin":     7,
		"/broadcast": 1,
	}
	for i := 0; i < 8; i++ {
		agg.Messages = append(agg.Messages, MessageLogEntry{
			UserID: 1,
			Text:   fmt.Sprintf("msg-%d", i),
			At:     base.Add(time.Duration(i) * time.Second),
		})
	}
	return agg
}

func TestUsersByFirstSeenLimit(t *testing.T) {
	agg := buildAggregate()
	users := UsersByFirstSeen(agg, 10)
	if len(users) != 10 {
		t.Fatalf("len = %d, want 10", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i].FirstSeen.Before(users[i-1].FirstSeen) {
			t.Fatalf("users out of order at %d", i)
		}
	}
	if users[0].ID != 1 || users[9].ID != 10 {
		t.Errorf("window = [%d..%d], want [1..10]", users[0].ID, users[9].ID)
	}
}

func TestTopCommandsOrderAndTies(t *testing.T) {
	agg := buildAggregate()
	top := TopCommands(agg, 5)
	if len(top) != 5 {
		t.Fatalf("len = %d, want 5", len(top))
	}
	want := []CommandCount{
		{"/start", 9},
		{"/website", 9},
		{"/admin", 7},
		{"/help", 4},
		{"/about", 2},
	}
	for i, w := range want {
		if top[i] != w {
			t.Errorf("top[%d] = %+v, want %+v", i, top[i], w)
		}
	}
}

func TestLastMessagesWindow(t *testing.T) {
	agg := buildAggregate()
	msgs := LastMessages(agg, 5)
	if len(msgs) != 5 {
		t.Fatalf("len = %d, want 5", len(msgs))
	}
	if msgs[0].Text != "msg-3" || msgs[4].Text != "msg-7" {
		t.Errorf("window = [%s..%s], want [msg-3..msg-7]", msgs[0].Text, msgs[4].Text)
	}
}

func TestAllCommandsSortedByName(t *testing.T) {
	agg := buildAggregate()
	all := AllCommands(agg)
	if len(all) != 6 {
		t.Fatalf("len = %d, want 6", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Name < all[i-1].Name {
			t.Fatalf("not sorted at %d: %s < %s", i, all[i].Name, all[i-1].Name)
		}
	}
}
