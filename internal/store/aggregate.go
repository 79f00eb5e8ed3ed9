package store

import (
	"strconv"
	"time"
)

// maxStoredMessageRunes bounds the text kept per message log entry.
const maxStoredMessageRunes = 100

// UserRecord describes a single known user. Display fields keep the
// identity observed on first contact; only LastSeen advances afterwards.
type UserRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Handle    string    `json:"handle,omitempty"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	Commands  int       `json:"commands_count"`
}

// MessageLogEntry is one appended free-text message.
type MessageLogEntry struct {
	UserID int64     `json:"user_id"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// Aggregate is the persisted root: users, counters and the message log,
// loaded and flushed as one unit.
type Aggregate struct {
	Users        map[string]*UserRecord `json:"users"`
	TotalQueries int                    `json:"total_queries"`
	CommandsUsed map[string]int         `json:"commands_used"`
	Messages     []MessageLogEntry      `json:"messages"`
}

// NewAggregate returns the empty default aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{
		Users:        make(map[string]*UserRecord),
		CommandsUsed: make(map[string]int),
	}
}

// Key converts a user ID to its canonical string map key. All lookups
// go through this so a user can never appear under two key shapes.
func Key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// normalize repairs nil maps after a decode of a hand-edited or
// partially written snapshot.
func (a *Aggregate) normalize() {
	if a.Users == nil {
		a.Users = make(map[string]*UserRecord)
	}
	if a.CommandsUsed == nil {
		a.CommandsUsed = make(map[string]int)
	}
}

// Clone returns a deep copy safe to read outside the store lock.
func (a *Aggregate) Clone() *Aggregate {
	out := &Aggregate{
		Users:        make(map[string]*UserRecord, len(a.Users)),
		TotalQueries: a.TotalQueries,
		CommandsUsed: make(map[string]int, len(a.CommandsUsed)),
		Messages:     make([]MessageLogEntry, len(a.Messages)),
	}
	for k, u := range a.Users {
		cp := *u
		out.Users[k] = &cp
	}
	for k, v := range a.CommandsUsed {
		out.CommandsUsed[k] = v
	}
	copy(out.Messages, a.Messages)
	return out
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
