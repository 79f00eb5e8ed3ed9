package store

import "sort"

// CommandCount pairs a command name with its invocation count.
type CommandCount struct {
	Name  string
	Count int
}

// UsersByFirstSeen returns up to limit users ordered by first sighting,
// ties broken by ID.
func UsersByFirstSeen(agg *Aggregate, limit int) []*UserRecord {
	users := make([]*UserRecord, 0, len(agg.Users))
	for _, u := range agg.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].FirstSeen.Equal(users[j].FirstSeen) {
			return users[i].ID < users[j].ID
		}
		return users[i].FirstSeen.Before(users[j].FirstSeen)
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users
}

// TopCommands returns up to limit commands sorted by count descending,
// ties broken by name ascending.
func TopCommands(agg *Aggregate, limit int) []CommandCount {
	out := make([]CommandCount, 0, len(agg.CommandsUsed))
	for name, count := range agg.CommandsUsed {
		out = append(out, CommandCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Name < out[j].Name
		}
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AllCommands returns every known command with its count, sorted by
// name for stable rendering.
func AllCommands(agg *Aggregate) []CommandCount {
	out := make([]CommandCount, 0, len(agg.CommandsUsed))
	for name, count := range agg.CommandsUsed {
		out = append(out, CommandCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LastMessages returns the newest limit entries, oldest first within
// the window.
func LastMessages(agg *Aggregate, limit int) []MessageLogEntry {
	msgs := agg.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]MessageLogEntry, len(msgs))
	copy(out, msgs)
	return out
}
