package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/huutien/storebot/core/logger"
	"github.com/huutien/storebot/core/storage"
	"log/slog"
)

// Service owns the persisted aggregate. Every mutating call runs as a
// single locked mutate-flush unit: the snapshot on disk is durable
// before the call returns, and no two mutations interleave.
type Service struct {
	mu        sync.Mutex
	path      string
	exportDir string
	agg       *Aggregate

	now func() time.Time
}

// Open loads the snapshot at path, or starts from the empty default
// when the snapshot is missing or unreadable. Corruption is logged and
// recovered, never fatal.
func Open(path, exportDir string) *Service {
	s := &Service{
		path:      path,
		exportDir: exportDir,
		agg:       NewAggregate(),
		now:       time.Now,
	}

	found, err := storage.ReadJSON(path, s.agg)
	switch {
	case errors.Is(err, storage.ErrDecodeFailed):
		logger.Store.LogAttrs(context.Background(), slog.LevelWarn, "snapshot.corrupt",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
		s.agg = NewAggregate()
	case err != nil:
		logger.Store.LogAttrs(context.Background(), slog.LevelWarn, "snapshot.read_failed",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
		s.agg = NewAggregate()
	case found:
		s.agg.normalize()
		logger.Store.LogAttrs(context.Background(), slog.LevelInfo, "snapshot.loaded",
			slog.String("path", path),
			slog.Int("users", len(s.agg.Users)),
			slog.Int("messages", len(s.agg.Messages)),
		)
	default:
		logger.Store.LogAttrs(context.Background(), slog.LevelInfo, "snapshot.fresh",
			slog.String("path", path),
		)
	}

	return s
}

// flushLocked writes the aggregate to disk. Caller holds s.mu.
func (s *Service) flushLocked() error {
	if err := storage.WriteJSONAtomic(s.path, s.agg); err != nil {
		logger.Store.LogAttrs(context.Background(), slog.LevelError, "snapshot.flush_failed",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}

// UpsertUser registers an unseen user or advances an existing user's
// last-seen time. Name and handle are kept from the first sighting.
func (s *Service) UpsertUser(id int64, name, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(id)
	ts := s.now()
	if u, ok := s.agg.Users[key]; ok {
		u.LastSeen = ts
	} else {
		s.agg.Users[key] = &UserRecord{
			ID:        id,
			Name:      name,
			Handle:    handle,
			FirstSeen: ts,
			LastSeen:  ts,
		}
	}
	return s.flushLocked()
}

// RecordCommand bumps the global counter, the per-command counter, and
// the user's personal count when the user is known.
func (s *Service) RecordCommand(userID int64, command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agg.TotalQueries++
	s.agg.CommandsUsed[command]++
	if u, ok := s.agg.Users[Key(userID)]; ok {
		u.Commands++
	}
	return s.flushLocked()
}

// AppendMessage adds a free-text entry, truncated for storage.
func (s *Service) AppendMessage(userID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agg.Messages = append(s.agg.Messages, MessageLogEntry{
		UserID: userID,
		Text:   truncateRunes(text, maxStoredMessageRunes),
		At:     s.now(),
	})
	return s.flushLocked()
}

// ResetCounters zeroes the global counter and clears per-command
// counts. Users and the message log are untouched.
func (s *Service) ResetCounters() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agg.TotalQueries = 0
	s.agg.CommandsUsed = make(map[string]int)
	return s.flushLocked()
}

// Export writes the current aggregate to a uniquely named artifact in
// the export directory and returns the artifact's base name. The live
// snapshot is not touched.
func (s *Service) Export() (string, error) {
	s.mu.Lock()
	snapshot := s.agg.Clone()
	s.mu.Unlock()

	name, err := storage.WriteExport(s.exportDir, snapshot)
	if err != nil {
		logger.Store.LogAttrs(context.Background(), slog.LevelError, "export.failed",
			slog.String("dir", s.exportDir),
			slog.String("err", err.Error()),
		)
		return "", err
	}
	logger.Store.LogAttrs(context.Background(), slog.LevelInfo, "export.written",
		slog.String("artifact", name),
	)
	return name, nil
}

// Snapshot returns a deep copy of the aggregate for rendering.
func (s *Service) Snapshot() *Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agg.Clone()
}

// UserIDs returns every known user ID, ordered by first sighting.
func (s *Service) UserIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*UserRecord, 0, len(s.agg.Users))
	for _, u := range s.agg.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].FirstSeen.Equal(users[j].FirstSeen) {
			return users[i].ID < users[j].ID
		}
		return users[i].FirstSeen.Before(users[j].FirstSeen)
	})

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
