// Package handlers implements the ordinary-user command surface and
// the free-text responder of the store bot.
package handlers

import (
	"time"

	"github.com/huutien/storebot/internal/store"

	tele "gopkg.in/telebot.v4"
)

// BroadcastOptions tune the privileged fan-out in Broadcast.
type BroadcastOptions struct {
	SendTimeout time.Duration
	Concurrency int
}

// Deps carries everything the handler set needs.
type Deps struct {
	Store     *store.Service
	IsAdmin   func(userID int64) bool
	Broadcast BroadcastOptions
}

// Handlers groups the bot's command and text handlers around shared deps.
type Handlers struct {
	store     *store.Service
	isAdmin   func(userID int64) bool
	broadcast BroadcastOptions
}

// New builds the handler set.
func New(d Deps) *Handlers {
	isAdmin := d.IsAdmin
	if isAdmin == nil {
		isAdmin = func(int64) bool { return false }
	}
	if d.Broadcast.SendTimeout <= 0 {
		d.Broadcast.SendTimeout = 5 * time.Second
	}
	if d.Broadcast.Concurrency <= 0 {
		d.Broadcast.Concurrency = 4
	}
	return &Handlers{
		store:     d.Store,
		isAdmin:   isAdmin,
		broadcast: d.Broadcast,
	}
}

// touch upserts the sender and records the command. Handlers call it
// before producing a reply so the snapshot is durable first.
func (h *Handlers) touch(c tele.Context, command string) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	if err := h.store.UpsertUser(sender.ID, displayName(sender), sender.Username); err != nil {
		return err
	}
	return h.store.RecordCommand(sender.ID, command)
}

func displayName(u *tele.User) string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}
