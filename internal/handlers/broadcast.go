package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/huutien/storebot/core/logger"
	tghelpers "github.com/huutien/storebot/core/telegram/helpers"
	tgsender "github.com/huutien/storebot/core/telegram/sender"
	"log/slog"

	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v4"
)

const broadcastUsage = "Cách dùng: /broadcast <nội dung>"

// Broadcast fans the payload out to every known user. Per-recipient
// failures and timeouts are swallowed; only the success count is
// reported back. Authorization is enforced at registration, before
// this handler runs.
func (h *Handlers) Broadcast(c tele.Context) error {
	if err := h.touch(c, "/broadcast"); err != nil {
		return err
	}

	msg := c.Message()
	if msg == nil || strings.TrimSpace(msg.Payload) == "" {
		return tghelpers.SendText(c, broadcastUsage)
	}
	payload := strings.TrimSpace(msg.Payload)

	ids := h.store.UserIDs()
	bot := c.Bot()
	start := time.Now()

	var sent, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(h.broadcast.Concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := sendWithTimeout(bot, id, payload, h.broadcast.SendTimeout); err != nil {
				failed.Add(1)
				logger.Broadcast.LogAttrs(context.Background(), slog.LevelWarn, "send.failed",
					slog.Int64("user_id", id),
					slog.String("err_kind", tgsender.ClassifyError(err)),
					slog.String("err", logger.SanitizeLimit(err.Error(), 200)),
				)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	logger.Broadcast.LogAttrs(context.Background(), slog.LevelInfo, "complete",
		slog.Int("recipients", len(ids)),
		slog.Int64("sent", sent.Load()),
		slog.Int64("failed", failed.Load()),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)

	return tghelpers.SendText(c, fmt.Sprintf("📣 Đã gửi tới %d người dùng.", sent.Load()))
}

var errSendTimeout = fmt.Errorf("send timed out")

// sendWithTimeout issues one send and abandons it after the timeout so
// a stuck recipient cannot stall the whole fan-out.
func sendWithTimeout(bot tele.API, userID int64, text string, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		_, err := bot.Send(&tele.User{ID: userID}, text)
		done <- err
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return errSendTimeout
	}
}
