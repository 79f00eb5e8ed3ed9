// Package app wires the store bot: configuration, persistent store,
// handlers, admin dashboard, and the Telegram runtime options.
package app

import (
	"fmt"

	"github.com/huutien/storebot/core/bootstrap"
	corecmd "github.com/huutien/storebot/core/cmd"
	coreconfig "github.com/huutien/storebot/core/config"
	tg "github.com/huutien/storebot/core/telegram"
	"github.com/huutien/storebot/core/telegram/commands"
	"github.com/huutien/storebot/core/telegram/router"
	"github.com/huutien/storebot/internal/admin"
	"github.com/huutien/storebot/internal/handlers"
	"github.com/huutien/storebot/internal/store"
)

// AppConfig adapts the core configuration to the runner's carrier interface.
type AppConfig struct {
	*coreconfig.Config
}

// CoreConfig implements corecmd.ConfigCarrier.
func (a *AppConfig) CoreConfig() *coreconfig.Config { return a.Config }

// LoadConfig reads and validates the bot configuration.
func LoadConfig(path string) (corecmd.ConfigCarrier, error) {
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return &AppConfig{Config: cfg}, nil
}

// App is the assembled bot: everything needed to produce run options.
type App struct {
	cfg      *coreconfig.Config
	store    *store.Service
	handlers *handlers.Handlers
	admin    *admin.Engine
	registry *tg.Registry
}

// Bootstrap initializes infrastructure and assembles the application.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg := carrier.CoreConfig()

	res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}

	svc := store.Open(res.SnapshotPath, res.ExportDir)

	h := handlers.New(handlers.Deps{
		Store:   svc,
		IsAdmin: cfg.Telegram.IsAdmin,
		Broadcast: handlers.BroadcastOptions{
			SendTimeout: cfg.Broadcast.SendTimeout(),
			Concurrency: cfg.Broadcast.Concurrency,
		},
	})
	engine := admin.NewEngine(svc, cfg.Telegram.IsAdmin, handlers.Denied)

	reg, err := buildRegistry(h, engine)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		store:    svc,
		handlers: h,
		admin:    engine,
		registry: reg,
	}, nil
}

// buildRegistry declares the full command table and admin callback set.
func buildRegistry(h *handlers.Handlers, engine *admin.Engine) (*tg.Registry, error) {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Bắt đầu và nhận lời chào",
	})
	reg.RegisterCommand("/website", commands.Command{
		Handler:     h.Website,
		Description: "Mở website HuuTien Store",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.Help,
		Description: "Danh sách lệnh",
	})
	reg.RegisterCommand("/about", commands.Command{
		Handler:     h.About,
		Description: "Thông tin về bot",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     engine.Dashboard,
		Description: "Bảng điều khiển quản trị",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/broadcast", commands.Command{
		Handler:     h.Broadcast,
		Description: "Gửi thông báo tới mọi người dùng",
		AdminOnly:   true,
		Hidden:      true,
	})

	if err := engine.Register(reg); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	// Plain text always lands on the free-text responder; unknown
	// callbacks stay a silent no-op (the registry default).
	reg.SetTextFallback(h.FreeText)

	return reg, nil
}

// TelegramRunOptions implements corecmd.TelegramApp.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminIDs:      a.cfg.Telegram.AdminIDs,
		OnAdminReject: handlers.Denied,
	})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.registry, router.TextOptions{})...)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}, nil
}

// Store exposes the aggregate service (used by tests).
func (a *App) Store() *store.Service { return a.store }

var _ corecmd.TelegramApp = (*App)(nil)
