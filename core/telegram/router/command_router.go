package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/PetrKevich/bot/core/logger"
	tg "github.com/PetrKevich/bot/core/telegram"
	"github.com/PetrKevich/bot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes binds every registered command and its aliases.
// Handlers are wrapped with recovery, request logging and the admin check.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}
	adminOpts := middleware.AdminOptions{AdminID: opts.AdminID, OnReject: opts.OnAdminReject}

	var routes []tg.Route
	for _, e := range reg.Commands() {
		name := normalizeHandlerName(e.Name)
		inner := middleware.WithAdminCheck(adminOpts, e.Command.AdminOnly, e.Command.Handler)
		h := func(c tele.Context) error {
			return handleWithSummary(c, name, time.Now(), func() error { return inner(c) })
		}
		h = middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))

		routes = append(routes, tg.Route{Endpoint: e.Name, Handler: h})
		for _, alias := range e.Command.Aliases {
			if alias != "" && alias[0] != '/' {
				alias = "/" + alias
			}
			routes = append(routes, tg.Route{Endpoint: alias, Handler: h})
		}
	}

	logger.Info(context.Background(), logger.CompWire, "wire.commands",
		slog.Int("count", len(routes)),
	)
	return routes
}
