package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PetrKevich/bot/core/bootstrap"
	"github.com/PetrKevich/bot/core/logger"
	tg "github.com/PetrKevich/bot/core/telegram"
	"github.com/PetrKevich/bot/core/telegram/helpers"
	"github.com/PetrKevich/bot/core/telegram/router"
	"github.com/PetrKevich/bot/internal/archive"
	"github.com/PetrKevich/bot/internal/bot"
	"github.com/PetrKevich/bot/internal/dialog"
	"github.com/PetrKevich/bot/internal/handoff"
	"github.com/PetrKevich/bot/internal/pricing"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"
)

const (
	limitedText   = "Слишком часто. Подождите секунду и повторите."
	adminOnlyText = "Команда доступна только администратору."
	mediaText     = "Я понимаю только текст. Нажмите /start, чтобы оформить заказ."
)

// App holds the long-lived components of the bot.
type App struct {
	cfg *Config
	db  *sqlx.DB

	catalog      *pricing.Catalog
	service      *dialog.Service
	notifier     *bot.ManagerNotifier
	archive      *archive.Archive
	conversation *bot.Conversation
}

// Bootstrap initializes logging and the optional order archive, then builds the app.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	opts := bootstrap.Options{Config: cfg.CoreConfig()}
	if cfg.Database.Enabled {
		dbCfg := cfg.Database.Config.WithDefaults()
		opts.Database = &dbCfg
		opts.Migrations = archive.Migrations()
	}
	infra, err := bootstrap.Run(ctx, opts)
	if err != nil {
		return nil, err
	}
	return New(cfg, infra.DB), nil
}

// New assembles the conversation, pricing and hand-off sinks. db may be nil.
func New(cfg *Config, db *sqlx.DB) *App {
	a := &App{cfg: cfg, db: db, catalog: pricing.DefaultCatalog()}

	var sinks handoff.Fanout
	if cfg.Manager.ChatID != 0 {
		a.notifier = bot.NewManagerNotifier(cfg.Manager.ChatID)
		sinks = append(sinks, a.notifier)
	} else {
		logger.Warn(context.Background(), logger.CompApp, "manager.disabled")
	}
	if db != nil {
		a.archive = archive.New(db, cfg.Location())
		sinks = append(sinks, a.archive)
	}

	var sink handoff.Sink
	if len(sinks) > 0 {
		sink = sinks
	}
	machine := dialog.NewMachine(pricing.NewEngine(a.catalog))
	a.service = dialog.NewService(machine, dialog.Options{
		Sink:            sink,
		DeliveryTimeout: time.Duration(cfg.Dialog.DeliveryTimeoutSeconds) * time.Second,
	})

	labels := bot.NewClassifier(a.catalog)
	company := bot.Company{Address: cfg.Company.Address, Phone: cfg.Company.Phone}
	renderer := bot.NewRenderer(a.catalog, labels, company, cfg.Windows.ExampleImages)
	a.conversation = bot.NewConversation(a.service, labels, renderer)
	return a
}

// Config returns the configuration the app was built from.
func (a *App) Config() *Config {
	return a.cfg
}

// TelegramRunOptions registers commands and routes for the runtime.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	deps := bot.CommandDeps{
		Conversation: a.conversation,
		Catalog:      a.catalog,
		Company:      bot.Company{Address: a.cfg.Company.Address, Phone: a.cfg.Company.Phone},
	}
	if a.archive != nil {
		deps.Orders = a.archive
	}
	if err := bot.RegisterCommands(reg, deps); err != nil {
		return tg.RunOptions{}, fmt.Errorf("app: register commands: %w", err)
	}

	core := a.cfg.CoreConfig()
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       core.Telegram.AdminID,
		OnAdminReject: replyText(adminOnlyText),
	})
	routes = append(routes, router.TextRoutes(a.conversation, reg, router.TextOptions{
		UnknownMedia: replyText(mediaText),
	})...)

	return tg.RunOptions{
		Config:      core,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(core, replyText(limitedText)),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			if a.notifier != nil && rt.Bot != nil {
				a.notifier.Attach(rt.Bot)
			}
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			a.service.Close()
			logger.Info(ctx, logger.CompDialog, "dialog.closed")
			return nil
		},
	}, nil
}

// Close stops the conversation service and releases the database.
func (a *App) Close() error {
	a.service.Close()
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func replyText(text string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return helpers.SendText(c, text)
	}
}
