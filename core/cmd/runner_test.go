package cmd

import (
	"context"
	"errors"
	"testing"

	coreconfig "github.com/PetrKevich/bot/core/config"
	coretelegram "github.com/PetrKevich/bot/core/telegram"
)

type fakeConfig struct{ core *coreconfig.Config }

func (f fakeConfig) CoreConfig() *coreconfig.Config { return f.core }

type fakeApp struct {
	closed bool
}

func (a *fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{}, nil
}

func (a *fakeApp) Close() error {
	a.closed = true
	return nil
}

func TestRunWiresHooksAndClosesApp(t *testing.T) {
	t.Setenv("TEST_BOT_CONFIG", "from-env.yaml")
	app := &fakeApp{}
	var loadedPath string
	shutdowns := 0

	err := Run(Options{
		ConfigEnvVar:      "TEST_BOT_CONFIG",
		DefaultConfigPath: "default.yaml",
		Context:           context.Background(),
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedPath = path
			return fakeConfig{core: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return app, nil
		},
		ShutdownLogger: func() error {
			shutdowns++
			return nil
		},
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if opts.OnStart == nil || opts.OnStop == nil {
				t.Fatal("lifecycle hooks not wired")
			}
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if loadedPath != "from-env.yaml" {
		t.Fatalf("config path = %q", loadedPath)
	}
	if !app.closed || shutdowns != 1 {
		t.Fatalf("closed=%v shutdowns=%d", app.closed, shutdowns)
	}
}

func TestRunFailures(t *testing.T) {
	boom := errors.New("boom")
	load := func(string) (ConfigCarrier, error) { return fakeConfig{core: &coreconfig.Config{}}, nil }

	if err := Run(Options{}); err == nil {
		t.Fatal("missing LoadConfig must fail")
	}
	err := Run(Options{
		Context:    context.Background(),
		LoadConfig: func(string) (ConfigCarrier, error) { return nil, boom },
		Bootstrap:  func(context.Context, ConfigCarrier) (TelegramApp, error) { return &fakeApp{}, nil },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("load err = %v", err)
	}
	err = Run(Options{
		Context:    context.Background(),
		LoadConfig: func(string) (ConfigCarrier, error) { return fakeConfig{}, nil },
		Bootstrap:  func(context.Context, ConfigCarrier) (TelegramApp, error) { return &fakeApp{}, nil },
	})
	if err == nil {
		t.Fatal("missing core config must fail")
	}
	err = Run(Options{
		Context:    context.Background(),
		LoadConfig: load,
		Bootstrap:  func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("bootstrap err = %v", err)
	}
}
