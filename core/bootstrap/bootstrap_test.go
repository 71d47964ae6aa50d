package bootstrap

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	coreconfig "github.com/PetrKevich/bot/core/config"
	coredatabase "github.com/PetrKevich/bot/core/database"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunWithoutDatabase(t *testing.T) {
	res, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		LoggerInit: noLogger,
		Connect: func(context.Context, coredatabase.Config) (*sqlx.DB, error) {
			t.Fatal("connect must not be called")
			return nil, nil
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.DB != nil {
		t.Fatal("expected no database handle")
	}
	if err := res.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRunMigratesBeforeConnect(t *testing.T) {
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	mock.ExpectClose()

	var steps []string
	migrations := fstest.MapFS{"0001_init.up.sql": {Data: []byte("SELECT 1;")}}
	res, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		Database:   &coredatabase.Config{Name: "orders"},
		Migrations: migrations,
		LoggerInit: noLogger,
		Migrate: func(_ context.Context, cfg coredatabase.Config, src fs.FS) error {
			if cfg.Name != "orders" || src == nil {
				t.Fatalf("unexpected migrate args: %+v", cfg)
			}
			steps = append(steps, "migrate")
			return nil
		},
		Connect: func(context.Context, coredatabase.Config) (*sqlx.DB, error) {
			steps = append(steps, "connect")
			return sqlx.NewDb(raw, "postgres"), nil
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(steps) != 2 || steps[0] != "migrate" || steps[1] != "connect" {
		t.Fatalf("steps = %v", steps)
	}
	if err := res.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRunPropagatesFailures(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name string
		opts Options
	}{
		{"logger", Options{LoggerInit: func(*coreconfig.Config) error { return boom }}},
		{"migrate", Options{
			LoggerInit: noLogger,
			Database:   &coredatabase.Config{},
			Migrations: fstest.MapFS{},
			Migrate:    func(context.Context, coredatabase.Config, fs.FS) error { return boom },
		}},
		{"connect", Options{
			LoggerInit: noLogger,
			Database:   &coredatabase.Config{},
			Connect:    func(context.Context, coredatabase.Config) (*sqlx.DB, error) { return nil, boom },
		}},
	}
	for _, tc := range cases {
		tc.opts.Config = &coreconfig.Config{}
		if _, err := Run(context.Background(), tc.opts); !errors.Is(err, boom) {
			t.Fatalf("%s: err = %v", tc.name, err)
		}
	}
	if _, err := Run(context.Background(), Options{}); err == nil {
		t.Fatal("nil config must fail")
	}
}
