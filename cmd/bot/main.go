package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	corecmd "github.com/PetrKevich/bot/core/cmd"
	"github.com/PetrKevich/bot/internal/app"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.Load(path)
		},
		Bootstrap: func(ctx context.Context, cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return app.Bootstrap(ctx, cfg.(*app.Config))
		},
	})
	if err != nil {
		// Run has already shut the structured logger down, or never started it.
		log.Fatal(err)
	}
}
