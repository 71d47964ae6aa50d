// Package app wires the cleaning-order bot: configuration, infrastructure and Telegram routes.
package app

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	coreconfig "github.com/PetrKevich/bot/core/config"
	coredatabase "github.com/PetrKevich/bot/core/database"
)

// ManagerConfig points at the chat that receives completed orders.
type ManagerConfig struct {
	// ChatID is read from MANAGER_CHAT_ID. Zero disables notifications.
	ChatID int64 `yaml:"chat_id" envconfig:"CHAT_ID"`
}

// CompanyConfig holds the contacts shown by /contacts and after an order.
type CompanyConfig struct {
	Address string `yaml:"address" envconfig:"ADDRESS"`
	Phone   string `yaml:"phone" envconfig:"PHONE"`
}

// WindowsConfig configures the window-counting guide.
type WindowsConfig struct {
	ExampleImages []string `yaml:"example_images" envconfig:"EXAMPLE_IMAGES"`
}

// DialogConfig tunes the conversation service.
type DialogConfig struct {
	DeliveryTimeoutSeconds int `yaml:"delivery_timeout_seconds" envconfig:"DELIVERY_TIMEOUT_SECONDS"`
	// Timezone interprets customers' preferred dates in the archive.
	Timezone string `yaml:"timezone" envconfig:"TIMEZONE"`
}

// DatabaseConfig enables the order archive.
type DatabaseConfig struct {
	Enabled             bool `yaml:"enabled" envconfig:"DB_ENABLED"`
	coredatabase.Config `yaml:",inline"`
}

// Config is the full bot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Manager  ManagerConfig  `yaml:"manager"`
	Company  CompanyConfig  `yaml:"company"`
	Windows  WindowsConfig  `yaml:"windows"`
	Dialog   DialogConfig   `yaml:"dialog"`
	Database DatabaseConfig `yaml:"database"`
}

// CoreConfig exposes the shared part of the configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

var defaultWindowImages = []string{
	"https://disk.yandex.ru/i/2YOHFSazb0NfLg",
	"https://disk.yandex.ru/i/CRTYcZ0ZyBTmow",
	"https://disk.yandex.ru/i/bD0nvSTxnrW7Jg",
	"https://disk.yandex.ru/i/JuuMOEG0QTj3xw",
	"https://disk.yandex.ru/i/Cg--s85r7ivGGw",
	"https://disk.yandex.ru/i/3JbC8AXn6gTHKw",
}

const (
	defaultAddress  = "МО, Дмитровский муниципальный округ, п.«Пески»"
	defaultPhone    = "+7(991)600-32-23"
	defaultTimezone = "Europe/Moscow"
)

// Load reads the YAML file at path, overlays the environment and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the core section and fills app defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return err
	}

	cfg.Company.Address = strings.TrimSpace(cfg.Company.Address)
	if cfg.Company.Address == "" {
		cfg.Company.Address = defaultAddress
	}
	cfg.Company.Phone = strings.TrimSpace(cfg.Company.Phone)
	if cfg.Company.Phone == "" {
		cfg.Company.Phone = defaultPhone
	}

	images := cfg.Windows.ExampleImages[:0]
	for _, u := range cfg.Windows.ExampleImages {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, u)
		}
	}
	if len(images) == 0 {
		images = append([]string(nil), defaultWindowImages...)
	}
	cfg.Windows.ExampleImages = images

	if cfg.Dialog.DeliveryTimeoutSeconds < 0 {
		return fmt.Errorf("dialog.delivery_timeout_seconds must be >= 0")
	}
	if cfg.Dialog.DeliveryTimeoutSeconds == 0 {
		cfg.Dialog.DeliveryTimeoutSeconds = 15
	}
	if cfg.Dialog.Timezone = strings.TrimSpace(cfg.Dialog.Timezone); cfg.Dialog.Timezone == "" {
		cfg.Dialog.Timezone = defaultTimezone
	}
	if _, err := time.LoadLocation(cfg.Dialog.Timezone); err != nil {
		return fmt.Errorf("invalid dialog.timezone %q: %w", cfg.Dialog.Timezone, err)
	}

	if cfg.Database.Enabled && strings.TrimSpace(cfg.Database.Name) == "" {
		return fmt.Errorf("database.name is required when database.enabled is true")
	}
	return nil
}

// Location returns the configured time zone, Moscow time if it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Dialog.Timezone)
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}
