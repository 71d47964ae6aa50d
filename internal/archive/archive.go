// Package archive stores completed orders in Postgres.
package archive

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/PetrKevich/bot/core/logger"
	"github.com/PetrKevich/bot/internal/handoff"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema files for golang-migrate.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const insertOrder = `INSERT INTO orders (
	id, created_at, user_id, username, customer_name, category, premises,
	subtotal, discount, total, promo_code, commercial_details,
	phone, address, preferred_date, preferred_at, contact_name, special_requests
) VALUES (
	:id, :created_at, :user_id, :username, :customer_name, :category, :premises,
	:subtotal, :discount, :total, :promo_code, :commercial_details,
	:phone, :address, :preferred_date, :preferred_at, :contact_name, :special_requests
)`

const insertLine = `INSERT INTO order_lines (order_id, position, code, description, quantity, cost, informational)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const selectRecent = `SELECT id, created_at, user_id, username, category, total, promo_code, phone
FROM orders ORDER BY created_at DESC LIMIT $1`

type orderRow struct {
	ID                uuid.UUID       `db:"id"`
	CreatedAt         time.Time       `db:"created_at"`
	UserID            int64           `db:"user_id"`
	Username          string          `db:"username"`
	CustomerName      string          `db:"customer_name"`
	Category          string          `db:"category"`
	Premises          string          `db:"premises"`
	Subtotal          decimal.Decimal `db:"subtotal"`
	Discount          decimal.Decimal `db:"discount"`
	Total             decimal.Decimal `db:"total"`
	PromoCode         string          `db:"promo_code"`
	CommercialDetails string          `db:"commercial_details"`
	Phone             string          `db:"phone"`
	Address           string          `db:"address"`
	PreferredDate     string          `db:"preferred_date"`
	PreferredAt       *time.Time      `db:"preferred_at"`
	ContactName       string          `db:"contact_name"`
	SpecialRequests   string          `db:"special_requests"`
}

// Summary is one row of the recent-orders listing.
type Summary struct {
	ID        uuid.UUID       `db:"id"`
	CreatedAt time.Time       `db:"created_at"`
	UserID    int64           `db:"user_id"`
	Username  string          `db:"username"`
	Category  string          `db:"category"`
	Total     decimal.Decimal `db:"total"`
	PromoCode string          `db:"promo_code"`
	Phone     string          `db:"phone"`
}

// Archive is a handoff.Sink backed by Postgres.
type Archive struct {
	db  *sqlx.DB
	loc *time.Location
}

// New wraps an open database. loc is used to interpret the customer's preferred date; nil means time.Local.
func New(db *sqlx.DB, loc *time.Location) *Archive {
	if loc == nil {
		loc = time.Local
	}
	return &Archive{db: db, loc: loc}
}

// Name implements handoff.Sink.
func (a *Archive) Name() string { return "archive" }

// Deliver stores the order and its lines in one transaction.
func (a *Archive) Deliver(ctx context.Context, p handoff.Payload) (err error) {
	if a == nil || a.db == nil {
		return errors.New("archive: no database")
	}
	start := time.Now()
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.NamedExecContext(ctx, insertOrder, a.row(p)); err != nil {
		return fmt.Errorf("archive: insert order: %w", err)
	}
	for i, l := range p.Lines {
		if _, err = tx.ExecContext(ctx, insertLine,
			p.ID, i+1, l.Code, l.Description, l.Quantity, l.Cost, l.Informational); err != nil {
			return fmt.Errorf("archive: insert line %d: %w", i+1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("archive: commit: %w", err)
	}

	logger.Debug(ctx, logger.CompArchive, "archive.saved",
		slog.String("order_id", p.ID.String()),
		slog.Int("count", len(p.Lines)),
		slog.Duration("took", logger.Took(start)),
	)
	return nil
}

func (a *Archive) row(p handoff.Payload) orderRow {
	r := orderRow{
		ID:                p.ID,
		CreatedAt:         p.CreatedAt,
		UserID:            p.Customer.ID,
		Username:          p.Customer.Username,
		CustomerName:      p.Customer.DisplayName(),
		Category:          string(p.Category),
		Premises:          string(p.Premises),
		Subtotal:          p.Subtotal,
		Discount:          p.Discount,
		Total:             p.Total,
		PromoCode:         p.PromoCode,
		CommercialDetails: p.CommercialDetails,
		Phone:             p.Contact.Phone,
		Address:           p.Contact.Address,
		PreferredDate:     p.Contact.Date,
		ContactName:       p.Contact.Name,
		SpecialRequests:   p.Contact.SpecialRequests,
	}
	if t, ok := p.Contact.PreferredTime(a.loc); ok {
		r.PreferredAt = &t
	}
	return r
}

// Recent lists the latest orders, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []Summary
	if err := a.db.SelectContext(ctx, &out, selectRecent, limit); err != nil {
		return nil, fmt.Errorf("archive: recent: %w", err)
	}
	return out, nil
}
