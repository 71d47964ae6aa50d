package archive

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/PetrKevich/bot/internal/handoff"
	"github.com/PetrKevich/bot/internal/order"
	"github.com/PetrKevich/bot/internal/pricing"
)

func newMockArchive(t *testing.T) (*Archive, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		mock.ExpectClose()
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})
	return New(sqlx.NewDb(db, "postgres"), time.UTC), mock
}

func samplePayload() handoff.Payload {
	o := order.New()
	o.SetCategory(order.CategoryDryCleaning, "")
	o.AddDryItem(order.DrySofa)
	o.AddDryItem(order.DryHeadboard)
	o.Sofa = order.Sofa3
	o.PromoCode = "MECHTA"
	o.Contact = order.Contact{Phone: "+79990000000", Address: "Пески", Date: "20.10.2026 10:00", Name: "Анна"}
	q := pricing.NewEngine(nil).Quote(*o)
	return handoff.New(order.Customer{ID: 42, Username: "anna"}, *o, q, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
}

func TestDeliverWritesOrderAndLines(t *testing.T) {
	a, mock := newMockArchive(t)
	p := samplePayload()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	for i, l := range p.Lines {
		mock.ExpectExec("INSERT INTO order_lines").
			WithArgs(p.ID, i+1, l.Code, l.Description, l.Quantity, l.Cost, l.Informational).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := a.Deliver(context.Background(), p); err != nil {
		t.Fatalf("deliver: %v", err)
	}
}

func TestDeliverRollsBackOnFailure(t *testing.T) {
	a, mock := newMockArchive(t)
	p := samplePayload()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_lines").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	if err := a.Deliver(context.Background(), p); err == nil {
		t.Fatal("expected error")
	}
}

func TestRowParsesPreferredTime(t *testing.T) {
	a := New(nil, time.UTC)
	r := a.row(samplePayload())
	want := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	if r.PreferredAt == nil || !r.PreferredAt.Equal(want) {
		t.Fatalf("preferred_at = %v", r.PreferredAt)
	}
	if r.PromoCode != "MECHTA" || !r.Total.Equal(decimal.NewFromInt(5855)) {
		t.Fatalf("row = %+v", r)
	}

	p := samplePayload()
	p.Contact.Date = "в субботу утром"
	if r := a.row(p); r.PreferredAt != nil || r.PreferredDate != "в субботу утром" {
		t.Fatalf("free-text date row = %+v", r)
	}
}

func TestRecent(t *testing.T) {
	a, mock := newMockArchive(t)
	created := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at", "user_id", "username", "category", "total", "promo_code", "phone"}).
		AddRow("6f1c2b44-5d1e-4f4e-9a53-2f4f0c1d9b10", created, 42, "anna", "windows", "3625.00", "", "+7999")
	mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY created_at DESC").WithArgs(10).WillReturnRows(rows)

	got, err := a.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].Username != "anna" || !got[0].Total.Equal(decimal.NewFromInt(3625)) {
		t.Fatalf("rows = %+v", got)
	}
	if got[0].ID.String() != "6f1c2b44-5d1e-4f4e-9a53-2f4f0c1d9b10" {
		t.Fatalf("id = %s", got[0].ID)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	for _, name := range []string{"0001_create_orders.up.sql", "0001_create_orders.down.sql"} {
		if _, err := fs.Stat(Migrations(), name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}
