package repositories

import (
	"context"
	"testing"
	"time"

	"busticket/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListOpenAppliesCityFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(3 * time.Hour)

	mock.ExpectQuery("FROM schedules s").
		WithArgs("ACTIVE", "Zagreb", "Split").
		WillReturnRows(sqlmock.NewRows([]string{
			"schedule_id", "departure_time", "arrival_time", "available_seats",
			"departure_city", "arrival_city", "base_price", "duration_minutes",
			"bus_number", "capacity",
		}).AddRow(int64(3), dep, arr, 12, "Zagreb", "Split", 120.50, 180, "BUS-12", 40))

	repo := ScheduleRepository{DB: db}
	out, err := repo.ListOpen(context.Background(), ScheduleFilter{
		DepartureCity: "Zagreb",
		ArrivalCity:   "Split",
	})
	if err != nil {
		t.Fatalf("ListOpen error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(out))
	}
	if out[0].ScheduleID != 3 || out[0].AvailableSeats != 12 || out[0].BusNumber != "BUS-12" {
		t.Fatalf("unexpected row: %+v", out[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLockForBookingUnknownSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"schedule_id", "available_seats", "status", "capacity", "base_price"}))

	repo := ScheduleRepository{DB: db}
	_, err = repo.LockForBooking(context.Background(), db, 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecrementSeatGuard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// schedule with seats left
	mock.ExpectExec("UPDATE schedules").
		WithArgs(int64(1), "ACTIVE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// schedule with nothing to sell: guard matches no row
	mock.ExpectExec("UPDATE schedules").
		WithArgs(int64(2), "ACTIVE").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ScheduleRepository{DB: db}

	if err := repo.DecrementSeat(context.Background(), db, 1); err != nil {
		t.Fatalf("expected decrement to succeed, got %v", err)
	}
	if err := repo.DecrementSeat(context.Background(), db, 2); !domain.IsSoldOut(err) {
		t.Fatalf("expected sold out, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolvePrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT r.base_price").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"base_price"}).AddRow(99.90))

	repo := ScheduleRepository{DB: db}
	price, err := repo.ResolvePrice(context.Background(), 1)
	if err != nil {
		t.Fatalf("ResolvePrice error: %v", err)
	}
	if price != 99.90 {
		t.Fatalf("expected 99.90, got %v", price)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
