package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "busticket/internal/config"
	intdb "busticket/internal/db"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
)

// ScheduleRepository is the inventory store: it owns the mutable
// available_seats counter.
type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

type ScheduleFilter struct {
	DepartureCity string
	ArrivalCity   string
}

// BookingSnapshot carries everything the booking transaction needs from
// a single locked read: availability, sale status, capacity bound and
// the price that will be copied onto the ticket.
type BookingSnapshot struct {
	ScheduleID     int64
	AvailableSeats int
	Status         string
	Capacity       int
	BasePrice      float64
}

// LockForBooking reads the schedule row FOR UPDATE inside the caller's
// transaction. The row lock is what serializes concurrent bookings for
// the same schedule until commit or rollback.
func (r ScheduleRepository) LockForBooking(ctx context.Context, q intdb.Querier, scheduleID int64) (BookingSnapshot, error) {
	var snap BookingSnapshot
	err := q.QueryRowContext(ctx, `
		SELECT s.schedule_id, s.available_seats, s.status, b.capacity, r.base_price
		FROM schedules s
		JOIN routes r ON s.route_id = r.route_id
		JOIN buses b ON s.bus_id = b.bus_id
		WHERE s.schedule_id = ?
		FOR UPDATE`, scheduleID).Scan(
		&snap.ScheduleID,
		&snap.AvailableSeats,
		&snap.Status,
		&snap.Capacity,
		&snap.BasePrice,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookingSnapshot{}, domain.NotFoundError{Resource: "schedule", Err: err}
		}
		return BookingSnapshot{}, err
	}
	return snap, nil
}

// DecrementSeat takes one seat off the schedule. The WHERE guard makes
// it a no-op on empty or closed schedules even if the caller's checks
// somehow passed; zero affected rows aborts the booking.
func (r ScheduleRepository) DecrementSeat(ctx context.Context, ex intdb.Execer, scheduleID int64) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE schedules
		SET available_seats = available_seats - 1
		WHERE schedule_id = ? AND available_seats > 0 AND status = ?`,
		scheduleID, models.ScheduleActive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return domain.SoldOutError{ScheduleID: scheduleID}
	}
	return nil
}

// ResolvePrice returns the route base price for a schedule. Read path
// only; the booking transaction resolves price via LockForBooking.
func (r ScheduleRepository) ResolvePrice(ctx context.Context, scheduleID int64) (float64, error) {
	var price float64
	err := r.db().QueryRowContext(ctx, `
		SELECT r.base_price
		FROM schedules s
		JOIN routes r ON s.route_id = r.route_id
		WHERE s.schedule_id = ?`, scheduleID).Scan(&price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "schedule", Err: err}
		}
		return 0, err
	}
	return price, nil
}

// ListOpen returns ACTIVE schedules with seats left, optionally
// filtered by city pair. Lock-free.
func (r ScheduleRepository) ListOpen(ctx context.Context, filter ScheduleFilter) ([]models.ScheduleListing, error) {
	query := `
		SELECT
			s.schedule_id, s.departure_time, s.arrival_time, s.available_seats,
			r.departure_city, r.arrival_city, r.base_price, r.duration_minutes,
			b.bus_number, b.capacity
		FROM schedules s
		JOIN routes r ON s.route_id = r.route_id
		JOIN buses b ON s.bus_id = b.bus_id
		WHERE s.status = ? AND s.available_seats > 0`
	args := []any{models.ScheduleActive}

	if filter.DepartureCity != "" {
		query += " AND r.departure_city = ?"
		args = append(args, filter.DepartureCity)
	}
	if filter.ArrivalCity != "" {
		query += " AND r.arrival_city = ?"
		args = append(args, filter.ArrivalCity)
	}
	query += " ORDER BY s.departure_time"

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ScheduleListing{}
	for rows.Next() {
		var sl models.ScheduleListing
		if err := rows.Scan(
			&sl.ScheduleID, &sl.DepartureTime, &sl.ArrivalTime, &sl.AvailableSeats,
			&sl.DepartureCity, &sl.ArrivalCity, &sl.BasePrice, &sl.DurationMinutes,
			&sl.BusNumber, &sl.Capacity,
		); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}
