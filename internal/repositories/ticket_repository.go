package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "busticket/internal/config"
	intdb "busticket/internal/db"
	"busticket/internal/domain"
	"busticket/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// mysqlDupEntry is the server error for a UNIQUE KEY violation.
const mysqlDupEntry = 1062

// TicketRepository is the ticket ledger. Ticket ids come from the
// ledger's AUTO_INCREMENT, so allocation is strictly increasing and
// cannot hand the same id to two committing callers.
type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// SeatTaken reports whether a BOOKED ticket already holds the
// (schedule, seat) pair. Run inside the booking transaction so the
// answer stays true until commit.
func (r TicketRepository) SeatTaken(ctx context.Context, q intdb.Querier, scheduleID int64, seatNumber int) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tickets
		WHERE schedule_id = ? AND seat_number = ? AND status = ?`,
		scheduleID, seatNumber, models.TicketBooked).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert appends a ticket and returns its allocated id. A duplicate
// key on uniq_schedule_seat means another transaction won the seat.
func (r TicketRepository) Insert(ctx context.Context, ex intdb.Execer, t models.Ticket) (int64, error) {
	res, err := ex.ExecContext(ctx, `
		INSERT INTO tickets
			(schedule_id, passenger_name, passenger_email, seat_number, price, transaction_id, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ScheduleID, t.PassengerName, t.PassengerEmail, t.SeatNumber, t.Price, t.TransactionID, t.Status)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return 0, domain.SeatTakenError{ScheduleID: t.ScheduleID, SeatNumber: t.SeatNumber}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID returns the joined ticket detail for the e-ticket document.
func (r TicketRepository) GetByID(ctx context.Context, ticketID int64) (models.TicketDetail, error) {
	var d models.TicketDetail
	err := r.db().QueryRowContext(ctx, `
		SELECT
			t.ticket_id, t.passenger_name, t.passenger_email, t.seat_number,
			t.price, t.booking_time, t.status,
			s.departure_time, s.arrival_time,
			r.departure_city, r.arrival_city,
			b.bus_number
		FROM tickets t
		JOIN schedules s ON t.schedule_id = s.schedule_id
		JOIN routes r ON s.route_id = r.route_id
		JOIN buses b ON s.bus_id = b.bus_id
		WHERE t.ticket_id = ?`, ticketID).Scan(
		&d.TicketID, &d.PassengerName, &d.PassengerEmail, &d.SeatNumber,
		&d.Price, &d.BookingTime, &d.Status,
		&d.DepartureTime, &d.ArrivalTime,
		&d.DepartureCity, &d.ArrivalCity,
		&d.BusNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TicketDetail{}, domain.NotFoundError{Resource: "ticket", Err: err}
		}
		return models.TicketDetail{}, err
	}
	return d, nil
}

// ListByEmail returns a passenger's tickets, newest booking first.
func (r TicketRepository) ListByEmail(ctx context.Context, email string) ([]models.TicketDetail, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT
			t.ticket_id, t.passenger_name, t.passenger_email, t.seat_number,
			t.price, t.booking_time, t.status,
			s.departure_time, s.arrival_time,
			r.departure_city, r.arrival_city,
			b.bus_number
		FROM tickets t
		JOIN schedules s ON t.schedule_id = s.schedule_id
		JOIN routes r ON s.route_id = r.route_id
		JOIN buses b ON s.bus_id = b.bus_id
		WHERE t.passenger_email = ?
		ORDER BY t.booking_time DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TicketDetail{}
	for rows.Next() {
		var d models.TicketDetail
		if err := rows.Scan(
			&d.TicketID, &d.PassengerName, &d.PassengerEmail, &d.SeatNumber,
			&d.Price, &d.BookingTime, &d.Status,
			&d.DepartureTime, &d.ArrivalTime,
			&d.DepartureCity, &d.ArrivalCity,
			&d.BusNumber,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
