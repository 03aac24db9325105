package services

import (
	"context"
	"testing"

	"busticket/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validRequest() BookingRequest {
	return BookingRequest{
		ScheduleID:     1,
		PassengerName:  "Alice Novak",
		PassengerEmail: "alice@example.com",
		SeatNumber:     5,
	}
}

func snapshotRows(seats int, status string, capacity int, price float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"schedule_id", "available_seats", "status", "capacity", "base_price"}).
		AddRow(int64(1), seats, status, capacity, price)
}

func expectLockedRead(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery("SELECT s.schedule_id, s.available_seats, s.status, b.capacity, r.base_price").
		WithArgs(int64(1)).
		WillReturnRows(rows)
}

func TestBookTicketSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLockedRead(mock, snapshotRows(5, "ACTIVE", 40, 120.50))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tickets`).
		WithArgs(int64(1), int64(5), "BOOKED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(int64(1), "Alice Novak", "alice@example.com", int64(5), 120.50, sqlmock.AnyArg(), "BOOKED").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE schedules").
		WithArgs(int64(1), "ACTIVE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions_log").
		WithArgs(sqlmock.AnyArg(), int64(7), 120.50, "BOOKING", "COMPLETED").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := BookingService{DB: db}
	ticket, err := svc.BookTicket(context.Background(), validRequest())
	require.NoError(t, err)

	require.Equal(t, int64(7), ticket.ID)
	require.Equal(t, int64(1), ticket.ScheduleID)
	require.Equal(t, 5, ticket.SeatNumber)
	require.Equal(t, 120.50, ticket.Price)
	require.Equal(t, "BOOKED", ticket.Status)
	_, err = uuid.Parse(ticket.TransactionID)
	require.NoError(t, err, "transaction id must be a valid uuid")

	require.NoError(t, mock.ExpectationsWereMet())
}

// Invalid input must fail with the same error kind no matter what the
// store holds, and must never reach the database.
func TestBookTicketValidationBeforeStorage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cases := []struct {
		name  string
		mut   func(*BookingRequest)
		field string
	}{
		{"missing schedule", func(r *BookingRequest) { r.ScheduleID = 0 }, "schedule_id"},
		{"empty name", func(r *BookingRequest) { r.PassengerName = "   " }, "passenger_name"},
		{"email without domain", func(r *BookingRequest) { r.PassengerEmail = "alice.example.com" }, "passenger_email"},
		{"seat zero", func(r *BookingRequest) { r.SeatNumber = 0 }, "seat_number"},
		{"seat negative", func(r *BookingRequest) { r.SeatNumber = -3 }, "seat_number"},
	}

	svc := BookingService{DB: db}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mut(&req)

			_, err := svc.BookTicket(context.Background(), req)
			require.True(t, domain.IsValidation(err), "want validation error, got %v", err)

			var verr domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}

	// no Begin, no query, nothing.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketScheduleNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.schedule_id, s.available_seats, s.status, b.capacity, r.base_price").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"schedule_id", "available_seats", "status", "capacity", "base_price"}))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, bookErr := svc.BookTicket(context.Background(), validRequest())
	require.True(t, domain.IsNotFound(bookErr), "want not found, got %v", bookErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketSoldOut(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLockedRead(mock, snapshotRows(0, "ACTIVE", 40, 120.50))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, bookErr := svc.BookTicket(context.Background(), validRequest())
	require.True(t, domain.IsSoldOut(bookErr), "want sold out, got %v", bookErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A cancelled or completed schedule sells nothing even with seats left.
func TestBookTicketScheduleNotActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLockedRead(mock, snapshotRows(12, "CANCELLED", 40, 120.50))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, bookErr := svc.BookTicket(context.Background(), validRequest())
	require.True(t, domain.IsSoldOut(bookErr), "want sold out, got %v", bookErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketSeatBeyondCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLockedRead(mock, snapshotRows(5, "ACTIVE", 10, 120.50))
	mock.ExpectRollback()

	req := validRequest()
	req.SeatNumber = 11

	svc := BookingService{DB: db}
	_, bookErr := svc.BookTicket(context.Background(), req)
	require.True(t, domain.IsValidation(bookErr), "want validation error, got %v", bookErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketSeatTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLockedRead(mock, snapshotRows(5, "ACTIVE", 40, 120.50))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tickets`).
		WithArgs(int64(1), int64(5), "BOOKED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, bookErr := svc.BookTicket(context.Background(), validRequest())
	require.True(t, domain.IsSeatTaken(bookErr), "want seat taken, got %v", bookErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Two transactions can race past the COUNT check under concurrent
// bookings of the same seat; the ledger's unique key then rejects the
// loser, which must surface as SeatTaken with a full rollback.
func TestBookTicketDuplicateInsertLosesRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLockedRead(mock, snapshotRows(5, "ACTIVE", 40, 120.50))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tickets`).
		WithArgs(int64(1), int64(5), "BOOKED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-5' for key 'uniq_schedule_seat'"})
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, bookErr := svc.BookTicket(context.Background(), validRequest())
	require.True(t, domain.IsSeatTaken(bookErr), "want seat taken, got %v", bookErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

// If the guarded decrement touches no row the whole booking aborts:
// no transaction log entry, no commit, ticket insert rolled back.
func TestBookTicketDecrementGuardAborts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLockedRead(mock, snapshotRows(1, "ACTIVE", 40, 120.50))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tickets`).
		WithArgs(int64(1), int64(5), "BOOKED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE schedules").
		WithArgs(int64(1), "ACTIVE").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, bookErr := svc.BookTicket(context.Background(), validRequest())
	require.True(t, domain.IsSoldOut(bookErr), "want sold out, got %v", bookErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTicketCommitFailureIsRetryable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLockedRead(mock, snapshotRows(5, "ACTIVE", 40, 120.50))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tickets`).
		WithArgs(int64(1), int64(5), "BOOKED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE schedules").
		WithArgs(int64(1), "ACTIVE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions_log").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(mysql.ErrInvalidConn)

	svc := BookingService{DB: db}
	_, bookErr := svc.BookTicket(context.Background(), validRequest())
	require.True(t, domain.IsUnavailable(bookErr), "want unavailable, got %v", bookErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Sequential bookings on different seats get strictly increasing ids
// and distinct transaction ids.
func TestBookTicketSequentialIDsIncrease(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for i, insertID := range []int64{7, 8} {
		seat := int64(5 + i)
		mock.ExpectBegin()
		expectLockedRead(mock, snapshotRows(5-i, "ACTIVE", 40, 120.50))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tickets`).
			WithArgs(int64(1), seat, "BOOKED").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("INSERT INTO tickets").
			WillReturnResult(sqlmock.NewResult(insertID, 1))
		mock.ExpectExec("UPDATE schedules").
			WithArgs(int64(1), "ACTIVE").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO transactions_log").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	svc := BookingService{DB: db}

	first := validRequest()
	second := validRequest()
	second.SeatNumber = 6

	t1, err := svc.BookTicket(context.Background(), first)
	require.NoError(t, err)
	t2, err := svc.BookTicket(context.Background(), second)
	require.NoError(t, err)

	require.Greater(t, t2.ID, t1.ID)
	require.NotEqual(t, t1.TransactionID, t2.TransactionID)
	require.NoError(t, mock.ExpectationsWereMet())
}
