package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "busticket/internal/config"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/repositories"
	"busticket/internal/utils"

	"github.com/google/uuid"
)

// BookingService runs the booking as one transaction: lock the
// schedule row, check availability and seat uniqueness, then write
// ticket + decrement + transaction log together. The row lock is held
// from the first read to commit, so concurrent attempts on the same
// schedule serialize and at most one caller per seat can commit.
type BookingService struct {
	ScheduleRepo repositories.ScheduleRepository
	TicketRepo   repositories.TicketRepository
	TxLogRepo    repositories.TransactionLogRepository
	DB           *sql.DB
	RequestID    string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type BookingRequest struct {
	ScheduleID     int64  `json:"schedule_id"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
	SeatNumber     int    `json:"seat_number"`
}

// ValidateBookingRequest covers everything checkable without storage.
// The capacity bound needs the schedule row and is enforced inside the
// transaction, before any write.
func ValidateBookingRequest(req BookingRequest) error {
	if req.ScheduleID <= 0 {
		return domain.ValidationError{Field: "schedule_id", Msg: "must be a positive integer"}
	}
	if strings.TrimSpace(req.PassengerName) == "" {
		return domain.ValidationError{Field: "passenger_name", Msg: "must not be empty"}
	}
	email := strings.TrimSpace(req.PassengerEmail)
	if email == "" || !strings.Contains(email, "@") {
		return domain.ValidationError{Field: "passenger_email", Msg: "must be a valid email address"}
	}
	if req.SeatNumber < 1 {
		return domain.ValidationError{Field: "seat_number", Msg: "must be a positive integer"}
	}
	return nil
}

func (s BookingService) BookTicket(ctx context.Context, req BookingRequest) (models.Ticket, error) {
	if err := ValidateBookingRequest(req); err != nil {
		return models.Ticket{}, err
	}

	db := s.db()
	if db == nil {
		return models.Ticket{}, domain.UnavailableError{Msg: "database not connected"}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return models.Ticket{}, domain.UnavailableError{Msg: "could not start booking transaction", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	snap, err := s.ScheduleRepo.LockForBooking(ctx, tx, req.ScheduleID)
	if err != nil {
		return models.Ticket{}, storeErr(err)
	}
	if req.SeatNumber > snap.Capacity {
		return models.Ticket{}, domain.ValidationError{
			Field: "seat_number",
			Msg:   fmt.Sprintf("exceeds bus capacity of %d", snap.Capacity),
		}
	}
	if snap.Status != models.ScheduleActive || snap.AvailableSeats <= 0 {
		return models.Ticket{}, domain.SoldOutError{ScheduleID: req.ScheduleID}
	}

	taken, err := s.TicketRepo.SeatTaken(ctx, tx, req.ScheduleID, req.SeatNumber)
	if err != nil {
		return models.Ticket{}, storeErr(err)
	}
	if taken {
		return models.Ticket{}, domain.SeatTakenError{ScheduleID: req.ScheduleID, SeatNumber: req.SeatNumber}
	}

	ticket := models.Ticket{
		ScheduleID:     req.ScheduleID,
		PassengerName:  strings.TrimSpace(req.PassengerName),
		PassengerEmail: strings.TrimSpace(req.PassengerEmail),
		SeatNumber:     req.SeatNumber,
		Price:          snap.BasePrice,
		TransactionID:  uuid.NewString(),
		Status:         models.TicketBooked,
	}

	ticketID, err := s.TicketRepo.Insert(ctx, tx, ticket)
	if err != nil {
		return models.Ticket{}, storeErr(err)
	}
	ticket.ID = ticketID

	if err := s.ScheduleRepo.DecrementSeat(ctx, tx, req.ScheduleID); err != nil {
		return models.Ticket{}, storeErr(err)
	}

	if err := s.TxLogRepo.Record(ctx, tx, models.TransactionLogEntry{
		TransactionID: ticket.TransactionID,
		TicketID:      ticketID,
		Amount:        snap.BasePrice,
		Type:          models.TxTypeBooking,
		Status:        models.TxStatusCompleted,
	}); err != nil {
		return models.Ticket{}, storeErr(err)
	}

	if err := tx.Commit(); err != nil {
		return models.Ticket{}, domain.UnavailableError{Msg: "booking commit failed", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "book_ticket",
		fmt.Sprintf("ticket_id=%d schedule_id=%d seat=%d price=%s",
			ticketID, req.ScheduleID, req.SeatNumber, utils.FormatMoney(snap.BasePrice)))

	return ticket, nil
}

// storeErr passes typed domain errors through and wraps everything
// else as a retryable storage failure; nothing has committed when it
// is returned, and driver error text stays out of responses.
func storeErr(err error) error {
	switch {
	case domain.IsValidation(err),
		domain.IsNotFound(err),
		domain.IsSoldOut(err),
		domain.IsSeatTaken(err):
		return err
	default:
		return domain.UnavailableError{Msg: "booking aborted, no changes were saved", Err: err}
	}
}
