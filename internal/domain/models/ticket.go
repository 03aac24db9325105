package models

import "time"

const (
	TicketBooked    = "BOOKED"
	TicketCancelled = "CANCELLED"
)

const (
	TxTypeBooking = "BOOKING"
	TxTypeRefund  = "REFUND"

	TxStatusCompleted = "COMPLETED"
	TxStatusFailed    = "FAILED"
)

type Ticket struct {
	ID             int64     `json:"ticket_id"`
	ScheduleID     int64     `json:"schedule_id"`
	PassengerName  string    `json:"passenger_name"`
	PassengerEmail string    `json:"passenger_email"`
	SeatNumber     int       `json:"seat_number"`
	Price          float64   `json:"price"`
	TransactionID  string    `json:"transaction_id"`
	Status         string    `json:"status"`
	BookingTime    time.Time `json:"booking_time"`
}

// TransactionLogEntry is the audit record written alongside every
// committed booking. Immutable after insert.
type TransactionLogEntry struct {
	TransactionID string  `json:"transaction_id"`
	TicketID      int64   `json:"ticket_id"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"transaction_type"`
	Status        string  `json:"status"`
}

// TicketDetail joins a ticket with its schedule, route and bus for the
// ticket history listing and the e-ticket document.
type TicketDetail struct {
	TicketID       int64     `json:"ticket_id"`
	PassengerName  string    `json:"passenger_name"`
	PassengerEmail string    `json:"passenger_email"`
	SeatNumber     int       `json:"seat_number"`
	Price          float64   `json:"price"`
	BookingTime    time.Time `json:"booking_time"`
	Status         string    `json:"status"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	BusNumber      string    `json:"bus_number"`
}
