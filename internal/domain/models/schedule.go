package models

import "time"

const (
	ScheduleActive    = "ACTIVE"
	ScheduleCancelled = "CANCELLED"
	ScheduleCompleted = "COMPLETED"
)

type Route struct {
	ID              int64   `json:"route_id"`
	DepartureCity   string  `json:"departure_city"`
	ArrivalCity     string  `json:"arrival_city"`
	BasePrice       float64 `json:"base_price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type Bus struct {
	ID        int64  `json:"bus_id"`
	BusNumber string `json:"bus_number"`
	Capacity  int    `json:"capacity"`
}

type Schedule struct {
	ID             int64     `json:"schedule_id"`
	RouteID        int64     `json:"route_id"`
	BusID          int64     `json:"bus_id"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	AvailableSeats int       `json:"available_seats"`
	Status         string    `json:"status"`
}

// ScheduleListing is the joined row served by the schedule search.
type ScheduleListing struct {
	ScheduleID      int64     `json:"schedule_id"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	AvailableSeats  int       `json:"available_seats"`
	DepartureCity   string    `json:"departure_city"`
	ArrivalCity     string    `json:"arrival_city"`
	BasePrice       float64   `json:"base_price"`
	DurationMinutes int       `json:"duration_minutes"`
	BusNumber       string    `json:"bus_number"`
	Capacity        int       `json:"capacity"`
}
