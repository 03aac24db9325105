package db

import (
	"context"
	"database/sql"
)

// Schema bootstrap. Row seeding (routes, buses, schedules) is an
// operational concern and stays outside the service.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS routes (
	route_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	departure_city VARCHAR(100) NOT NULL,
	arrival_city VARCHAR(100) NOT NULL,
	base_price DECIMAL(10,2) NOT NULL,
	duration_minutes INT NOT NULL DEFAULT 0
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS buses (
	bus_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_number VARCHAR(50) NOT NULL,
	capacity INT NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS schedules (
	schedule_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	bus_id BIGINT NOT NULL,
	departure_time DATETIME NOT NULL,
	arrival_time DATETIME NOT NULL,
	available_seats INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
	KEY idx_route (route_id),
	KEY idx_bus (bus_id),
	CONSTRAINT chk_available_seats CHECK (available_seats >= 0)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	// uniq_schedule_seat backs the seat uniqueness invariant at the
	// storage level; with no cancel path a pair is occupied for good.
	`CREATE TABLE IF NOT EXISTS tickets (
	ticket_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	schedule_id BIGINT NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	passenger_email VARCHAR(255) NOT NULL,
	seat_number INT NOT NULL,
	price DECIMAL(10,2) NOT NULL,
	transaction_id VARCHAR(64) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'BOOKED',
	booking_time TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_schedule_seat (schedule_id, seat_number),
	KEY idx_passenger_email (passenger_email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS transactions_log (
	transaction_id VARCHAR(64) PRIMARY KEY,
	ticket_id BIGINT NOT NULL,
	amount DECIMAL(10,2) NOT NULL,
	transaction_type VARCHAR(20) NOT NULL,
	status VARCHAR(20) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_ticket (ticket_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates missing tables. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
