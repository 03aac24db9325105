package repositories

import (
	"context"
	"database/sql"

	intconfig "busticket/internal/config"
	intdb "busticket/internal/db"
	"busticket/internal/domain/models"
)

// TransactionLogRepository is the append-only audit trail. The core
// never updates or deletes entries.
type TransactionLogRepository struct {
	DB *sql.DB
}

func (r TransactionLogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TransactionLogRepository) Record(ctx context.Context, ex intdb.Execer, e models.TransactionLogEntry) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO transactions_log
			(transaction_id, ticket_id, amount, transaction_type, status)
		VALUES (?, ?, ?, ?, ?)`,
		e.TransactionID, e.TicketID, e.Amount, e.Type, e.Status)
	return err
}

// ListByTicket exists for the audit read path; bookings never call it.
func (r TransactionLogRepository) ListByTicket(ctx context.Context, ticketID int64) ([]models.TransactionLogEntry, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT transaction_id, ticket_id, amount, transaction_type, status
		FROM transactions_log
		WHERE ticket_id = ?
		ORDER BY created_at`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TransactionLogEntry{}
	for rows.Next() {
		var e models.TransactionLogEntry
		if err := rows.Scan(&e.TransactionID, &e.TicketID, &e.Amount, &e.Type, &e.Status); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
