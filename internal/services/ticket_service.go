package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/repositories"
	"busticket/internal/utils"
)

// TicketService serves ticket history and detail reads.
type TicketService struct {
	TicketRepo repositories.TicketRepository
	DB         *sql.DB
	RequestID  string
}

func (s TicketService) History(ctx context.Context, email string) ([]models.TicketDetail, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ValidationError{Field: "email", Msg: "must be a valid email address"}
	}
	out, err := s.ticketRepo().ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "tickets", "history", fmt.Sprintf("results=%d", len(out)))
	return out, nil
}

func (s TicketService) Get(ctx context.Context, ticketID int64) (models.TicketDetail, error) {
	if ticketID <= 0 {
		return models.TicketDetail{}, domain.ValidationError{Field: "ticket_id", Msg: "must be a positive integer"}
	}
	return s.ticketRepo().GetByID(ctx, ticketID)
}

func (s TicketService) ticketRepo() repositories.TicketRepository {
	if s.TicketRepo.DB != nil {
		return s.TicketRepo
	}
	return repositories.TicketRepository{DB: s.DB}
}
