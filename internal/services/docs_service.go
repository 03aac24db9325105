package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"busticket/internal/domain/models"
	"busticket/internal/repositories"
	"busticket/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booked tickets as e-ticket PDFs.
type DocsService struct {
	TicketRepo repositories.TicketRepository
	DB         *sql.DB
	RequestID  string
}

func (s DocsService) GenerateETicket(ctx context.Context, ticketID int64) ([]byte, string, error) {
	repo := s.TicketRepo
	if repo.DB == nil {
		repo = repositories.TicketRepository{DB: s.DB}
	}
	d, err := repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildETicketPDF(d)
}

func buildETicketPDF(d models.TicketDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket No    : TCK-%d", d.TicketID),
		fmt.Sprintf("Passenger    : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Email        : %s", safe(d.PassengerEmail, "-")),
		fmt.Sprintf("Seat         : %d", d.SeatNumber),
		fmt.Sprintf("Route        : %s -> %s", safe(d.DepartureCity, "-"), safe(d.ArrivalCity, "-")),
		fmt.Sprintf("Departure    : %s", d.DepartureTime.Format("2006-01-02 15:04")),
		fmt.Sprintf("Arrival      : %s", d.ArrivalTime.Format("2006-01-02 15:04")),
		fmt.Sprintf("Bus          : %s", safe(d.BusNumber, "-")),
		fmt.Sprintf("Price        : %s", utils.FormatMoney(d.Price)),
		fmt.Sprintf("Status       : %s", safe(d.Status, "-")),
		fmt.Sprintf("Booked At    : %s", d.BookingTime.Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger and one seat. Please present it at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.TicketID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		default:
			out.WriteByte('_')
		}
	}
	if out.Len() == 0 {
		return "ticket"
	}
	return out.String()
}
