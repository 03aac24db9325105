package handlers

import (
	"net/http"
	"strconv"

	"busticket/internal/domain"
	"busticket/internal/http/middleware"
	"busticket/internal/services"

	"github.com/gin-gonic/gin"
)

// UserTickets returns the booking history for a passenger email.
func UserTickets(c *gin.Context) {
	svc := services.TicketService{RequestID: middleware.GetRequestID(c)}
	tickets, err := svc.History(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, tickets)
}

// TicketETicketPDF streams the e-ticket document for a booked ticket.
func TicketETicketPDF(c *gin.Context) {
	ticketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || ticketID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "ticket_id", Msg: "must be a positive integer"})
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateETicket(c.Request.Context(), ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
