package handlers

import (
	"net/http"

	"busticket/internal/http/middleware"
	"busticket/internal/services"

	"github.com/gin-gonic/gin"
)

// BookTicket is the thin HTTP face of the booking transaction; all
// checks and writes happen inside BookingService.BookTicket.
func BookTicket(c *gin.Context) {
	var req services.BookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	ticket, err := svc.BookTicket(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "ticket booked successfully",
		"data": gin.H{
			"ticket_id":       ticket.ID,
			"transaction_id":  ticket.TransactionID,
			"schedule_id":     ticket.ScheduleID,
			"passenger_name":  ticket.PassengerName,
			"passenger_email": ticket.PassengerEmail,
			"seat_number":     ticket.SeatNumber,
			"price":           ticket.Price,
		},
	})
}
