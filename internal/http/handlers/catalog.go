package handlers

import (
	"strings"

	"busticket/internal/http/middleware"
	"busticket/internal/repositories"
	"busticket/internal/services"

	"github.com/gin-gonic/gin"
)

// Routes lists the route catalog.
func Routes(c *gin.Context) {
	svc := services.CatalogService{RequestID: middleware.GetRequestID(c)}
	routes, err := svc.Routes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, routes)
}

// Schedules lists bookable schedules, optionally filtered by city pair.
func Schedules(c *gin.Context) {
	filter := repositories.ScheduleFilter{
		DepartureCity: strings.TrimSpace(c.Query("departure_city")),
		ArrivalCity:   strings.TrimSpace(c.Query("arrival_city")),
	}

	svc := services.CatalogService{RequestID: middleware.GetRequestID(c)}
	schedules, err := svc.Schedules(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, schedules)
}
