package services

import (
	"context"
	"database/sql"
	"fmt"

	"busticket/internal/domain/models"
	"busticket/internal/repositories"
	"busticket/internal/utils"
)

// CatalogService serves the read-only route/schedule browsing path.
// No coordination with bookings: listings may lag a commit.
type CatalogService struct {
	RouteRepo    repositories.RouteRepository
	ScheduleRepo repositories.ScheduleRepository
	DB           *sql.DB
	RequestID    string
}

func (s CatalogService) Routes(ctx context.Context) ([]models.Route, error) {
	return s.routeRepo().ListRoutes(ctx)
}

func (s CatalogService) Schedules(ctx context.Context, filter repositories.ScheduleFilter) ([]models.ScheduleListing, error) {
	out, err := s.scheduleRepo().ListOpen(ctx, filter)
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "catalog", "list_schedules",
		fmt.Sprintf("from=%q to=%q results=%d", filter.DepartureCity, filter.ArrivalCity, len(out)))
	return out, nil
}

func (s CatalogService) routeRepo() repositories.RouteRepository {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepository{DB: s.DB}
}

func (s CatalogService) scheduleRepo() repositories.ScheduleRepository {
	if s.ScheduleRepo.DB != nil {
		return s.ScheduleRepo
	}
	return repositories.ScheduleRepository{DB: s.DB}
}
