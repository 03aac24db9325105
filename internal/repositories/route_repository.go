package repositories

import (
	"context"
	"database/sql"

	intconfig "busticket/internal/config"
	"busticket/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RouteRepository) ListRoutes(ctx context.Context) ([]models.Route, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT route_id, departure_city, arrival_city, base_price, duration_minutes
		FROM routes
		ORDER BY departure_city, arrival_city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.DepartureCity, &rt.ArrivalCity, &rt.BasePrice, &rt.DurationMinutes); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
