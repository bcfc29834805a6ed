// Package pgstore provides a PostgreSQL implementation of facilities.Store.
package pgstore

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/gabay/internal/assistant"
	"github.com/linnemanlabs/gabay/internal/facilities"
)

var tracer = otel.Tracer("github.com/linnemanlabs/gabay/internal/facilities/pgstore")

//go:embed schema.sql
var schema string

// Store searches facilities in PostgreSQL. Distance ordering is computed
// with a haversine expression in SQL.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema and returns a ready Store.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

const haversineExpr = `2 * 6371000 * asin(sqrt(
	power(sin(radians((latitude - $1) / 2)), 2) +
	cos(radians($1)) * cos(radians(latitude)) *
	power(sin(radians((longitude - $2) / 2)), 2)))`

// Search implements facilities.Store.
func (s *Store) Search(ctx context.Context, q facilities.Query) ([]assistant.FacilityCard, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Search", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
		attribute.String("gabay.facility.type", q.Type),
	))
	defer span.End()

	query, args := buildSearch(q)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query facilities: %w", err)
	}
	defer rows.Close()

	var cards []assistant.FacilityCard
	for rows.Next() {
		var (
			c        assistant.FacilityCard
			phone    *string
			hours    *string
			lat, lng *float64
			dist     *float64
			address  string
			barangay string
			city     string
		)
		if err := rows.Scan(&c.FacilityID, &c.Name, &c.FacilityType, &address, &barangay,
			&city, &phone, &hours, &c.Services, &lat, &lng, &dist); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("scan facility: %w", err)
		}

		c.CardType = assistant.CardFacility
		c.Address = joinAddress(address, barangay, city)
		if phone != nil {
			c.Phone = *phone
		}
		if hours != nil {
			c.Hours = *hours
		}
		if lat != nil {
			c.Lat = *lat
		}
		if lng != nil {
			c.Lng = *lng
		}
		if dist != nil {
			c.DistanceMeters = *dist
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("iterate facilities: %w", err)
	}

	span.SetAttributes(attribute.Int("gabay.facility.count", len(cards)))
	return cards, nil
}

// buildSearch assembles the SQL and positional args for a Query. Geo
// searches select from a subquery so the distance expression can be
// filtered and ordered by name.
func buildSearch(raw facilities.Query) (string, []any) {
	q := raw.Normalized()

	var (
		where []string
		args  []any
	)

	if q.HasCoords {
		args = append(args, q.NearLat, q.NearLng)
		base := `SELECT id, name, type, address, barangay, city, phone, hours, services,
			latitude, longitude, dist
		FROM (
			SELECT *, ` + haversineExpr + ` AS dist
			FROM facilities
			WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		) f`

		args = append(args, float64(q.RadiusMeters))
		where = append(where, fmt.Sprintf("dist <= $%d", len(args)))
		if q.Type != "" {
			args = append(args, q.Type)
			where = append(where, fmt.Sprintf("type = $%d", len(args)))
		}

		args = append(args, q.Limit)
		return base + " WHERE " + strings.Join(where, " AND ") +
			fmt.Sprintf(" ORDER BY dist LIMIT $%d", len(args)), args
	}

	base := `SELECT id, name, type, address, barangay, city, phone, hours, services,
		latitude, longitude, NULL::double precision AS dist
	FROM facilities`

	if q.Barangay != "" {
		args = append(args, "%"+q.Barangay+"%")
		where = append(where, fmt.Sprintf("barangay ILIKE $%d", len(args)))
	}
	if q.Type != "" {
		args = append(args, q.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}

	sql := base
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, q.Limit)
	return sql + fmt.Sprintf(" ORDER BY name LIMIT $%d", len(args)), args
}

func joinAddress(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
