package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"stationhub/backend/services/stations-service/internal/models"
)

// ErrStationNotFound indicates that no station row matched the id.
var ErrStationNotFound = errors.New("station not found")

const stationColumns = `id, name, latitude, longitude, address, status, power_output_kw,
	connector_type, price, description, owner_id, created_at, updated_at`

// StationRepository persists charging stations in Postgres.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository returns repository.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner) (*models.Station, error) {
	var (
		s           models.Station
		address     sql.NullString
		description sql.NullString
	)
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Location.Latitude,
		&s.Location.Longitude,
		&address,
		&s.Status,
		&s.PowerOutputKW,
		&s.ConnectorType,
		&s.Price,
		&description,
		&s.OwnerID,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Location.Address = address.String
	s.Description = description.String
	return &s, nil
}

// buildStationWhere renders the filter as a WHERE clause with positional arguments.
// Absent fields add no condition.
func buildStationWhere(filter models.StationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.ConnectorType != "" {
		add("connector_type = $%d", filter.ConnectorType)
	}
	if filter.MinPowerKW != nil {
		add("power_output_kw >= $%d", *filter.MinPowerKW)
	}
	if filter.MaxPowerKW != nil {
		add("power_output_kw <= $%d", *filter.MaxPowerKW)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// FindByID returns the station with the given id.
func (r *StationRepository) FindByID(ctx context.Context, id string) (*models.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM charging_stations WHERE id = $1`
	s, err := scanStation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return s, nil
}

// FindMany returns matching stations newest first, ties broken by id.
func (r *StationRepository) FindMany(ctx context.Context, filter models.StationFilter, skip, limit int) ([]models.Station, error) {
	query, args := buildFindManyQuery(filter, skip, limit)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stations, nil
}

// buildFindManyQuery renders the page query; limit and offset bind after the filter args.
func buildFindManyQuery(filter models.StationFilter, skip, limit int) (string, []any) {
	where, args := buildStationWhere(filter)
	args = append(args, limit, skip)
	query := fmt.Sprintf("SELECT %s FROM charging_stations%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		stationColumns, where, len(args)-1, len(args))
	return query, args
}

// Count returns the number of stations matching the filter, ignoring pagination.
func (r *StationRepository) Count(ctx context.Context, filter models.StationFilter) (int, error) {
	where, args := buildStationWhere(filter)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM charging_stations`+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Insert stores a new station. ID must be set; timestamps are assigned by the database.
func (r *StationRepository) Insert(ctx context.Context, s *models.Station) error {
	const query = `
		INSERT INTO charging_stations (id, name, latitude, longitude, address, status, power_output_kw,
			connector_type, price, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		s.ID,
		s.Name,
		s.Location.Latitude,
		s.Location.Longitude,
		nullString(s.Location.Address),
		s.Status,
		s.PowerOutputKW,
		s.ConnectorType,
		s.Price,
		nullString(s.Description),
		s.OwnerID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// UpdateByID overwrites the mutable columns of a station. owner_id and created_at are
// never written.
func (r *StationRepository) UpdateByID(ctx context.Context, s *models.Station) error {
	const query = `
		UPDATE charging_stations
		SET name = $2,
		    latitude = $3,
		    longitude = $4,
		    address = $5,
		    status = $6,
		    power_output_kw = $7,
		    connector_type = $8,
		    price = $9,
		    description = $10,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING owner_id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		s.ID,
		s.Name,
		s.Location.Latitude,
		s.Location.Longitude,
		nullString(s.Location.Address),
		s.Status,
		s.PowerOutputKW,
		s.ConnectorType,
		s.Price,
		nullString(s.Description),
	).Scan(&s.OwnerID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStationNotFound
	}
	return err
}

// DeleteByID removes a station.
func (r *StationRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM charging_stations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStationNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
