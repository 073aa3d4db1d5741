package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"stationhub/backend/services/stations-service/internal/models"
	"stationhub/backend/services/stations-service/internal/repository"
)

// StationStore is the persistence contract for charging stations.
type StationStore interface {
	FindByID(ctx context.Context, id string) (*models.Station, error)
	// FindMany returns matching stations ordered by creation time descending, ties by id.
	FindMany(ctx context.Context, filter models.StationFilter, skip, limit int) ([]models.Station, error)
	Count(ctx context.Context, filter models.StationFilter) (int, error)
	Insert(ctx context.Context, station *models.Station) error
	UpdateByID(ctx context.Context, station *models.Station) error
	DeleteByID(ctx context.Context, id string) error
}

// OwnerDirectory resolves owner projections for enrichment.
type OwnerDirectory interface {
	GetOwnerSummaries(ctx context.Context, ids []int64) (map[int64]models.OwnerSummary, error)
}

// StationQuery executes read operations against the store.
type StationQuery struct {
	store  StationStore
	owners OwnerDirectory
}

// NewStationQuery builds the executor.
func NewStationQuery(store StationStore, owners OwnerDirectory) *StationQuery {
	return &StationQuery{store: store, owners: owners}
}

// List returns one page of stations matching filter together with the total match count.
func (q *StationQuery) List(ctx context.Context, filter models.StationFilter) (*models.StationPage, error) {
	total, err := q.store.Count(ctx, filter)
	if err != nil {
		return nil, storeUnavailable("count stations", err)
	}

	items := []models.Station{}
	if skip := filter.Skip(); skip < total {
		items, err = q.store.FindMany(ctx, filter, skip, filter.Limit)
		if err != nil {
			return nil, storeUnavailable("list stations", err)
		}
	}

	if err := q.enrich(ctx, items); err != nil {
		return nil, err
	}

	return &models.StationPage{
		Items: items,
		Page:  filter.Page,
		Pages: pageCount(total, filter.Limit),
		Total: total,
		Limit: filter.Limit,
	}, nil
}

// Get returns a single owner-enriched station.
func (q *StationQuery) Get(ctx context.Context, id string) (*models.Station, error) {
	station, err := q.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := q.enrichOne(ctx, station); err != nil {
		return nil, err
	}
	return station, nil
}

func (q *StationQuery) find(ctx context.Context, id string) (*models.Station, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: station %q", ErrNotFound, id)
	}
	station, err := q.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			return nil, fmt.Errorf("%w: station %q", ErrNotFound, id)
		}
		return nil, storeUnavailable("find station", err)
	}
	return station, nil
}

func (q *StationQuery) enrichOne(ctx context.Context, station *models.Station) error {
	one := []models.Station{*station}
	if err := q.enrich(ctx, one); err != nil {
		return err
	}
	station.Owner = one[0].Owner
	return nil
}

// enrich attaches owner projections at read time; they are never stored with the station.
func (q *StationQuery) enrich(ctx context.Context, stations []models.Station) error {
	if len(stations) == 0 || q.owners == nil {
		return nil
	}

	seen := make(map[int64]struct{}, len(stations))
	ids := make([]int64, 0, len(stations))
	for _, s := range stations {
		if _, ok := seen[s.OwnerID]; !ok {
			seen[s.OwnerID] = struct{}{}
			ids = append(ids, s.OwnerID)
		}
	}

	owners, err := q.owners.GetOwnerSummaries(ctx, ids)
	if err != nil {
		return storeUnavailable("load owners", err)
	}
	for i := range stations {
		if owner, ok := owners[stations[i].OwnerID]; ok {
			owner := owner
			stations[i].Owner = &owner
		}
	}
	return nil
}

func pageCount(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
