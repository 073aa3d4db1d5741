package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stationhub/backend/services/stations-service/internal/models"
	"stationhub/backend/services/stations-service/internal/repository"
)

// Mutation operation names used in logs and metrics.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// MutationRecorder observes successful station mutations.
type MutationRecorder interface {
	RecordStationMutation(op string)
}

// MutationCoordinator runs create, update and delete as lookup, authorize, apply, enrich.
// A failure at any step stops the pipeline before the store is written.
type MutationCoordinator struct {
	store    StationStore
	query    *StationQuery
	recorder MutationRecorder
	logger   *zap.Logger
	newID    func() string
}

// NewMutationCoordinator builds the coordinator. recorder may be nil.
func NewMutationCoordinator(store StationStore, query *StationQuery, recorder MutationRecorder, logger *zap.Logger) *MutationCoordinator {
	return &MutationCoordinator{
		store:    store,
		query:    query,
		recorder: recorder,
		logger:   logger,
		newID:    func() string { return uuid.NewString() },
	}
}

// Create stores a new station owned by actor.
func (m *MutationCoordinator) Create(ctx context.Context, actor models.User, input models.StationInput) (*models.Station, error) {
	station, missing := input.Build()
	station.Normalize()
	if err := validate(&station, missing); err != nil {
		return nil, err
	}

	station.ID = m.newID()
	station.OwnerID = actor.ID

	if err := m.store.Insert(ctx, &station); err != nil {
		return nil, storeUnavailable("insert station", err)
	}
	m.record(OpCreate, actor, station.ID)

	if err := m.query.enrichOne(ctx, &station); err != nil {
		return nil, err
	}
	return &station, nil
}

// Update merges patch into the station identified by id.
func (m *MutationCoordinator) Update(ctx context.Context, actor models.User, id string, patch models.StationPatch) (*models.Station, error) {
	current, err := m.query.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(actor, current); err != nil {
		return nil, err
	}

	updated := patch.Apply(*current)
	updated.Normalize()
	if err := validate(&updated, nil); err != nil {
		return nil, err
	}
	updated.ID = current.ID
	updated.OwnerID = current.OwnerID
	updated.CreatedAt = current.CreatedAt

	if err := m.store.UpdateByID(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			return nil, fmt.Errorf("%w: station %q", ErrNotFound, id)
		}
		return nil, storeUnavailable("update station", err)
	}
	m.record(OpUpdate, actor, updated.ID)

	if err := m.query.enrichOne(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the station identified by id.
func (m *MutationCoordinator) Delete(ctx context.Context, actor models.User, id string) error {
	current, err := m.query.find(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(actor, current); err != nil {
		return err
	}

	if err := m.store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			return fmt.Errorf("%w: station %q", ErrNotFound, id)
		}
		return storeUnavailable("delete station", err)
	}
	m.record(OpDelete, actor, id)
	return nil
}

func (m *MutationCoordinator) record(op string, actor models.User, stationID string) {
	m.logger.Info("station mutated",
		zap.String("op", op),
		zap.String("station_id", stationID),
		zap.Int64("actor_id", actor.ID),
		zap.String("actor_role", actor.Role),
	)
	if m.recorder != nil {
		m.recorder.RecordStationMutation(op)
	}
}

// validate reports missing fields first; range errors for the same field are dropped.
func validate(station *models.Station, missing []models.FieldError) error {
	reported := make(map[string]struct{}, len(missing))
	fieldErrs := make([]models.FieldError, 0, len(missing))
	for _, f := range missing {
		reported[f.Field] = struct{}{}
		fieldErrs = append(fieldErrs, f)
	}
	for _, f := range station.Validate() {
		if _, dup := reported[f.Field]; !dup {
			fieldErrs = append(fieldErrs, f)
		}
	}
	if len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}
	return nil
}
