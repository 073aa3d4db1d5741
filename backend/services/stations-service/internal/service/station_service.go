package service

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"stationhub/backend/services/stations-service/internal/models"
)

// AuthFailureRecorder observes rejected credentials.
type AuthFailureRecorder interface {
	RecordAuthFailure(reason string)
}

// CredentialVerifier decodes a bearer credential into a user id.
type CredentialVerifier interface {
	VerifyCredential(credential string) (int64, error)
}

// StationService is the entry point for station operations. Every call carries the
// caller's credential explicitly; no session state is kept between calls.
type StationService struct {
	verifier    CredentialVerifier
	identities  *IdentityLoader
	query       *StationQuery
	mutations   *MutationCoordinator
	maxPageSize int
	recorder    AuthFailureRecorder
	logger      *zap.Logger
}

// StationServiceDeps groups collaborators of StationService.
type StationServiceDeps struct {
	Verifier   CredentialVerifier
	Identities *IdentityLoader
	Query      *StationQuery
	Mutations  *MutationCoordinator
	// MaxPageSize clamps the requested limit when positive; zero leaves it unbounded.
	MaxPageSize int
	Recorder    AuthFailureRecorder
	Logger      *zap.Logger
}

// NewStationService builds the service.
func NewStationService(deps StationServiceDeps) *StationService {
	return &StationService{
		verifier:    deps.Verifier,
		identities:  deps.Identities,
		query:       deps.Query,
		mutations:   deps.Mutations,
		maxPageSize: deps.MaxPageSize,
		recorder:    deps.Recorder,
		logger:      deps.Logger,
	}
}

// Authenticate verifies the credential and loads the acting user.
func (s *StationService) Authenticate(ctx context.Context, credential string) (*models.User, error) {
	userID, err := s.verifier.VerifyCredential(credential)
	if err != nil {
		s.authFailed("invalid_credential", err)
		return nil, err
	}
	user, err := s.identities.Load(ctx, userID)
	if err != nil {
		s.authFailed("unknown_identity", err)
		return nil, err
	}
	return user, nil
}

func (s *StationService) authFailed(reason string, err error) {
	s.logger.Debug("authentication failed", zap.String("reason", reason), zap.Error(err))
	if s.recorder != nil {
		s.recorder.RecordAuthFailure(reason)
	}
}

// ListStations returns a filtered page of stations.
func (s *StationService) ListStations(ctx context.Context, credential string, params url.Values) (*models.StationPage, error) {
	if _, err := s.Authenticate(ctx, credential); err != nil {
		return nil, err
	}
	filter, err := CompileFilter(params)
	if err != nil {
		return nil, err
	}
	if s.maxPageSize > 0 && filter.Limit > s.maxPageSize {
		filter.Limit = s.maxPageSize
	}
	return s.query.List(ctx, filter)
}

// GetStation returns one station.
func (s *StationService) GetStation(ctx context.Context, credential, id string) (*models.Station, error) {
	if _, err := s.Authenticate(ctx, credential); err != nil {
		return nil, err
	}
	return s.query.Get(ctx, id)
}

// CreateStation creates a station owned by the caller.
func (s *StationService) CreateStation(ctx context.Context, credential string, input models.StationInput) (*models.Station, error) {
	actor, err := s.Authenticate(ctx, credential)
	if err != nil {
		return nil, err
	}
	return s.mutations.Create(ctx, *actor, input)
}

// UpdateStation applies patch to a station the caller owns, or any station for admins.
func (s *StationService) UpdateStation(ctx context.Context, credential, id string, patch models.StationPatch) (*models.Station, error) {
	actor, err := s.Authenticate(ctx, credential)
	if err != nil {
		return nil, err
	}
	return s.mutations.Update(ctx, *actor, id, patch)
}

// DeleteStation removes a station the caller owns, or any station for admins.
func (s *StationService) DeleteStation(ctx context.Context, credential, id string) error {
	actor, err := s.Authenticate(ctx, credential)
	if err != nil {
		return err
	}
	return s.mutations.Delete(ctx, *actor, id)
}
