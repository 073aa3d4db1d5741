package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"stationhub/backend/services/stations-service/internal/models"
	"stationhub/backend/services/stations-service/internal/repository"
)

var errStoreDown = errors.New("connection refused")

type memoryStations struct {
	mu       sync.Mutex
	rows     map[string]models.Station
	clock    time.Time
	failWith error
	writes   int
}

func newMemoryStations() *memoryStations {
	return &memoryStations{
		rows:  make(map[string]models.Station),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStations) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func matches(s models.Station, f models.StationFilter) bool {
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.ConnectorType != "" && s.ConnectorType != f.ConnectorType {
		return false
	}
	if f.MinPowerKW != nil && s.PowerOutputKW < *f.MinPowerKW {
		return false
	}
	if f.MaxPowerKW != nil && s.PowerOutputKW > *f.MaxPowerKW {
		return false
	}
	return true
}

func (m *memoryStations) FindByID(_ context.Context, id string) (*models.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrStationNotFound
	}
	return &s, nil
}

func (m *memoryStations) FindMany(_ context.Context, f models.StationFilter, skip, limit int) ([]models.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []models.Station
	for _, s := range m.rows {
		if matches(s, f) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if skip >= len(out) {
		return []models.Station{}, nil
	}
	end := len(out)
	if limit < end-skip {
		end = skip + limit
	}
	return out[skip:end], nil
}

func (m *memoryStations) Count(_ context.Context, f models.StationFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	n := 0
	for _, s := range m.rows {
		if matches(s, f) {
			n++
		}
	}
	return n, nil
}

func (m *memoryStations) Insert(_ context.Context, s *models.Station) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	now := m.tick()
	s.CreatedAt, s.UpdatedAt = now, now
	s.Owner = nil
	m.rows[s.ID] = *s
	m.writes++
	return nil
}

func (m *memoryStations) UpdateByID(_ context.Context, s *models.Station) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	existing, ok := m.rows[s.ID]
	if !ok {
		return repository.ErrStationNotFound
	}
	s.OwnerID = existing.OwnerID
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = m.tick()
	stored := *s
	stored.Owner = nil
	m.rows[s.ID] = stored
	m.writes++
	return nil
}

func (m *memoryStations) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.rows[id]; !ok {
		return repository.ErrStationNotFound
	}
	delete(m.rows, id)
	m.writes++
	return nil
}

type memoryUsers struct {
	mu       sync.Mutex
	byID     map[int64]models.User
	nextID   int64
	failWith     error
	reads        int
	summaryReads int
}

func newMemoryUsers(users ...models.User) *memoryUsers {
	m := &memoryUsers{byID: make(map[int64]models.User), nextID: 100}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memoryUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	m.byID[user.ID] = *user
	return nil
}

func (m *memoryUsers) put(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
}

func (m *memoryUsers) remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

func (m *memoryUsers) GetOwnerSummaries(_ context.Context, ids []int64) (map[int64]models.OwnerSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.summaryReads++
	out := make(map[int64]models.OwnerSummary, len(ids))
	for _, id := range ids {
		if u, ok := m.byID[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

type memoryOwnerCache struct {
	mu      sync.Mutex
	entries map[int64]models.OwnerSummary
	getErr  error
	saveErr error
	saves   int
}

func newMemoryOwnerCache() *memoryOwnerCache {
	return &memoryOwnerCache{entries: make(map[int64]models.OwnerSummary)}
}

func (c *memoryOwnerCache) GetMany(_ context.Context, ids []int64) (map[int64]models.OwnerSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := make(map[int64]models.OwnerSummary, len(ids))
	for _, id := range ids {
		if o, ok := c.entries[id]; ok {
			out[id] = o
		}
	}
	return out, nil
}

func (c *memoryOwnerCache) SaveMany(_ context.Context, owners map[int64]models.OwnerSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves++
	if c.saveErr != nil {
		return c.saveErr
	}
	for id, o := range owners {
		c.entries[id] = o
	}
	return nil
}

type countingRecorder struct {
	authFailures map[string]int
	mutations    map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{authFailures: map[string]int{}, mutations: map[string]int{}}
}

func (r *countingRecorder) RecordAuthFailure(reason string) { r.authFailures[reason]++ }

func (r *countingRecorder) RecordStationMutation(op string) { r.mutations[op]++ }

var (
	owner = models.User{ID: 1, Name: "Olivia Owner", Email: "olivia@example.com", Role: models.RoleStandard}
	other = models.User{ID: 2, Name: "Sam Standard", Email: "sam@example.com", Role: models.RoleStandard}
	admin = models.User{ID: 3, Name: "Ada Admin", Email: "ada@example.com", Role: models.RoleAdmin}
)

type harness struct {
	tokens   *TokenService
	stations *memoryStations
	users    *memoryUsers
	owners   *memoryOwnerCache
	recorder *countingRecorder
	svc      *StationService
}

func newHarness(maxPageSize int) *harness {
	logger := zap.NewNop()
	h := &harness{
		tokens:   NewTokenService("test-secret", time.Hour),
		stations: newMemoryStations(),
		users:    newMemoryUsers(owner, other, admin),
		owners:   newMemoryOwnerCache(),
		recorder: newCountingRecorder(),
	}
	query := NewStationQuery(h.stations, NewCachedOwnerDirectory(h.users, h.owners, logger))
	h.svc = NewStationService(StationServiceDeps{
		Verifier:    h.tokens,
		Identities:  NewIdentityLoader(h.users),
		Query:       query,
		Mutations:   NewMutationCoordinator(h.stations, query, h.recorder, logger),
		MaxPageSize: maxPageSize,
		Recorder:    h.recorder,
		Logger:      logger,
	})
	return h
}

func (h *harness) token(u models.User) string {
	token, err := h.tokens.GenerateToken(u.ID, u.Role)
	if err != nil {
		panic(err)
	}
	return token
}

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func validInput() models.StationInput {
	return models.StationInput{
		Name:          "Harbour Fast Charge",
		Location:      models.LocationInput{Latitude: f64(53.54), Longitude: f64(9.98), Address: str("Hafenstrasse 1")},
		PowerOutputKW: f64(150),
		ConnectorType: models.ConnectorCCS,
		Price:         f64(0.49),
		Description:   "Two bays next to the ferry terminal",
	}
}
