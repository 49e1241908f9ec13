package console

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/zulandar/relaydesk/internal/api"
	"github.com/zulandar/relaydesk/internal/models"
)

// MockBackend is an in-memory Backend for tests. It behaves like the real
// routing backend (creates append, deletes remove, mark-internal flips the
// flag), counts calls per method, and can inject failures or hold a method
// until released.
type MockBackend struct {
	mu        sync.Mutex
	workspace []models.Workspace
	channels  map[string][]models.Channel
	routes    []models.Route
	mappings  []models.IdentityMapping
	errs      map[string]error
	gates     map[string]chan struct{}
	calls     map[string]int
	lastRoute models.RouteDraft
	lastMap   models.MappingDraft
	nextID    int
}

var _ Backend = (*MockBackend)(nil)

// NewMockBackend creates an empty MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		channels: make(map[string][]models.Channel),
		errs:     make(map[string]error),
		gates:    make(map[string]chan struct{}),
		calls:    make(map[string]int),
		nextID:   100,
	}
}

// SetWorkspaces replaces the stored workspaces.
func (m *MockBackend) SetWorkspaces(ws ...models.Workspace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workspace = slices.Clone(ws)
}

// SetChannels replaces the stored channels of one workspace.
func (m *MockBackend) SetChannels(teamID string, chs ...models.Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[teamID] = slices.Clone(chs)
}

// SetRoutes replaces the stored routes.
func (m *MockBackend) SetRoutes(routes ...models.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = slices.Clone(routes)
}

// SetMappings replaces the stored identity mappings.
func (m *MockBackend) SetMappings(mappings ...models.IdentityMapping) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mappings = slices.Clone(mappings)
}

// Fail makes every later call to method return err. A nil err clears it.
func (m *MockBackend) Fail(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, method)
		return
	}
	m.errs[method] = err
}

// Hold blocks calls to method until the returned release func runs.
func (m *MockBackend) Hold(method string) (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.gates[method] = gate
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.gates, method)
			m.mu.Unlock()
			close(gate)
		})
	}
}

// Calls returns how many times method was invoked.
func (m *MockBackend) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// LastRouteDraft returns the payload of the most recent CreateRoute.
func (m *MockBackend) LastRouteDraft() models.RouteDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRoute
}

// LastMappingDraft returns the payload of the most recent
// CreateIdentityMapping.
func (m *MockBackend) LastMappingDraft() models.MappingDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMap
}

func (m *MockBackend) enter(ctx context.Context, method string) error {
	m.mu.Lock()
	m.calls[method]++
	gate := m.gates[method]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errs[method]
}

func (m *MockBackend) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	if err := m.enter(ctx, "ListWorkspaces"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.workspace), nil
}

func (m *MockBackend) ListChannels(ctx context.Context, teamID string) ([]models.Channel, error) {
	if err := m.enter(ctx, "ListChannels"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.channels[teamID]), nil
}

func (m *MockBackend) MarkInternal(ctx context.Context, teamID string) (api.Ack, error) {
	if err := m.enter(ctx, "MarkInternal"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.workspace {
		m.workspace[i].IsInternal = m.workspace[i].TeamID == teamID
	}
	return api.Ack(`{"ok":true}`), nil
}

func (m *MockBackend) ListRoutes(ctx context.Context) ([]models.Route, error) {
	if err := m.enter(ctx, "ListRoutes"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.routes), nil
}

func (m *MockBackend) CreateRoute(ctx context.Context, draft models.RouteDraft) (api.Ack, error) {
	if err := m.enter(ctx, "CreateRoute"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRoute = draft
	m.nextID++
	m.routes = append(m.routes, models.Route{
		RouteID:         models.ID(strconv.Itoa(m.nextID)),
		Name:            draft.Name,
		SourceTeamID:    draft.SourceTeamID,
		SourceChannelID: draft.SourceChannelID,
		DestTeamID:      draft.DestTeamID,
		DestChannelID:   draft.DestChannelID,
		Direction:       draft.Direction,
	})
	return api.Ack(`{"route_id":` + strconv.Itoa(m.nextID) + `}`), nil
}

func (m *MockBackend) DeleteRoute(ctx context.Context, routeID string) (api.Ack, error) {
	if err := m.enter(ctx, "DeleteRoute"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = slices.DeleteFunc(m.routes, func(r models.Route) bool { return r.RouteID.String() == routeID })
	return nil, nil
}

func (m *MockBackend) ListIdentityMappings(ctx context.Context) ([]models.IdentityMapping, error) {
	if err := m.enter(ctx, "ListIdentityMappings"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.mappings), nil
}

func (m *MockBackend) CreateIdentityMapping(ctx context.Context, draft models.MappingDraft) (api.Ack, error) {
	if err := m.enter(ctx, "CreateIdentityMapping"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastMap = draft
	mapping := models.IdentityMapping{
		Key:              draft.Key,
		InternalUserID:   draft.InternalUserID,
		InternalUsername: draft.InternalUsername,
		ClientTeamID:     draft.ClientTeamID,
		ClientUserID:     draft.ClientUserID,
		ClientUsername:   draft.ClientUsername,
	}
	for i := range m.mappings {
		if m.mappings[i].ID() == mapping.ID() {
			m.mappings[i] = mapping
			return nil, nil
		}
	}
	m.mappings = append(m.mappings, mapping)
	return nil, nil
}

func (m *MockBackend) DeleteIdentityMapping(ctx context.Context, key string) (api.Ack, error) {
	if err := m.enter(ctx, "DeleteIdentityMapping"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mappings = slices.DeleteFunc(m.mappings, func(mp models.IdentityMapping) bool { return mp.ID() == key })
	return nil, nil
}
