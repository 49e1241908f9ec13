// Package console owns the operator's view of the routing backend for one
// browser session: the loaded workspaces, routes and identity mappings, the
// per-workspace channel cache, selection and editor state, the loading
// counter and the toast slot. Views read State snapshots; every mutation goes
// through Load, EnsureChannels or Dispatch.
package console

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zulandar/relaydesk/internal/api"
	"github.com/zulandar/relaydesk/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 3 * time.Second

// Backend is the subset of the REST client the console drives.
type Backend interface {
	ListWorkspaces(ctx context.Context) ([]models.Workspace, error)
	ListChannels(ctx context.Context, teamID string) ([]models.Channel, error)
	MarkInternal(ctx context.Context, teamID string) (api.Ack, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
	CreateRoute(ctx context.Context, draft models.RouteDraft) (api.Ack, error)
	DeleteRoute(ctx context.Context, routeID string) (api.Ack, error)
	ListIdentityMappings(ctx context.Context) ([]models.IdentityMapping, error)
	CreateIdentityMapping(ctx context.Context, draft models.MappingDraft) (api.Ack, error)
	DeleteIdentityMapping(ctx context.Context, key string) (api.Ack, error)
}

var _ Backend = (*api.Client)(nil)

// Timer is the handle returned by Options.AfterFunc.
type Timer interface {
	Stop() bool
}

// Options configures a Console.
type Options struct {
	ToastTTL time.Duration
	// AfterFunc schedules toast expiry. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer
}

// Console is the per-session orchestrator. It is safe for concurrent use;
// backend calls are made without holding the lock.
type Console struct {
	backend   Backend
	toastTTL  time.Duration
	afterFunc func(d time.Duration, f func()) Timer

	mu                sync.Mutex
	workspaces        []models.Workspace
	routes            []models.Route
	mappings          []models.IdentityMapping
	channels          map[string]ChannelEntry
	channelOrder      []string
	selectedWorkspace *models.Workspace
	selectedChannelID string
	activeTab         Tab
	editingRoute      *models.Route
	editingMapping    *models.IdentityMapping
	routeEnabled      map[string]bool
	loadingCount      int
	toast             *Toast
	toastGen          uint64
	toastTimer        Timer

	version atomic.Uint64
	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates a Console with empty state on the workspaces tab.
func New(backend Backend, opts Options) *Console {
	if opts.ToastTTL <= 0 {
		opts.ToastTTL = DefaultToastTTL
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	return &Console{
		backend:      backend,
		toastTTL:     opts.ToastTTL,
		afterFunc:    opts.AfterFunc,
		channels:     make(map[string]ChannelEntry),
		routeEnabled: make(map[string]bool),
		activeTab:    TabWorkspaces,
		subs:         make(map[int]chan struct{}),
	}
}

// Snapshot returns a deep copy of the current state.
func (c *Console) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Workspaces:        slices.Clone(c.workspaces),
		Routes:            slices.Clone(c.routes),
		IdentityMappings:  slices.Clone(c.mappings),
		Channels:          make(map[string]ChannelEntry, len(c.channels)),
		ChannelOrder:      slices.Clone(c.channelOrder),
		SelectedChannelID: c.selectedChannelID,
		ActiveTab:         c.activeTab,
		RouteEnabled:      maps.Clone(c.routeEnabled),
		LoadingCount:      c.loadingCount,
		Version:           c.version.Load(),
	}
	for id, e := range c.channels {
		e.Channels = slices.Clone(e.Channels)
		s.Channels[id] = e
	}
	if c.selectedWorkspace != nil {
		ws := *c.selectedWorkspace
		s.SelectedWorkspace = &ws
	}
	if c.editingRoute != nil {
		r := *c.editingRoute
		s.EditingRoute = &r
	}
	if c.editingMapping != nil {
		m := *c.editingMapping
		s.EditingMapping = &m
	}
	if c.toast != nil {
		t := *c.toast
		s.Toast = &t
	}
	return s
}

// Subscribe returns a channel that receives a value after state changes.
// Notifications are coalesced; the receiver should re-read Snapshot.
func (c *Console) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

// Close stops the pending toast timer.
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.toastTimer != nil {
		c.toastTimer.Stop()
		c.toastTimer = nil
	}
}

// notify must be called without c.mu held.
func (c *Console) notify() {
	c.version.Add(1)
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// begin increments the loading counter and returns the matching decrement.
// The returned func is idempotent and never drives the counter below zero.
func (c *Console) begin() func() {
	c.mu.Lock()
	c.loadingCount++
	c.mu.Unlock()
	c.notify()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			if c.loadingCount > 0 {
				c.loadingCount--
			}
			c.mu.Unlock()
			c.notify()
		})
	}
}

// showToast replaces any visible toast. The replaced toast's timer is
// stopped, and the generation check keeps a timer that already fired from
// clearing the newer toast.
func (c *Console) showToast(message string, kind ToastKind) {
	c.mu.Lock()
	c.toastGen++
	gen := c.toastGen
	if c.toastTimer != nil {
		c.toastTimer.Stop()
	}
	c.toast = &Toast{Message: message, Kind: kind}
	c.toastTimer = c.afterFunc(c.toastTTL, func() { c.expireToast(gen) })
	c.mu.Unlock()
	c.notify()
}

func (c *Console) expireToast(gen uint64) {
	c.mu.Lock()
	if c.toastGen != gen || c.toast == nil {
		c.mu.Unlock()
		return
	}
	c.toast = nil
	c.toastTimer = nil
	c.mu.Unlock()
	c.notify()
}

func (c *Console) dismissToast() {
	c.mu.Lock()
	c.toastGen++
	if c.toastTimer != nil {
		c.toastTimer.Stop()
		c.toastTimer = nil
	}
	c.toast = nil
	c.mu.Unlock()
	c.notify()
}

// Load performs the initial fetch of workspaces, routes and identity
// mappings in parallel. Each fetch tracks its own loading slot and toasts its
// own failure; a failure never discards another fetch's result. The returned
// error is the first failure, reported after every fetch has finished.
func (c *Console) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.loadWorkspaces(ctx) })
	g.Go(func() error { return c.loadRoutes(ctx) })
	g.Go(func() error { return c.loadMappings(ctx) })
	return g.Wait()
}

func (c *Console) loadWorkspaces(ctx context.Context) error {
	done := c.begin()
	defer done()

	ws, err := c.backend.ListWorkspaces(ctx)
	if err != nil {
		log.Printf("console: load workspaces: %v", err)
		c.showToast("Failed to load workspaces", ToastError)
		return fmt.Errorf("load workspaces: %w", err)
	}

	c.mu.Lock()
	c.workspaces = ws
	if c.selectedWorkspace != nil {
		if fresh, ok := models.FindWorkspace(ws, c.selectedWorkspace.TeamID); ok {
			c.selectedWorkspace = &fresh
		}
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Console) loadRoutes(ctx context.Context) error {
	done := c.begin()
	defer done()

	routes, err := c.backend.ListRoutes(ctx)
	if err != nil {
		log.Printf("console: load routes: %v", err)
		c.showToast("Failed to load routes", ToastError)
		return fmt.Errorf("load routes: %w", err)
	}

	enabled := make(map[string]bool, len(routes))
	for _, r := range routes {
		enabled[r.RouteID.String()] = r.InitiallyEnabled()
	}

	c.mu.Lock()
	c.routes = routes
	c.routeEnabled = enabled
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Console) loadMappings(ctx context.Context) error {
	done := c.begin()
	defer done()

	mappings, err := c.backend.ListIdentityMappings(ctx)
	if err != nil {
		log.Printf("console: load identity mappings: %v", err)
		c.showToast("Failed to load mappings", ToastError)
		return fmt.Errorf("load identity mappings: %w", err)
	}

	c.mu.Lock()
	c.mappings = mappings
	c.mu.Unlock()
	c.notify()
	return nil
}
