package console

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/zulandar/relaydesk/internal/models"
	"golang.org/x/sync/errgroup"
)

// Intent is a user action emitted by a view and handled by Dispatch.
type Intent interface {
	intent()
}

type (
	// SelectWorkspace focuses a workspace and loads its channels.
	SelectWorkspace struct{ TeamID string }
	// SelectChannel highlights a channel of the selected workspace.
	SelectChannel struct{ ChannelID string }
	// SwitchTab changes the center panel.
	SwitchTab struct{ Tab Tab }
	// MarkInternal designates the internal workspace.
	MarkInternal struct{ TeamID string }

	// NewRoute opens an empty route form.
	NewRoute struct{}
	// EditRoute opens an existing route in the form.
	EditRoute struct{ RouteID string }
	// CancelRouteEdit closes the route editor.
	CancelRouteEdit struct{}
	// SaveRoute creates a route.
	SaveRoute struct{ Draft models.RouteDraft }
	// DeleteRoute removes a route.
	DeleteRoute struct{ RouteID string }
	// ToggleRoute flips a route's local enabled flag. It is display state
	// only and is never sent to the backend.
	ToggleRoute struct{ RouteID string }

	// NewMapping opens an empty identity-mapping form.
	NewMapping struct{}
	// EditMapping opens an existing mapping in the form.
	EditMapping struct{ Key string }
	// CancelMappingEdit closes the mapping editor.
	CancelMappingEdit struct{}
	// SaveMapping creates an identity mapping.
	SaveMapping struct{ Draft models.MappingDraft }
	// DeleteMapping removes an identity mapping.
	DeleteMapping struct{ Key string }

	// Refresh reloads workspaces and routes, e.g. after a workspace connects.
	Refresh struct{}
	// DismissToast hides the visible toast early.
	DismissToast struct{}
)

func (SelectWorkspace) intent()   {}
func (SelectChannel) intent()     {}
func (SwitchTab) intent()         {}
func (MarkInternal) intent()      {}
func (NewRoute) intent()          {}
func (EditRoute) intent()         {}
func (CancelRouteEdit) intent()   {}
func (SaveRoute) intent()         {}
func (DeleteRoute) intent()       {}
func (ToggleRoute) intent()       {}
func (NewMapping) intent()        {}
func (EditMapping) intent()       {}
func (CancelMappingEdit) intent() {}
func (SaveMapping) intent()       {}
func (DeleteMapping) intent()     {}
func (Refresh) intent()           {}
func (DismissToast) intent()      {}

// Dispatch handles one intent. Saves and Refresh report backend failures to
// the caller in addition to the error toast; delete and mark-internal
// failures surface as toasts only.
func (c *Console) Dispatch(ctx context.Context, in Intent) error {
	switch in := in.(type) {
	case SelectWorkspace:
		return c.selectWorkspace(ctx, in.TeamID)
	case SelectChannel:
		c.mutate(func() { c.selectedChannelID = in.ChannelID })
		return nil
	case SwitchTab:
		if _, err := ParseTab(string(in.Tab)); err != nil {
			return err
		}
		c.mutate(func() { c.activeTab = in.Tab })
		return nil
	case MarkInternal:
		c.markInternal(ctx, in.TeamID)
		return nil
	case NewRoute:
		c.mutate(func() {
			c.editingRoute = nil
			c.activeTab = TabRoutes
		})
		return nil
	case EditRoute:
		return c.editRoute(ctx, in.RouteID)
	case CancelRouteEdit:
		c.mutate(func() { c.editingRoute = nil })
		return nil
	case SaveRoute:
		return c.saveRoute(ctx, in.Draft)
	case DeleteRoute:
		c.deleteRoute(ctx, in.RouteID)
		return nil
	case ToggleRoute:
		return c.toggleRoute(in.RouteID)
	case NewMapping:
		c.mutate(func() {
			c.editingMapping = nil
			c.activeTab = TabMappings
		})
		return nil
	case EditMapping:
		return c.editMapping(in.Key)
	case CancelMappingEdit:
		c.mutate(func() { c.editingMapping = nil })
		return nil
	case SaveMapping:
		return c.saveMapping(ctx, in.Draft)
	case DeleteMapping:
		c.deleteMapping(ctx, in.Key)
		return nil
	case Refresh:
		var g errgroup.Group
		g.Go(func() error { return c.loadWorkspaces(ctx) })
		g.Go(func() error { return c.loadRoutes(ctx) })
		return g.Wait()
	case DismissToast:
		c.dismissToast()
		return nil
	default:
		return fmt.Errorf("console: unhandled intent %T", in)
	}
}

func (c *Console) mutate(f func()) {
	c.mu.Lock()
	f()
	c.mu.Unlock()
	c.notify()
}

func (c *Console) selectWorkspace(ctx context.Context, teamID string) error {
	c.mu.Lock()
	ws, ok := models.FindWorkspace(c.workspaces, teamID)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("workspace %q: %w", teamID, ErrNotFound)
	}
	c.selectedWorkspace = &ws
	c.selectedChannelID = ""
	c.activeTab = TabWorkspaces
	c.mu.Unlock()
	c.notify()

	c.EnsureChannels(ctx, teamID)
	return nil
}

func (c *Console) markInternal(ctx context.Context, teamID string) {
	c.mu.Lock()
	taken := models.HasInternal(c.workspaces)
	c.mu.Unlock()
	if taken {
		c.showToast("An internal workspace is already set", ToastError)
		return
	}

	done := c.begin()
	defer done()

	if _, err := c.backend.MarkInternal(ctx, teamID); err != nil {
		log.Printf("console: mark internal %s: %v", teamID, err)
		c.showToast("Failed to mark internal", ToastError)
		return
	}
	c.loadWorkspaces(ctx)
	c.showToast("Workspace marked as internal", ToastSuccess)
}

func (c *Console) editRoute(ctx context.Context, routeID string) error {
	c.mu.Lock()
	var found *models.Route
	for _, r := range c.routes {
		if r.RouteID.String() == routeID {
			found = &r
			break
		}
	}
	if found == nil {
		c.mu.Unlock()
		return fmt.Errorf("route %q: %w", routeID, ErrNotFound)
	}
	c.editingRoute = found
	c.activeTab = TabRoutes
	c.mu.Unlock()
	c.notify()

	// The form's channel dropdowns need both ends cached. Failures are toasted
	// by EnsureChannels and leave the editor open.
	var wg sync.WaitGroup
	wg.Go(func() { c.EnsureChannels(ctx, found.SourceTeamID) })
	wg.Go(func() { c.EnsureChannels(ctx, found.DestTeamID) })
	wg.Wait()
	return nil
}

func (c *Console) saveRoute(ctx context.Context, draft models.RouteDraft) error {
	if missing := draft.Missing(); len(missing) > 0 {
		return &ValidationError{Entity: "route", Missing: missing}
	}

	done := c.begin()
	defer done()

	if _, err := c.backend.CreateRoute(ctx, draft); err != nil {
		log.Printf("console: save route: %v", err)
		c.showToast("Failed to save route", ToastError)
		return err
	}
	c.loadRoutes(ctx)
	c.mutate(func() { c.editingRoute = nil })
	c.showToast("Route saved", ToastSuccess)
	return nil
}

func (c *Console) deleteRoute(ctx context.Context, routeID string) {
	done := c.begin()
	defer done()

	if _, err := c.backend.DeleteRoute(ctx, routeID); err != nil {
		log.Printf("console: delete route %s: %v", routeID, err)
		c.showToast("Failed to delete route", ToastError)
		return
	}
	c.loadRoutes(ctx)
	c.showToast("Route deleted", ToastSuccess)
	c.mutate(func() {
		if c.editingRoute != nil && c.editingRoute.RouteID.String() == routeID {
			c.editingRoute = nil
		}
	})
}

func (c *Console) toggleRoute(routeID string) error {
	c.mu.Lock()
	if _, ok := c.routeEnabled[routeID]; !ok {
		c.mu.Unlock()
		return fmt.Errorf("route %q: %w", routeID, ErrNotFound)
	}
	c.routeEnabled[routeID] = !c.routeEnabled[routeID]
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Console) editMapping(key string) error {
	c.mu.Lock()
	var found *models.IdentityMapping
	for _, m := range c.mappings {
		if m.ID() == key {
			found = &m
			break
		}
	}
	if found == nil {
		c.mu.Unlock()
		return fmt.Errorf("identity mapping %q: %w", key, ErrNotFound)
	}
	c.editingMapping = found
	c.activeTab = TabMappings
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Console) saveMapping(ctx context.Context, draft models.MappingDraft) error {
	if missing := draft.Missing(); len(missing) > 0 {
		return &ValidationError{Entity: "identity mapping", Missing: missing}
	}
	draft = draft.WithKey()

	done := c.begin()
	defer done()

	if _, err := c.backend.CreateIdentityMapping(ctx, draft); err != nil {
		log.Printf("console: save identity mapping: %v", err)
		c.showToast("Failed to save mapping", ToastError)
		return err
	}
	c.loadMappings(ctx)
	c.mutate(func() { c.editingMapping = nil })
	c.showToast("Mapping saved", ToastSuccess)
	return nil
}

func (c *Console) deleteMapping(ctx context.Context, key string) {
	done := c.begin()
	defer done()

	if _, err := c.backend.DeleteIdentityMapping(ctx, key); err != nil {
		log.Printf("console: delete identity mapping %s: %v", key, err)
		c.showToast("Failed to delete mapping", ToastError)
		return
	}
	c.loadMappings(ctx)
	c.showToast("Mapping deleted", ToastSuccess)
	c.mutate(func() {
		if c.editingMapping != nil && c.editingMapping.ID() == key {
			c.editingMapping = nil
		}
	})
}
