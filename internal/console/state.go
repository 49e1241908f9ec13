package console

import (
	"fmt"

	"github.com/zulandar/relaydesk/internal/models"
)

// Tab is the active center-panel tab.
type Tab string

const (
	TabWorkspaces Tab = "workspaces"
	TabRoutes     Tab = "routes"
	TabMappings   Tab = "mappings"
)

// Tabs lists the tabs in header order.
var Tabs = []Tab{TabWorkspaces, TabRoutes, TabMappings}

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case TabWorkspaces, TabRoutes, TabMappings:
		return t, nil
	}
	return "", fmt.Errorf("console: unknown tab %q", s)
}

// ToastKind selects the toast color.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification. At most one is visible.
type Toast struct {
	Message string
	Kind    ToastKind
}

// CacheStatus is the state of one workspace's channel cache entry.
type CacheStatus int

const (
	NotRequested CacheStatus = iota
	Loading
	Loaded
	Failed
)

func (s CacheStatus) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "not-requested"
	}
}

// ChannelEntry is one workspace's slot in the channel cache.
type ChannelEntry struct {
	Status   CacheStatus
	Channels []models.Channel
	Err      error
}

// State is a point-in-time copy of everything the console owns. Views render
// from it; mutating it has no effect on the console.
type State struct {
	Workspaces        []models.Workspace
	Routes            []models.Route
	IdentityMappings  []models.IdentityMapping
	Channels          map[string]ChannelEntry
	ChannelOrder      []string
	SelectedWorkspace *models.Workspace
	SelectedChannelID string
	ActiveTab         Tab
	EditingRoute      *models.Route
	EditingMapping    *models.IdentityMapping
	RouteEnabled      map[string]bool
	LoadingCount      int
	Toast             *Toast
	Version           uint64
}

// Loading reports whether the global overlay should be shown.
func (s State) Loading() bool { return s.LoadingCount > 0 }

// ChannelStatus returns the cache status for a workspace.
func (s State) ChannelStatus(teamID string) CacheStatus {
	return s.Channels[teamID].Status
}

// ChannelsFor returns the cached channels of a workspace, or nil.
func (s State) ChannelsFor(teamID string) []models.Channel {
	return s.Channels[teamID].Channels
}

// AllChannels flattens the cache in the order workspaces were first fetched.
func (s State) AllChannels() []models.Channel {
	var all []models.Channel
	for _, id := range s.ChannelOrder {
		all = append(all, s.Channels[id].Channels...)
	}
	return all
}

// RouteEnabledFor returns the local toggle value for a route.
func (s State) RouteEnabledFor(routeID models.ID) bool {
	enabled, ok := s.RouteEnabled[routeID.String()]
	return !ok || enabled
}
