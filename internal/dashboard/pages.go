package dashboard

import (
	"github.com/zulandar/relaydesk/internal/console"
	"github.com/zulandar/relaydesk/internal/models"
	"github.com/zulandar/relaydesk/internal/oauth"
	"github.com/zulandar/relaydesk/internal/views"
)

// pageData is what layout.html renders. Page selects the body template.
type pageData struct {
	Page      string
	Title     string
	Dashboard *dashboardPage
	Callback  *oauth.Callback
	Confirm   *views.Confirm
	Message   string
}

// dashboardPage is the three-panel console view.
type dashboardPage struct {
	Tabs      []views.TabLink
	ActiveTab string
	Loading   bool
	Toast     *console.Toast
	Version   uint64

	Workspaces  views.WorkspaceList
	Channels    views.ChannelList
	Routes      views.RouteList
	Mappings    views.MappingList
	RouteForm   views.RouteForm
	MappingForm views.MappingForm
}

// formState carries operator input and messages into a re-rendered form.
type formState struct {
	route        *models.RouteDraft
	routeError   string
	routeSuccess string

	mapping        *models.MappingDraft
	mappingError   string
	mappingSuccess string
}

// buildDashboard assembles every panel from one snapshot.
func buildDashboard(s console.State, fs formState) *dashboardPage {
	p := &dashboardPage{
		Tabs:      views.Header(string(s.ActiveTab)),
		ActiveTab: string(s.ActiveTab),
		Loading:   s.Loading(),
		Toast:     s.Toast,
		Version:   s.Version,
	}

	p.Workspaces = views.BuildWorkspaceList(s.Workspaces, s.SelectedWorkspace)

	chProps := views.ChannelListProps{
		Workspace:         s.SelectedWorkspace,
		SelectedChannelID: s.SelectedChannelID,
	}
	if ws := s.SelectedWorkspace; ws != nil {
		entry := s.Channels[ws.TeamID]
		chProps.Channels = entry.Channels
		chProps.Loading = entry.Status == console.Loading
		chProps.Err = entry.Err
	}
	p.Channels = views.BuildChannelList(chProps)

	var editingRouteID string
	if s.EditingRoute != nil {
		editingRouteID = s.EditingRoute.RouteID.String()
	}
	p.Routes = views.BuildRouteList(views.RouteListProps{
		Routes:     s.Routes,
		Workspaces: s.Workspaces,
		Enabled:    s.RouteEnabledFor,
		EditingID:  editingRouteID,
	})

	var editingKey string
	if s.EditingMapping != nil {
		editingKey = s.EditingMapping.ID()
	}
	p.Mappings = views.BuildMappingList(s.IdentityMappings, s.Workspaces, editingKey)

	p.RouteForm = views.BuildRouteForm(views.RouteFormProps{
		Workspaces: s.Workspaces,
		Channels:   s.AllChannels(),
		Route:      s.EditingRoute,
		Values:     fs.route,
		Error:      fs.routeError,
		Success:    fs.routeSuccess,
	})
	p.MappingForm = views.BuildMappingForm(views.MappingFormProps{
		Workspaces: s.Workspaces,
		Mapping:    s.EditingMapping,
		Values:     fs.mapping,
		Error:      fs.mappingError,
		Success:    fs.mappingSuccess,
	})
	return p
}
