package views

import "github.com/zulandar/relaydesk/internal/models"

// RouteGroup is the routes sharing one source workspace, in input order.
type RouteGroup struct {
	SourceTeamID   string
	SourceTeamName string
	Routes         []models.Route
}

// GroupRoutesBySource groups routes by source workspace. Groups appear in
// order of first occurrence and each keeps its routes in input order. The
// group name prefers the route's denormalised name, then names, then the id.
func GroupRoutesBySource(routes []models.Route, names map[string]string) []RouteGroup {
	var groups []RouteGroup
	index := make(map[string]int)
	for _, r := range routes {
		i, ok := index[r.SourceTeamID]
		if !ok {
			name := firstNonEmpty(r.SourceTeamName, names[r.SourceTeamID], r.SourceTeamID)
			groups = append(groups, RouteGroup{SourceTeamID: r.SourceTeamID, SourceTeamName: name})
			i = len(groups) - 1
			index[r.SourceTeamID] = i
		}
		groups[i].Routes = append(groups[i].Routes, r)
	}
	return groups
}

// RouteCard is one route in the list.
type RouteCard struct {
	ID            string
	Name          string
	SourceName    string
	SourceChannel string
	DestName      string
	DestChannel   string
	Arrow         string
	Direction     string
	Created       string
	Enabled       bool
	Editing       bool
}

// RouteCardGroup is a rendered RouteGroup.
type RouteCardGroup struct {
	SourceTeamID   string
	SourceTeamName string
	Cards          []RouteCard
}

// RouteListProps feeds BuildRouteList.
type RouteListProps struct {
	Routes     []models.Route
	Workspaces []models.Workspace
	// Enabled reports the local toggle for a route.
	Enabled   func(models.ID) bool
	EditingID string
}

// RouteList is the center-panel view model on the routes tab.
type RouteList struct {
	Groups []RouteCardGroup
	Empty  bool
}

// BuildRouteList renders routes grouped by source workspace.
func BuildRouteList(p RouteListProps) RouteList {
	names := models.WorkspaceNames(p.Workspaces)
	list := RouteList{Empty: len(p.Routes) == 0}
	for _, g := range GroupRoutesBySource(p.Routes, names) {
		cg := RouteCardGroup{SourceTeamID: g.SourceTeamID, SourceTeamName: g.SourceTeamName}
		for _, r := range g.Routes {
			enabled := r.InitiallyEnabled()
			if p.Enabled != nil {
				enabled = p.Enabled(r.RouteID)
			}
			cg.Cards = append(cg.Cards, RouteCard{
				ID:            r.RouteID.String(),
				Name:          firstNonEmpty(r.Name, "Untitled Route"),
				SourceName:    g.SourceTeamName,
				SourceChannel: r.SourceChannelID,
				DestName:      firstNonEmpty(r.DestTeamName, names[r.DestTeamID], r.DestTeamID),
				DestChannel:   r.DestChannelID,
				Arrow:         r.Direction.Icon(),
				Direction:     string(r.Direction),
				Created:       r.CreatedAt.String(),
				Enabled:       enabled,
				Editing:       p.EditingID != "" && p.EditingID == r.RouteID.String(),
			})
		}
		list.Groups = append(list.Groups, cg)
	}
	return list
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
