package views

import "github.com/zulandar/relaydesk/internal/models"

// RouteFormProps feeds BuildRouteForm. Values, when set, are the operator's
// in-progress input and win over Route.
type RouteFormProps struct {
	Workspaces []models.Workspace
	Channels   []models.Channel
	Route      *models.Route
	Values     *models.RouteDraft
	Error      string
	Success    string
}

// RouteForm is the right-panel route editor.
type RouteForm struct {
	Title   string
	RouteID string
	Values  models.RouteDraft

	SourceTeams    []Option
	DestTeams      []Option
	SourceChannels []Option
	DestChannels   []Option
	Directions     []Option

	SourceChannelsDisabled   bool
	DestChannelsDisabled     bool
	SourceChannelPlaceholder string
	DestChannelPlaceholder   string

	Missing        []string
	SubmitDisabled bool
	Error          string
	Success        string
}

// BuildRouteForm renders the route form. Channel options are filtered to the
// chosen workspace; submit stays disabled until every required field is set.
func BuildRouteForm(p RouteFormProps) RouteForm {
	var v models.RouteDraft
	switch {
	case p.Values != nil:
		v = *p.Values
	case p.Route != nil:
		v = p.Route.Draft()
	}
	if v.Direction == "" {
		v.Direction = models.DirectionInbound
	}

	f := RouteForm{
		Title:   "New Route",
		Values:  v,
		Error:   p.Error,
		Success: p.Success,
	}
	if p.Route != nil {
		f.Title = "Edit Route"
		f.RouteID = p.Route.RouteID.String()
	}

	f.SourceTeams = workspaceOptions(p.Workspaces, v.SourceTeamID)
	f.DestTeams = workspaceOptions(p.Workspaces, v.DestTeamID)

	src := FilterChannels(p.Channels, v.SourceTeamID)
	dst := FilterChannels(p.Channels, v.DestTeamID)
	f.SourceChannels = channelOptions(src, v.SourceChannelID)
	f.DestChannels = channelOptions(dst, v.DestChannelID)
	f.SourceChannelsDisabled = v.SourceTeamID == "" || len(src) == 0
	f.DestChannelsDisabled = v.DestTeamID == "" || len(dst) == 0
	f.SourceChannelPlaceholder = channelPlaceholder(v.SourceTeamID)
	f.DestChannelPlaceholder = channelPlaceholder(v.DestTeamID)

	for _, d := range models.Directions {
		f.Directions = append(f.Directions, Option{
			Value:    string(d),
			Label:    d.Label(),
			Selected: d == v.Direction,
		})
	}

	f.Missing = v.Missing()
	f.SubmitDisabled = len(f.Missing) > 0
	return f
}

// MappingFormProps feeds BuildMappingForm.
type MappingFormProps struct {
	Workspaces []models.Workspace
	Mapping    *models.IdentityMapping
	Values     *models.MappingDraft
	Error      string
	Success    string
}

// MappingForm is the right-panel identity-mapping editor.
type MappingForm struct {
	Title          string
	Key            string
	Values         models.MappingDraft
	ClientTeams    []Option
	Missing        []string
	SubmitDisabled bool
	Error          string
	Success        string
}

// BuildMappingForm renders the identity-mapping form.
func BuildMappingForm(p MappingFormProps) MappingForm {
	var v models.MappingDraft
	switch {
	case p.Values != nil:
		v = *p.Values
	case p.Mapping != nil:
		v = p.Mapping.Draft()
	}
	f := MappingForm{
		Title:       "New Identity Mapping",
		Values:      v,
		ClientTeams: workspaceOptions(p.Workspaces, v.ClientTeamID),
		Error:       p.Error,
		Success:     p.Success,
	}
	if p.Mapping != nil {
		f.Title = "Edit Identity Mapping"
		f.Key = p.Mapping.ID()
	}
	f.Missing = v.Missing()
	f.SubmitDisabled = len(f.Missing) > 0
	return f
}

func workspaceOptions(workspaces []models.Workspace, selected string) []Option {
	opts := make([]Option, 0, len(workspaces))
	for _, ws := range workspaces {
		opts = append(opts, Option{Value: ws.TeamID, Label: ws.DisplayName(), Selected: ws.TeamID == selected})
	}
	return opts
}

func channelOptions(channels []models.Channel, selected string) []Option {
	opts := make([]Option, 0, len(channels))
	for _, ch := range channels {
		opts = append(opts, Option{Value: ch.ID, Label: "#" + ch.DisplayName(), Selected: ch.ID == selected})
	}
	return opts
}

func channelPlaceholder(teamID string) string {
	if teamID == "" {
		return "Select a workspace first"
	}
	return "Select channel"
}
