package models

import "strings"

// Direction controls which way messages flow along a route.
type Direction string

const (
	DirectionInbound       Direction = "inbound"
	DirectionOutbound      Direction = "outbound"
	DirectionBidirectional Direction = "bidirectional"
)

// Directions lists the valid directions in form order.
var Directions = []Direction{DirectionInbound, DirectionOutbound, DirectionBidirectional}

// ParseDirection validates a direction string. Blank input is not valid.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DirectionInbound, DirectionOutbound, DirectionBidirectional:
		return d, true
	}
	return "", false
}

// Icon returns the arrow shown between source and destination.
func (d Direction) Icon() string {
	switch d {
	case DirectionBidirectional:
		return "↔"
	case DirectionOutbound:
		return "←"
	default:
		return "→"
	}
}

// Label is the human-readable option text.
func (d Direction) Label() string {
	switch d {
	case DirectionOutbound:
		return "Outbound (←)"
	case DirectionBidirectional:
		return "Bidirectional (↔)"
	default:
		return "Inbound (→)"
	}
}

// Route forwards messages between a channel pair in two workspaces.
type Route struct {
	RouteID         ID        `json:"route_id"`
	Name            string    `json:"name,omitempty"`
	SourceTeamID    string    `json:"source_team_id"`
	SourceTeamName  string    `json:"source_team_name,omitempty"`
	SourceChannelID string    `json:"source_channel_id"`
	DestTeamID      string    `json:"dest_team_id"`
	DestTeamName    string    `json:"dest_team_name,omitempty"`
	DestChannelID   string    `json:"dest_channel_id"`
	Direction       Direction `json:"direction"`
	Enabled         *bool     `json:"enabled,omitempty"`
	CreatedAt       Timestamp `json:"created_at"`
}

// InitiallyEnabled reports the seed value for the local enabled toggle:
// anything other than an explicit false counts as enabled.
func (r Route) InitiallyEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Draft converts a route back into a create payload, used to prefill the
// route form when an existing route is opened.
func (r Route) Draft() RouteDraft {
	return RouteDraft{
		SourceTeamID:    r.SourceTeamID,
		SourceChannelID: r.SourceChannelID,
		DestTeamID:      r.DestTeamID,
		DestChannelID:   r.DestChannelID,
		Direction:       r.Direction,
		Name:            r.Name,
	}
}

// RouteDraft is the create-route payload.
type RouteDraft struct {
	SourceTeamID    string    `json:"source_team_id"`
	SourceChannelID string    `json:"source_channel_id"`
	DestTeamID      string    `json:"dest_team_id"`
	DestChannelID   string    `json:"dest_channel_id"`
	Direction       Direction `json:"direction"`
	Name            string    `json:"name"`
}

// Missing returns the names of required fields that are blank. Name is
// optional.
func (d RouteDraft) Missing() []string {
	var missing []string
	check := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, field)
		}
	}
	check("source_team_id", d.SourceTeamID)
	check("source_channel_id", d.SourceChannelID)
	check("dest_team_id", d.DestTeamID)
	check("dest_channel_id", d.DestChannelID)
	if _, ok := ParseDirection(string(d.Direction)); !ok {
		missing = append(missing, "direction")
	}
	return missing
}
