package views

import (
	"fmt"

	"github.com/zulandar/relaydesk/internal/models"
)

// ChannelListState selects which body the channel list shows.
type ChannelListState string

const (
	ChannelsNoWorkspace ChannelListState = "no-workspace"
	ChannelsLoading     ChannelListState = "loading"
	ChannelsFailed      ChannelListState = "failed"
	ChannelsEmpty       ChannelListState = "empty"
	ChannelsReady       ChannelListState = "ready"
)

// ChannelItem is one row of the channel list.
type ChannelItem struct {
	ID       string
	Name     string
	Private  bool
	Selected bool
	Members  string
}

// ChannelListProps feeds BuildChannelList.
type ChannelListProps struct {
	Workspace         *models.Workspace
	Channels          []models.Channel
	Loading           bool
	Err               error
	SelectedChannelID string
}

// ChannelList is the center-panel view model on the workspaces tab.
type ChannelList struct {
	State         ChannelListState
	TeamID        string
	WorkspaceName string
	Items         []ChannelItem
	Error         string
}

// BuildChannelList renders the selected workspace's channels.
func BuildChannelList(p ChannelListProps) ChannelList {
	if p.Workspace == nil {
		return ChannelList{State: ChannelsNoWorkspace}
	}
	list := ChannelList{TeamID: p.Workspace.TeamID, WorkspaceName: p.Workspace.DisplayName()}
	switch {
	case p.Loading:
		list.State = ChannelsLoading
		return list
	case p.Err != nil:
		list.State = ChannelsFailed
		list.Error = p.Err.Error()
		return list
	case len(p.Channels) == 0:
		list.State = ChannelsEmpty
		return list
	}
	list.State = ChannelsReady
	for _, ch := range p.Channels {
		list.Items = append(list.Items, ChannelItem{
			ID:       ch.ID,
			Name:     ch.DisplayName(),
			Private:  ch.IsPrivate,
			Selected: ch.ID == p.SelectedChannelID,
			Members:  memberLabel(ch),
		})
	}
	return list
}

func memberLabel(ch models.Channel) string {
	n, ok := ch.Members()
	if !ok {
		return ""
	}
	if n == 1 {
		return "1 member"
	}
	return fmt.Sprintf("%d members", n)
}

// FilterChannels returns the channels belonging to teamID. Untagged channels
// are kept. A blank teamID yields nothing.
func FilterChannels(channels []models.Channel, teamID string) []models.Channel {
	if teamID == "" {
		return nil
	}
	var out []models.Channel
	for _, ch := range channels {
		if ch.TeamID == "" || ch.TeamID == teamID {
			out = append(out, ch)
		}
	}
	return out
}
