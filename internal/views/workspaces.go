package views

import "github.com/zulandar/relaydesk/internal/models"

// WorkspaceItem is one row of the workspace list.
type WorkspaceItem struct {
	TeamID      string
	Name        string
	Internal    bool
	Selected    bool
	ConnectedAt string
	// ShowMarkInternal is false for the internal workspace itself.
	ShowMarkInternal bool
	// CanMarkInternal is false once any workspace is internal.
	CanMarkInternal bool
}

// WorkspaceList is the left-panel view model.
type WorkspaceList struct {
	Items       []WorkspaceItem
	Empty       bool
	HasInternal bool
	Connect     ConnectButton
}

// BuildWorkspaceList renders the workspace list. Marking a workspace internal
// is disabled for every workspace while one is already internal.
func BuildWorkspaceList(workspaces []models.Workspace, selected *models.Workspace) WorkspaceList {
	hasInternal := models.HasInternal(workspaces)
	list := WorkspaceList{
		Empty:       len(workspaces) == 0,
		HasInternal: hasInternal,
		Connect:     NewConnectButton(),
	}
	for _, ws := range workspaces {
		list.Items = append(list.Items, WorkspaceItem{
			TeamID:           ws.TeamID,
			Name:             ws.DisplayName(),
			Internal:         ws.IsInternal,
			Selected:         selected != nil && selected.TeamID == ws.TeamID,
			ConnectedAt:      ws.ConnectedAt.String(),
			ShowMarkInternal: !ws.IsInternal,
			CanMarkInternal:  !hasInternal,
		})
	}
	return list
}
