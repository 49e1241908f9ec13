package models

// Workspace is a connected Slack workspace (team).
type Workspace struct {
	TeamID      string    `json:"team_id"`
	TeamName    string    `json:"team_name"`
	IsInternal  bool      `json:"is_internal"`
	ConnectedAt Timestamp `json:"connected_at"`
}

// DisplayName returns the team name, falling back to the team id.
func (w Workspace) DisplayName() string {
	if w.TeamName != "" {
		return w.TeamName
	}
	return w.TeamID
}

// HasInternal reports whether any workspace is marked internal.
func HasInternal(workspaces []Workspace) bool {
	for _, ws := range workspaces {
		if ws.IsInternal {
			return true
		}
	}
	return false
}

// FindWorkspace looks up a workspace by team id.
func FindWorkspace(workspaces []Workspace, teamID string) (Workspace, bool) {
	for _, ws := range workspaces {
		if ws.TeamID == teamID {
			return ws, true
		}
	}
	return Workspace{}, false
}

// WorkspaceNames maps team id to display name.
func WorkspaceNames(workspaces []Workspace) map[string]string {
	names := make(map[string]string, len(workspaces))
	for _, ws := range workspaces {
		names[ws.TeamID] = ws.DisplayName()
	}
	return names
}
