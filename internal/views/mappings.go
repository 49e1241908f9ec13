package views

import "github.com/zulandar/relaydesk/internal/models"

// MappingRow is one row of the identity-mapping table.
type MappingRow struct {
	Key              string
	InternalUserID   string
	InternalUsername string
	ClientTeamID     string
	ClientTeamName   string
	ClientUserID     string
	ClientUsername   string
	Editing          bool
}

// MappingList is the center-panel view model on the mappings tab.
type MappingList struct {
	Rows  []MappingRow
	Empty bool
}

// BuildMappingList renders identity mappings with client workspace names.
func BuildMappingList(mappings []models.IdentityMapping, workspaces []models.Workspace, editingKey string) MappingList {
	names := models.WorkspaceNames(workspaces)
	list := MappingList{Empty: len(mappings) == 0}
	for _, m := range mappings {
		list.Rows = append(list.Rows, MappingRow{
			Key:              m.ID(),
			InternalUserID:   m.InternalUserID,
			InternalUsername: m.InternalUsername,
			ClientTeamID:     m.ClientTeamID,
			ClientTeamName:   firstNonEmpty(names[m.ClientTeamID], m.ClientTeamName, m.ClientTeamID),
			ClientUserID:     m.ClientUserID,
			ClientUsername:   m.ClientUsername,
			Editing:          editingKey != "" && editingKey == m.ID(),
		})
	}
	return list
}
