package models

import "strings"

// IdentityMapping associates an internal-workspace user with a user in a
// client workspace.
type IdentityMapping struct {
	Key              string `json:"key"`
	InternalUserID   string `json:"internal_user_id"`
	InternalUsername string `json:"internal_username"`
	ClientTeamID     string `json:"client_team_id"`
	ClientTeamName   string `json:"client_team_name,omitempty"`
	ClientUserID     string `json:"client_user_id"`
	ClientUsername   string `json:"client_username"`
}

// MappingKey derives the mapping key from its two identifying fields.
func MappingKey(internalUserID, clientTeamID string) string {
	return internalUserID + ":" + clientTeamID
}

// ID returns the backend key, deriving it when the backend omitted it.
func (m IdentityMapping) ID() string {
	if m.Key != "" {
		return m.Key
	}
	return MappingKey(m.InternalUserID, m.ClientTeamID)
}

// Draft converts a mapping into a create payload.
func (m IdentityMapping) Draft() MappingDraft {
	return MappingDraft{
		Key:              m.ID(),
		InternalUserID:   m.InternalUserID,
		InternalUsername: m.InternalUsername,
		ClientTeamID:     m.ClientTeamID,
		ClientUserID:     m.ClientUserID,
		ClientUsername:   m.ClientUsername,
	}
}

// MappingDraft is the create-mapping payload.
type MappingDraft struct {
	Key              string `json:"key"`
	InternalUserID   string `json:"internal_user_id"`
	InternalUsername string `json:"internal_username"`
	ClientTeamID     string `json:"client_team_id"`
	ClientUserID     string `json:"client_user_id"`
	ClientUsername   string `json:"client_username"`
}

// WithKey returns a copy whose Key is derived from the current fields.
func (d MappingDraft) WithKey() MappingDraft {
	d.Key = MappingKey(d.InternalUserID, d.ClientTeamID)
	return d
}

// Missing returns the names of required fields that are blank. All five
// user-facing fields are required.
func (d MappingDraft) Missing() []string {
	var missing []string
	for _, f := range []struct{ name, v string }{
		{"internal_user_id", d.InternalUserID},
		{"internal_username", d.InternalUsername},
		{"client_team_id", d.ClientTeamID},
		{"client_user_id", d.ClientUserID},
		{"client_username", d.ClientUsername},
	} {
		if strings.TrimSpace(f.v) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
