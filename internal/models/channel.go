package models

import (
	"encoding/json"

	slackapi "github.com/slack-go/slack"
)

// Channel is a conversation within a workspace. TeamID is set by the console
// when the channel is cached and is not part of the backend payload.
type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsPrivate   bool   `json:"is_private"`
	MemberCount *int   `json:"member_count,omitempty"`
	TeamID      string `json:"team_id,omitempty"`
}

// wireChannel is a Slack conversation object as relayed by the backend. The
// backend has shipped the member count under three different names.
type wireChannel struct {
	slackapi.Channel
	ChannelID    string `json:"channel_id"`
	NumMembers   *int   `json:"num_members"`
	MemberCount  *int   `json:"member_count"`
	MembersCount *int   `json:"members_count"`
}

// UnmarshalJSON decodes a Slack conversation object.
func (c *Channel) UnmarshalJSON(b []byte) error {
	var w wireChannel
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	id := w.ID
	if id == "" {
		id = w.ChannelID
	}
	*c = Channel{
		ID:        id,
		Name:      w.Name,
		IsPrivate: w.IsPrivate,
	}
	for _, n := range []*int{w.NumMembers, w.MemberCount, w.MembersCount} {
		if n != nil {
			v := *n
			c.MemberCount = &v
			break
		}
	}
	return nil
}

// DisplayName returns the channel name, falling back to its id.
func (c Channel) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Members returns the member count and whether it is known.
func (c Channel) Members() (int, bool) {
	if c.MemberCount == nil {
		return 0, false
	}
	return *c.MemberCount, true
}
