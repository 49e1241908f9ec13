// Package views turns console state into render-ready view models. Every
// builder is a pure function of its props; user actions are expressed as
// form posts that the dashboard translates into console intents.
package views

// Option is one entry of a select, radio group or tab bar.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// TabLink is one entry of the dashboard header.
type TabLink struct {
	Key    string
	Label  string
	Active bool
}

// Header builds the tab bar.
func Header(active string) []TabLink {
	tabs := []TabLink{
		{Key: "workspaces", Label: "Workspaces"},
		{Key: "routes", Label: "Routes"},
		{Key: "mappings", Label: "Mappings"},
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].Key == active
	}
	return tabs
}

// ConnectButton links to the Slack install redirect.
type ConnectButton struct {
	Href  string
	Label string
}

// NewConnectButton returns the connect-workspace trigger.
func NewConnectButton() ConnectButton {
	return ConnectButton{Href: "/auth/slack", Label: "Connect Slack Workspace"}
}

// Confirm is a blocking yes/no prompt in front of a destructive action.
type Confirm struct {
	Message    string
	Action     string
	CancelHref string
}

// ConfirmDeleteRoute prompts before a route delete.
func ConfirmDeleteRoute(action string) Confirm {
	return Confirm{Message: "Are you sure?", Action: action, CancelHref: "/dashboard?tab=routes"}
}

// ConfirmDeleteMapping prompts before an identity-mapping delete.
func ConfirmDeleteMapping(action string) Confirm {
	return Confirm{
		Message:    "Are you sure you want to delete this mapping?",
		Action:     action,
		CancelHref: "/dashboard?tab=mappings",
	}
}
