// Package oauth drives the "Connect Slack Workspace" flow from the console's
// side: sending the browser to Slack's install page and interpreting the
// backend's redirect once the install completes.
package oauth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zulandar/relaydesk/internal/config"
	"golang.org/x/oauth2"
)

// SlackEndpoint is Slack's OAuth v2 endpoint. The token exchange happens in
// the routing backend; only AuthURL is used here.
var SlackEndpoint = oauth2.Endpoint{
	AuthURL:  "https://slack.com/oauth/v2/authorize",
	TokenURL: "https://slack.com/api/oauth.v2.access",
}

// Installer builds Slack install URLs.
type Installer struct {
	shareableURL string
	oauth        *oauth2.Config
	userScopes   []string
}

// NewInstaller creates an Installer from the Slack section of the config.
func NewInstaller(cfg config.SlackConfig) (*Installer, error) {
	if cfg.InstallURL == "" && cfg.ClientID == "" {
		return nil, fmt.Errorf("oauth: install url or client id is required")
	}
	in := &Installer{shareableURL: cfg.InstallURL, userScopes: cfg.UserScopes}
	if cfg.ClientID != "" {
		in.oauth = &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURL,
			Scopes:      cfg.Scopes,
			Endpoint:    SlackEndpoint,
		}
	}
	return in, nil
}

// URL returns the install URL. A configured shareable URL is returned as-is;
// otherwise an authorize URL carrying state is built.
func (in *Installer) URL(state string) string {
	if in.shareableURL != "" {
		return in.shareableURL
	}
	// Slack wants comma-separated scopes; oauth2 joins with spaces.
	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("scope", strings.Join(in.oauth.Scopes, ",")),
	}
	if len(in.userScopes) > 0 {
		opts = append(opts, oauth2.SetAuthURLParam("user_scope", strings.Join(in.userScopes, ",")))
	}
	return in.oauth.AuthCodeURL(state, opts...)
}

// NewState returns a random OAuth state value.
func NewState() string {
	return uuid.NewString()
}

// InstallURL is NewInstaller(cfg).URL(state).
func InstallURL(cfg config.SlackConfig, state string) (string, error) {
	in, err := NewInstaller(cfg)
	if err != nil {
		return "", err
	}
	return in.URL(state), nil
}
