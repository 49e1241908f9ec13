package oauth

import (
	"net/url"
	"time"
)

// RedirectDelay is how long the success page waits before returning to the
// dashboard.
const RedirectDelay = 2 * time.Second

// CallbackState is the outcome reported by the backend's OAuth redirect.
type CallbackState string

const (
	// Processing: neither status nor error is present. The page has no
	// transition of its own from here.
	Processing CallbackState = "processing"
	// Failed: error is present. The page offers a retry and stays put.
	Failed CallbackState = "failed"
	// Connected: status=success. The page returns to the dashboard after
	// RedirectDelay.
	Connected CallbackState = "connected"
)

// Callback is the view model for /slack/oauth/callback.
type Callback struct {
	State CallbackState
	// Status is the raw status parameter, kept for unrecognised values.
	Status    string
	TeamID    string
	Error     string
	RetryHref string
	// NextHref and NextAfter are set only when the page auto-navigates.
	NextHref  string
	NextAfter time.Duration
}

// ParseCallback interprets the redirect's status, team_id and error
// parameters. error wins over status.
func ParseCallback(q url.Values) Callback {
	cb := Callback{
		Status:    q.Get("status"),
		TeamID:    q.Get("team_id"),
		Error:     q.Get("error"),
		RetryHref: "/auth/slack",
	}
	switch {
	case cb.Error != "":
		cb.State = Failed
	case cb.Status == "success":
		cb.State = Connected
		cb.NextHref = "/dashboard?refresh=1"
		cb.NextAfter = RedirectDelay
	default:
		cb.State = Processing
	}
	return cb
}

// RedirectSeconds is NextAfter in whole seconds, for meta refresh.
func (cb Callback) RedirectSeconds() int {
	return int(cb.NextAfter / time.Second)
}
