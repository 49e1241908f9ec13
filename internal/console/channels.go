package console

import (
	"context"
	"log"
	"slices"

	"github.com/zulandar/relaydesk/internal/models"
)

// EnsureChannels fills the channel cache for one workspace. It is a no-op for
// a blank id, for a workspace whose channels are already loaded (an empty
// list included) and for a fetch already in flight. A failed entry is
// fetched again. Every cached channel is tagged with teamID.
//
// The returned slice is the cached list when it is available.
func (c *Console) EnsureChannels(ctx context.Context, teamID string) ([]models.Channel, error) {
	if teamID == "" {
		return nil, nil
	}

	c.mu.Lock()
	entry, seen := c.channels[teamID]
	switch entry.Status {
	case Loaded:
		list := slices.Clone(entry.Channels)
		c.mu.Unlock()
		return list, nil
	case Loading:
		c.mu.Unlock()
		return nil, nil
	}
	c.channels[teamID] = ChannelEntry{Status: Loading}
	if !seen {
		c.channelOrder = append(c.channelOrder, teamID)
	}
	c.mu.Unlock()
	c.notify()

	done := c.begin()
	defer done()

	chs, err := c.backend.ListChannels(ctx, teamID)
	if err != nil {
		log.Printf("console: load channels for %s: %v", teamID, err)
		c.mu.Lock()
		c.channels[teamID] = ChannelEntry{Status: Failed, Err: err}
		c.mu.Unlock()
		c.showToast("Failed to load channels", ToastError)
		return nil, err
	}

	tagged := make([]models.Channel, len(chs))
	for i, ch := range chs {
		ch.TeamID = teamID
		tagged[i] = ch
	}

	c.mu.Lock()
	c.channels[teamID] = ChannelEntry{Status: Loaded, Channels: tagged}
	c.mu.Unlock()
	c.notify()
	return slices.Clone(tagged), nil
}
