package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

// heartbeatInterval keeps proxies from closing idle streams and keeps the
// session alive while a dashboard tab is open.
var heartbeatInterval = 15 * time.Second

// versionEvent tells the page which console state version is current.
type versionEvent struct {
	Version uint64 `json:"version"`
}

// handleSSE streams console change notifications for the caller's session.
// The page compares versions and reloads when it is behind.
func (srv *server) handleSSE(c *gin.Context) {
	id, con := srv.sessions.get(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	updates, cancel := con.Subscribe()
	defer cancel()

	writeSSE(c.Writer, "connected", versionEvent{Version: con.Snapshot().Version})
	c.Writer.Flush()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			writeSSE(c.Writer, "changed", versionEvent{Version: con.Snapshot().Version})
			c.Writer.Flush()
		case <-heartbeat.C:
			srv.sessions.touch(id)
			writeSSE(c.Writer, "heartbeat", map[string]string{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			c.Writer.Flush()
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
