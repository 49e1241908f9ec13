package dashboard

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zulandar/relaydesk/internal/console"
)

// sessionCookie holds the browser session id.
const sessionCookie = "rd_session"

// session is one browser's console and when it was last used. saved names
// the form ("route" or "mapping") whose success message the next dashboard
// render shows once.
type session struct {
	console  *console.Console
	lastSeen time.Time
	saved    string
}

// sessions maps browser session ids to consoles. Consoles idle for longer
// than ttl are closed by sweep.
type sessions struct {
	backend console.Backend
	opts    console.Options
	ttl     time.Duration
	now     func() time.Time

	mu   sync.Mutex
	byID map[string]*session
}

func newSessions(backend console.Backend, ttl time.Duration, opts console.Options) *sessions {
	return &sessions{
		backend: backend,
		opts:    opts,
		ttl:     ttl,
		now:     time.Now,
		byID:    make(map[string]*session),
	}
}

// get returns the request's session id and console, creating and loading a
// new console when the cookie is missing, malformed or refers to an evicted
// session.
func (s *sessions) get(c *gin.Context) (string, *console.Console) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			if con, ok := s.lookup(id); ok {
				return id, con
			}
		}
	}

	id := uuid.NewString()
	con := console.New(s.backend, s.opts)
	s.mu.Lock()
	s.byID[id] = &session{console: con, lastSeen: s.now()}
	s.mu.Unlock()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)

	if err := con.Load(context.WithoutCancel(c.Request.Context())); err != nil {
		log.Printf("dashboard: session %s started with partial data: %v", id, err)
	}
	return id, con
}

// lookup returns the console for id and marks it used.
func (s *sessions) lookup(id string) (*console.Console, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.console, true
}

// markSaved records a successful save for the next dashboard render.
func (s *sessions) markSaved(id, form string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byID[id]; ok {
		sess.saved = form
	}
}

// takeSaved returns and clears the pending save message for id.
func (s *sessions) takeSaved(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return ""
	}
	form := sess.saved
	sess.saved = ""
	return form
}

// touch marks id as used. Open event streams call it on every heartbeat.
func (s *sessions) touch(id string) {
	s.lookup(id)
}

// sweep closes and forgets sessions idle for longer than ttl.
func (s *sessions) sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var idle []*console.Console
	for id, sess := range s.byID {
		if sess.lastSeen.Before(cutoff) {
			idle = append(idle, sess.console)
			delete(s.byID, id)
		}
	}
	s.mu.Unlock()

	for _, con := range idle {
		con.Close()
	}
	if len(idle) > 0 {
		log.Printf("dashboard: evicted %d idle session(s)", len(idle))
	}
	return len(idle)
}

// count reports the number of live sessions.
func (s *sessions) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// closeAll closes every console. Used at shutdown.
func (s *sessions) closeAll() {
	s.mu.Lock()
	all := s.byID
	s.byID = make(map[string]*session)
	s.mu.Unlock()
	for _, sess := range all {
		sess.console.Close()
	}
}
