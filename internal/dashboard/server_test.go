package dashboard

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/relaydesk/internal/config"
	"github.com/zulandar/relaydesk/internal/console"
	"github.com/zulandar/relaydesk/internal/models"
)

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return true }

// noExpiry keeps toasts visible for the whole test.
func noExpiry(time.Duration, func()) console.Timer { return stoppedTimer{} }

func testConfig() *config.Config {
	return &config.Config{
		Port: 8080,
		API:  config.APIConfig{BaseURL: "http://backend.invalid"},
		Slack: config.SlackConfig{
			InstallURL: "https://slack.com/oauth/v2/authorize?client_id=shared",
		},
		Sessions: config.SessionsConfig{TTL: "1m", Sweep: "*/5 * * * *", TTLDuration: time.Minute},
	}
}

func seedBackend() *console.MockBackend {
	b := console.NewMockBackend()
	b.SetWorkspaces(
		models.Workspace{TeamID: "A", TeamName: "Acme"},
		models.Workspace{TeamID: "B", TeamName: "Beta"},
	)
	b.SetRoutes(models.Route{
		RouteID: "1", SourceTeamID: "A", DestTeamID: "B",
		SourceChannelID: "C1", DestChannelID: "C2", Direction: models.DirectionInbound,
	})
	b.SetMappings(models.IdentityMapping{
		Key: "U1:B", InternalUserID: "U1", InternalUsername: "alice",
		ClientTeamID: "B", ClientUserID: "U2", ClientUsername: "bob",
	})
	b.SetChannels("A", models.Channel{ID: "C1", Name: "general"})
	b.SetChannels("B", models.Channel{ID: "C2", Name: "support"})
	return b
}

func setupTestRouter(t *testing.T) (*gin.Engine, *server, *console.MockBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b := seedBackend()
	srv, err := newServer(testConfig(), b, console.Options{AfterFunc: noExpiry})
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	router, err := newRouter(srv)
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}
	t.Cleanup(srv.sessions.closeAll)
	return router, srv, b
}

// browser replays the session cookie like a real browser would.
type browser struct {
	t       *testing.T
	router  http.Handler
	session *http.Cookie
}

func (br *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	br.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if br.session != nil {
		req.AddCookie(br.session)
	}
	rec := httptest.NewRecorder()
	br.router.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookie {
			br.session = ck
		}
	}
	return rec
}

func (br *browser) get(path string) *httptest.ResponseRecorder { return br.do(http.MethodGet, path, nil) }

func (br *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return br.do(http.MethodPost, path, form)
}

func newBrowser(t *testing.T) (*browser, *server, *console.MockBackend) {
	router, srv, b := setupTestRouter(t)
	return &browser{t: t, router: router}, srv, b
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, want, rec.Body.String())
	}
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestStart_NilConfig(t *testing.T) {
	err := Start(context.Background(), StartOpts{})
	if err == nil {
		t.Fatal("expected error for nil config")
	}
	if !strings.Contains(err.Error(), "config is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config is required")
	}
}

func TestNewServer_NoInstallSource(t *testing.T) {
	cfg := testConfig()
	cfg.Slack = config.SlackConfig{}
	if _, err := newServer(cfg, console.NewMockBackend(), console.Options{}); err == nil {
		t.Fatal("expected error without install url or client id")
	}
}

func TestEmbeddedAssets(t *testing.T) {
	for _, name := range []string{"assets/style.css", "assets/console.js"} {
		data, err := assetsFS.ReadFile(name)
		if err != nil {
			t.Fatalf("%s not embedded: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	data, err := templatesFS.ReadFile("templates/layout.html")
	if err != nil {
		t.Fatalf("layout.html not embedded: %v", err)
	}
	if !strings.Contains(string(data), "Relaydesk") {
		t.Error("layout.html does not contain 'Relaydesk'")
	}
}

func TestStaticAssets(t *testing.T) {
	br, _, _ := newBrowser(t)
	for _, path := range []string{"/static/style.css", "/static/console.js"} {
		assertStatus(t, br.get(path), http.StatusOK)
	}
}

func TestIndex_RedirectsToDashboard(t *testing.T) {
	br, _, _ := newBrowser(t)
	rec := br.get("/")
	assertStatus(t, rec, http.StatusFound)
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q", loc)
	}
}

func TestDashboard_InitialLoad(t *testing.T) {
	br, _, b := newBrowser(t)
	rec := br.get("/dashboard")
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Acme", "Beta", "Connect Slack Workspace", "Select a workspace")
	if br.session == nil {
		t.Fatal("no session cookie set")
	}
	for _, m := range []string{"ListWorkspaces", "ListRoutes", "ListIdentityMappings"} {
		if n := b.Calls(m); n != 1 {
			t.Errorf("%s calls = %d, want 1", m, n)
		}
	}
}

func TestDashboard_SessionReuse(t *testing.T) {
	br, srv, b := newBrowser(t)
	br.get("/dashboard")
	first := br.session.Value

	rec := br.get("/dashboard")
	assertStatus(t, rec, http.StatusOK)
	if br.session.Value != first {
		t.Error("session id changed")
	}
	if n := b.Calls("ListWorkspaces"); n != 1 {
		t.Errorf("ListWorkspaces calls = %d, want 1", n)
	}
	if n := srv.sessions.count(); n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}
}

func TestDashboard_BadCookieStartsNewSession(t *testing.T) {
	br, srv, _ := newBrowser(t)
	br.session = &http.Cookie{Name: sessionCookie, Value: "not-a-uuid"}
	br.get("/dashboard")
	if br.session.Value == "not-a-uuid" {
		t.Error("malformed session id was kept")
	}
	if n := srv.sessions.count(); n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}
}

func TestDashboard_Tabs(t *testing.T) {
	br, _, _ := newBrowser(t)

	rec := br.get("/dashboard?tab=routes")
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "New Route", "Untitled Route", "Save Route")

	rec = br.get("/dashboard?tab=mappings")
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Identity Mappings", "alice", "Beta", "Save Mapping")

	assertStatus(t, br.get("/dashboard?tab=bogus"), http.StatusBadRequest)
}

func TestSwitchTab_Post(t *testing.T) {
	br, _, _ := newBrowser(t)
	rec := br.post("/dashboard/tab", url.Values{"tab": {"mappings"}})
	assertStatus(t, rec, http.StatusSeeOther)
	assertContains(t, br.get("/dashboard").Body.String(), "Save Mapping")
}

func TestSelectWorkspace_LoadsChannels(t *testing.T) {
	br, _, b := newBrowser(t)
	br.get("/dashboard")

	rec := br.post("/dashboard/workspaces/A/select", nil)
	assertStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q", loc)
	}

	body := br.get("/dashboard").Body.String()
	assertContains(t, body, "Channels in Acme", "#general", "Create mapping")
	if n := b.Calls("ListChannels"); n != 1 {
		t.Errorf("ListChannels calls = %d, want 1", n)
	}

	br.post("/dashboard/workspaces/A/select", nil)
	if n := b.Calls("ListChannels"); n != 1 {
		t.Errorf("ListChannels calls after reselect = %d, want 1", n)
	}
}

func TestSelectWorkspace_Unknown(t *testing.T) {
	br, _, _ := newBrowser(t)
	assertStatus(t, br.post("/dashboard/workspaces/ZZ/select", nil), http.StatusNotFound)
}

func TestSelectWorkspace_ChannelFailure(t *testing.T) {
	br, _, b := newBrowser(t)
	b.Fail("ListChannels", errors.New("slack down"))
	br.post("/dashboard/workspaces/A/select", nil)

	body := br.get("/dashboard").Body.String()
	assertContains(t, body, "Failed to load channels", "slack down", "Retry")
}

func TestMarkInternal(t *testing.T) {
	br, _, b := newBrowser(t)
	assertStatus(t, br.post("/dashboard/workspaces/B/mark-internal", nil), http.StatusSeeOther)
	if n := b.Calls("MarkInternal"); n != 1 {
		t.Fatalf("MarkInternal calls = %d, want 1", n)
	}
	body := br.get("/dashboard").Body.String()
	assertContains(t, body, "Workspace marked as internal", "Internal")

	br.post("/dashboard/workspaces/A/mark-internal", nil)
	if n := b.Calls("MarkInternal"); n != 1 {
		t.Errorf("second mark internal reached the backend")
	}
	assertContains(t, br.get("/dashboard").Body.String(), "An internal workspace is already set")
}

func TestSaveRoute_Validation(t *testing.T) {
	br, _, b := newBrowser(t)
	rec := br.post("/dashboard/routes", url.Values{
		"name":           {"keep-me"},
		"source_team_id": {"A"},
		"direction":      {"inbound"},
	})
	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertContains(t, rec.Body.String(), "missing required fields", "keep-me")
	if n := b.Calls("CreateRoute"); n != 0 {
		t.Errorf("CreateRoute calls = %d, want 0", n)
	}
}

func TestSaveRoute_Success(t *testing.T) {
	br, _, b := newBrowser(t)
	rec := br.post("/dashboard/routes", url.Values{
		"name":              {"sync"},
		"source_team_id":    {"A"},
		"source_channel_id": {"C1"},
		"dest_team_id":      {"B"},
		"dest_channel_id":   {"C2"},
		"direction":         {"bidirectional"},
	})
	assertStatus(t, rec, http.StatusSeeOther)
	loc := rec.Header().Get("Location")
	if loc != "/dashboard?tab=routes" {
		t.Fatalf("Location = %q", loc)
	}
	got := b.LastRouteDraft()
	if got.Name != "sync" || got.Direction != models.DirectionBidirectional || got.DestChannelID != "C2" {
		t.Errorf("draft = %+v", got)
	}
	assertContains(t, br.get(loc).Body.String(), "Route saved successfully", "Route saved", "sync")

	// The form message is shown once; reloading the page drops it.
	if body := br.get(loc).Body.String(); strings.Contains(body, "Route saved successfully") {
		t.Error("success message shown again on reload")
	}
}

func TestSaveRoute_BackendFailureKeepsValues(t *testing.T) {
	br, _, b := newBrowser(t)
	b.Fail("CreateRoute", errors.New("duplicate route"))
	rec := br.post("/dashboard/routes", url.Values{
		"name":              {"keep-me"},
		"source_team_id":    {"A"},
		"source_channel_id": {"C1"},
		"dest_team_id":      {"B"},
		"dest_channel_id":   {"C2"},
		"direction":         {"outbound"},
	})
	assertStatus(t, rec, http.StatusBadGateway)
	assertContains(t, rec.Body.String(), "duplicate route", "keep-me", "Failed to save route")
}

func TestSaveFailure_FormMarkedDirty(t *testing.T) {
	br, _, b := newBrowser(t)
	b.Fail("CreateRoute", errors.New("duplicate route"))
	rec := br.post("/dashboard/routes", url.Values{
		"source_team_id":    {"A"},
		"source_channel_id": {"C1"},
		"dest_team_id":      {"B"},
		"dest_channel_id":   {"C2"},
		"direction":         {"outbound"},
	})
	assertStatus(t, rec, http.StatusBadGateway)
	assertContains(t, rec.Body.String(), `action="/dashboard/routes" class="editor" data-validate data-dirty>`)

	rec = br.post("/dashboard/mappings", url.Values{"internal_user_id": {"U9"}})
	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertContains(t, rec.Body.String(), `action="/dashboard/mappings" class="editor" data-validate data-dirty>`)

	// A form rendered without an error is left for the page script to mark.
	rec = br.get("/dashboard/routes/form?source_team_id=A")
	assertStatus(t, rec, http.StatusOK)
	if strings.Contains(rec.Body.String(), "data-dirty") {
		t.Error("clean route form rendered with data-dirty")
	}
}

func TestRouteForm_FetchesChannels(t *testing.T) {
	br, _, b := newBrowser(t)
	rec := br.get("/dashboard/routes/form?source_team_id=A&dest_team_id=B&name=draft")
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "#general", "#support", `value="draft"`)
	if n := b.Calls("ListChannels"); n != 2 {
		t.Errorf("ListChannels calls = %d, want 2", n)
	}
}

func TestRouteForm_IgnoresUnknownWorkspaces(t *testing.T) {
	br, srv, b := newBrowser(t)
	rec := br.get("/dashboard/routes/form?source_team_id=ZZ&dest_team_id=B")
	assertStatus(t, rec, http.StatusOK)
	if n := b.Calls("ListChannels"); n != 1 {
		t.Errorf("ListChannels calls = %d, want 1", n)
	}
	con, ok := srv.sessions.lookup(br.session.Value)
	if !ok {
		t.Fatal("session not found")
	}
	if _, ok := con.Snapshot().Channels["ZZ"]; ok {
		t.Error("unknown workspace got a channel cache entry")
	}
}

func TestEditRoute(t *testing.T) {
	br, _, b := newBrowser(t)
	assertStatus(t, br.post("/dashboard/routes/1/edit", nil), http.StatusSeeOther)
	body := br.get("/dashboard").Body.String()
	assertContains(t, body, "Edit Route", "#general", "#support")
	if n := b.Calls("ListChannels"); n != 2 {
		t.Errorf("ListChannels calls = %d, want 2", n)
	}

	assertStatus(t, br.post("/dashboard/routes/cancel", nil), http.StatusSeeOther)
	assertContains(t, br.get("/dashboard").Body.String(), "New Route")

	assertStatus(t, br.post("/dashboard/routes/404/edit", nil), http.StatusNotFound)
}

func TestToggleRoute(t *testing.T) {
	br, _, b := newBrowser(t)
	br.get("/dashboard?tab=routes")
	assertStatus(t, br.post("/dashboard/routes/1/toggle", nil), http.StatusSeeOther)
	assertContains(t, br.get("/dashboard").Body.String(), "Disabled")
	if n := b.Calls("CreateRoute") + b.Calls("DeleteRoute"); n != 0 {
		t.Error("toggle reached the backend")
	}
}

func TestDeleteRoute_Confirm(t *testing.T) {
	br, _, b := newBrowser(t)
	rec := br.post("/dashboard/routes/1/delete", nil)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Are you sure?", `action="/dashboard/routes/1/delete"`)
	if n := b.Calls("DeleteRoute"); n != 0 {
		t.Fatalf("DeleteRoute calls = %d before confirm", n)
	}

	rec = br.post("/dashboard/routes/1/delete", url.Values{"confirm": {"yes"}})
	assertStatus(t, rec, http.StatusSeeOther)
	if n := b.Calls("DeleteRoute"); n != 1 {
		t.Errorf("DeleteRoute calls = %d, want 1", n)
	}
	assertContains(t, br.get("/dashboard?tab=routes").Body.String(), "Route deleted", "No routes configured")
}

func TestDeleteMapping_Confirm(t *testing.T) {
	br, _, b := newBrowser(t)
	rec := br.post("/dashboard/mappings/U1:B/delete", nil)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Are you sure you want to delete this mapping?")

	rec = br.post("/dashboard/mappings/U1:B/delete", url.Values{"confirm": {"yes"}})
	assertStatus(t, rec, http.StatusSeeOther)
	if n := b.Calls("DeleteIdentityMapping"); n != 1 {
		t.Errorf("DeleteIdentityMapping calls = %d, want 1", n)
	}
	assertContains(t, br.get("/dashboard?tab=mappings").Body.String(), "Mapping deleted", "No identity mappings yet")
}

func TestSaveMapping(t *testing.T) {
	br, _, b := newBrowser(t)
	rec := br.post("/dashboard/mappings", url.Values{"internal_user_id": {"U9"}})
	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertContains(t, rec.Body.String(), "missing required fields", `value="U9"`)

	rec = br.post("/dashboard/mappings", url.Values{
		"internal_user_id":  {"U9"},
		"internal_username": {"carol"},
		"client_team_id":    {"A"},
		"client_user_id":    {"U10"},
		"client_username":   {"dave"},
	})
	assertStatus(t, rec, http.StatusSeeOther)
	if key := b.LastMappingDraft().Key; key != "U9:A" {
		t.Errorf("key = %q, want U9:A", key)
	}
	assertContains(t, br.get(rec.Header().Get("Location")).Body.String(), "Mapping saved successfully", "carol")
}

func TestEditMapping(t *testing.T) {
	br, _, _ := newBrowser(t)
	assertStatus(t, br.post("/dashboard/mappings/U1:B/edit", nil), http.StatusSeeOther)
	assertContains(t, br.get("/dashboard").Body.String(), "Edit Identity Mapping", `value="alice"`)
	assertStatus(t, br.post("/dashboard/mappings/nope/edit", nil), http.StatusNotFound)
}

func TestNewMapping_Shortcut(t *testing.T) {
	br, _, _ := newBrowser(t)
	rec := br.post("/dashboard/mappings/new", url.Values{"client_team_id": {"B"}})
	assertStatus(t, rec, http.StatusSeeOther)
	loc := rec.Header().Get("Location")
	if loc != "/dashboard?tab=mappings&client_team_id=B" {
		t.Fatalf("Location = %q", loc)
	}
	assertContains(t, br.get(loc).Body.String(), `<option value="B" selected>`)
}

func TestDismissToast(t *testing.T) {
	br, _, _ := newBrowser(t)
	br.post("/dashboard/routes/1/delete", url.Values{"confirm": {"yes"}})
	assertContains(t, br.get("/dashboard").Body.String(), "Route deleted")
	br.post("/dashboard/toast/dismiss", nil)
	if strings.Contains(br.get("/dashboard").Body.String(), "Route deleted") {
		t.Error("toast still visible after dismiss")
	}
}

func TestRefresh(t *testing.T) {
	br, _, b := newBrowser(t)
	br.get("/dashboard")
	rec := br.get("/dashboard?refresh=1")
	assertStatus(t, rec, http.StatusFound)
	if n := b.Calls("ListWorkspaces"); n != 2 {
		t.Errorf("ListWorkspaces calls = %d, want 2", n)
	}
	if n := b.Calls("ListIdentityMappings"); n != 1 {
		t.Errorf("ListIdentityMappings calls = %d, want 1", n)
	}
}

func TestInstallRedirect(t *testing.T) {
	br, _, _ := newBrowser(t)
	rec := br.get("/auth/slack")
	assertStatus(t, rec, http.StatusFound)
	if loc := rec.Header().Get("Location"); loc != "https://slack.com/oauth/v2/authorize?client_id=shared" {
		t.Errorf("Location = %q", loc)
	}
}

func TestCallbackPage(t *testing.T) {
	br, _, _ := newBrowser(t)

	rec := br.get("/slack/oauth/callback?status=success&team_id=T1")
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "T1", `http-equiv="refresh"`, "/dashboard?refresh=1")

	rec = br.get("/slack/oauth/callback?error=access_denied")
	body := rec.Body.String()
	assertContains(t, body, "access_denied", "/auth/slack")
	if strings.Contains(body, `http-equiv="refresh"`) {
		t.Error("failed callback auto-navigates")
	}

	rec = br.get("/slack/oauth/callback")
	assertContains(t, rec.Body.String(), "Processing")
}

func TestUnknownRoute_Returns404(t *testing.T) {
	br, _, _ := newBrowser(t)
	rec := br.get("/nonexistent")
	assertStatus(t, rec, http.StatusNotFound)
	assertContains(t, rec.Body.String(), "Not found")
}

func TestRecovery_RendersFallback(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	router.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assertStatus(t, rec, http.StatusInternalServerError)
	assertContains(t, rec.Body.String(), "Something went wrong.")
}

func TestSSE_ConnectedAndChanged(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/events: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("content-type = %q, want text/event-stream", ct)
	}
	lines := bufio.NewScanner(resp.Body)
	waitEvent := func(name string) {
		t.Helper()
		for lines.Scan() {
			if lines.Text() == "event: "+name {
				return
			}
		}
		t.Fatalf("stream ended before %q: %v", name, lines.Err())
	}
	waitEvent("connected")

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == sessionCookie {
			session = ck
		}
	}
	if session == nil {
		t.Fatal("event stream did not set a session cookie")
	}

	post, _ := http.NewRequest(http.MethodPost, ts.URL+"/dashboard/tab", strings.NewReader("tab=routes"))
	post.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	post.AddCookie(session)
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	pr, err := client.Do(post)
	if err != nil {
		t.Fatalf("POST /dashboard/tab: %v", err)
	}
	pr.Body.Close()

	waitEvent("changed")
}

func TestSessions_Sweep(t *testing.T) {
	br, srv, _ := newBrowser(t)
	now := time.Now()
	srv.sessions.now = func() time.Time { return now }
	br.get("/dashboard")

	if n := srv.sessions.sweep(); n != 0 {
		t.Fatalf("swept %d fresh sessions", n)
	}
	now = now.Add(2 * time.Minute)
	if n := srv.sessions.sweep(); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if n := srv.sessions.count(); n != 0 {
		t.Errorf("sessions = %d after sweep", n)
	}

	old := br.session.Value
	br.get("/dashboard")
	if br.session.Value == old {
		t.Error("evicted session id reused")
	}
}
