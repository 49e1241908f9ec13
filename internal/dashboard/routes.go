package dashboard

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/relaydesk/internal/console"
	"github.com/zulandar/relaydesk/internal/models"
	"github.com/zulandar/relaydesk/internal/oauth"
	"github.com/zulandar/relaydesk/internal/views"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, srv *server) {
	// Embedded static assets (served from assets/ subdir of the embed.FS).
	staticFS, _ := fs.Sub(assetsFS, "assets")
	router.StaticFS("/static", http.FS(staticFS))

	// Pages.
	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
	router.GET("/dashboard", srv.handleDashboard)
	router.GET("/auth/slack", srv.handleInstall)
	router.GET("/slack/oauth/callback", handleCallback)
	router.GET("/api/events", srv.handleSSE)

	// Intents. Each one redirects back to the dashboard.
	d := router.Group("/dashboard")
	d.POST("/tab", srv.intent(func(c *gin.Context) console.Intent {
		return console.SwitchTab{Tab: console.Tab(c.PostForm("tab"))}
	}))
	d.POST("/toast/dismiss", srv.intent(func(*gin.Context) console.Intent { return console.DismissToast{} }))

	d.POST("/workspaces/:team/select", srv.intent(func(c *gin.Context) console.Intent {
		return console.SelectWorkspace{TeamID: c.Param("team")}
	}))
	d.POST("/workspaces/:team/mark-internal", srv.intent(func(c *gin.Context) console.Intent {
		return console.MarkInternal{TeamID: c.Param("team")}
	}))
	d.POST("/channels/:channel/select", srv.intent(func(c *gin.Context) console.Intent {
		return console.SelectChannel{ChannelID: c.Param("channel")}
	}))

	d.GET("/routes/form", srv.handleRouteForm)
	d.POST("/routes", srv.handleSaveRoute)
	d.POST("/routes/new", srv.intent(func(*gin.Context) console.Intent { return console.NewRoute{} }))
	d.POST("/routes/cancel", srv.intent(func(*gin.Context) console.Intent { return console.CancelRouteEdit{} }))
	d.POST("/routes/:id/edit", srv.intent(func(c *gin.Context) console.Intent {
		return console.EditRoute{RouteID: c.Param("id")}
	}))
	d.POST("/routes/:id/toggle", srv.intent(func(c *gin.Context) console.Intent {
		return console.ToggleRoute{RouteID: c.Param("id")}
	}))
	d.POST("/routes/:id/delete", srv.handleDeleteRoute)

	d.POST("/mappings", srv.handleSaveMapping)
	d.POST("/mappings/new", srv.handleNewMapping)
	d.POST("/mappings/cancel", srv.intent(func(*gin.Context) console.Intent { return console.CancelMappingEdit{} }))
	d.POST("/mappings/:key/edit", srv.intent(func(c *gin.Context) console.Intent {
		return console.EditMapping{Key: c.Param("key")}
	}))
	d.POST("/mappings/:key/delete", srv.handleDeleteMapping)

	router.NoRoute(handleNotFound)
}

func (srv *server) handleDashboard(c *gin.Context) {
	id, con := srv.sessions.get(c)
	ctx := c.Request.Context()

	if c.Query("refresh") == "1" {
		if err := con.Dispatch(ctx, console.Refresh{}); err != nil {
			log.Printf("dashboard: refresh: %v", err)
		}
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	if tab := c.Query("tab"); tab != "" {
		if err := con.Dispatch(ctx, console.SwitchTab{Tab: console.Tab(tab)}); err != nil {
			renderMessage(c, http.StatusBadRequest, "Bad request", err.Error())
			return
		}
	}

	var form formState
	switch srv.sessions.takeSaved(id) {
	case "route":
		form.routeSuccess = "Route saved successfully"
	case "mapping":
		form.mappingSuccess = "Mapping saved successfully"
	}
	s := con.Snapshot()
	if team := c.Query("client_team_id"); team != "" && s.EditingMapping == nil {
		form.mapping = &models.MappingDraft{ClientTeamID: team}
	}
	renderDashboard(c, http.StatusOK, s, form)
}

// intent adapts a request-to-intent func into a handler. Unknown targets
// render 404 and malformed intents 400; backend failures are already
// toasted by the console, so they redirect like successes.
func (srv *server) intent(build func(*gin.Context) console.Intent) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, con := srv.sessions.get(c)
		if err := con.Dispatch(c.Request.Context(), build(c)); err != nil {
			if errors.Is(err, console.ErrNotFound) {
				handleNotFound(c)
				return
			}
			renderMessage(c, http.StatusBadRequest, "Bad request", err.Error())
			return
		}
		c.Redirect(http.StatusSeeOther, "/dashboard")
	}
}

// handleRouteForm re-renders the route form with the operator's input,
// fetching channels for the chosen workspaces first.
func (srv *server) handleRouteForm(c *gin.Context) {
	_, con := srv.sessions.get(c)
	draft := routeDraft(c.Query)

	workspaces := con.Snapshot().Workspaces
	var wg sync.WaitGroup
	for _, team := range []string{draft.SourceTeamID, draft.DestTeamID} {
		if _, ok := models.FindWorkspace(workspaces, team); !ok {
			continue
		}
		wg.Go(func() { con.EnsureChannels(c.Request.Context(), team) })
	}
	wg.Wait()

	s := con.Snapshot()
	s.ActiveTab = console.TabRoutes
	renderDashboard(c, http.StatusOK, s, formState{route: &draft})
}

func (srv *server) handleSaveRoute(c *gin.Context) {
	id, con := srv.sessions.get(c)
	draft := routeDraft(c.PostForm)

	err := con.Dispatch(c.Request.Context(), console.SaveRoute{Draft: draft})
	if err == nil {
		srv.sessions.markSaved(id, "route")
		c.Redirect(http.StatusSeeOther, "/dashboard?tab=routes")
		return
	}

	s := con.Snapshot()
	s.ActiveTab = console.TabRoutes
	renderDashboard(c, saveFailureStatus(err), s, formState{route: &draft, routeError: err.Error()})
}

func (srv *server) handleDeleteRoute(c *gin.Context) {
	id := c.Param("id")
	if c.PostForm("confirm") != "yes" {
		cf := views.ConfirmDeleteRoute("/dashboard/routes/" + url.PathEscape(id) + "/delete")
		renderConfirm(c, cf)
		return
	}
	_, con := srv.sessions.get(c)
	con.Dispatch(c.Request.Context(), console.DeleteRoute{RouteID: id})
	c.Redirect(http.StatusSeeOther, "/dashboard?tab=routes")
}

func (srv *server) handleNewMapping(c *gin.Context) {
	_, con := srv.sessions.get(c)
	con.Dispatch(c.Request.Context(), console.NewMapping{})

	target := "/dashboard?tab=mappings"
	if team := c.PostForm("client_team_id"); team != "" {
		target += "&client_team_id=" + url.QueryEscape(team)
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (srv *server) handleSaveMapping(c *gin.Context) {
	id, con := srv.sessions.get(c)
	draft := models.MappingDraft{
		InternalUserID:   c.PostForm("internal_user_id"),
		InternalUsername: c.PostForm("internal_username"),
		ClientTeamID:     c.PostForm("client_team_id"),
		ClientUserID:     c.PostForm("client_user_id"),
		ClientUsername:   c.PostForm("client_username"),
	}

	err := con.Dispatch(c.Request.Context(), console.SaveMapping{Draft: draft})
	if err == nil {
		srv.sessions.markSaved(id, "mapping")
		c.Redirect(http.StatusSeeOther, "/dashboard?tab=mappings")
		return
	}

	s := con.Snapshot()
	s.ActiveTab = console.TabMappings
	renderDashboard(c, saveFailureStatus(err), s, formState{mapping: &draft, mappingError: err.Error()})
}

func (srv *server) handleDeleteMapping(c *gin.Context) {
	key := c.Param("key")
	if c.PostForm("confirm") != "yes" {
		cf := views.ConfirmDeleteMapping("/dashboard/mappings/" + url.PathEscape(key) + "/delete")
		renderConfirm(c, cf)
		return
	}
	_, con := srv.sessions.get(c)
	con.Dispatch(c.Request.Context(), console.DeleteMapping{Key: key})
	c.Redirect(http.StatusSeeOther, "/dashboard?tab=mappings")
}

func (srv *server) handleInstall(c *gin.Context) {
	c.Redirect(http.StatusFound, srv.installer.URL(oauth.NewState()))
}

func handleCallback(c *gin.Context) {
	cb := oauth.ParseCallback(c.Request.URL.Query())
	if cb.State == oauth.Failed {
		log.Printf("dashboard: slack install failed: %s", cb.Error)
	}
	c.HTML(http.StatusOK, "layout.html", pageData{Page: "callback", Title: "Connect Slack", Callback: &cb})
}

func handleNotFound(c *gin.Context) {
	renderMessage(c, http.StatusNotFound, "Not found", "The page you asked for does not exist.")
}

// routeDraft reads route form fields through get (PostForm or Query).
func routeDraft(get func(string) string) models.RouteDraft {
	return models.RouteDraft{
		Name:            get("name"),
		SourceTeamID:    get("source_team_id"),
		SourceChannelID: get("source_channel_id"),
		DestTeamID:      get("dest_team_id"),
		DestChannelID:   get("dest_channel_id"),
		Direction:       models.Direction(get("direction")),
	}
}

func saveFailureStatus(err error) int {
	var verr *console.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func renderDashboard(c *gin.Context, status int, s console.State, form formState) {
	c.HTML(status, "layout.html", pageData{
		Page:      "dashboard",
		Title:     "Dashboard",
		Dashboard: buildDashboard(s, form),
	})
}

func renderConfirm(c *gin.Context, cf views.Confirm) {
	c.HTML(http.StatusOK, "layout.html", pageData{Page: "confirm", Title: "Confirm", Confirm: &cf})
}

func renderMessage(c *gin.Context, status int, title, message string) {
	c.HTML(status, "layout.html", pageData{Page: "message", Title: title, Message: message})
}
