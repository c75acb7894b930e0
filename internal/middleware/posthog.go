package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/negotiation_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// trackedEvents maps "METHOD route" to the analytics event name. Routes are
// relative to the API group. Unlisted routes are not tracked.
var trackedEvents = map[string]string{
	"GET /negotiations/export":    "negotiations_exported",
	"DELETE /negotiations/:id":    "negotiation_deleted",
	"POST /store/reload":          "store_reloaded",
	"GET /dashboard/forecast":     "forecast_viewed",
	"POST /forms":                 "form_opened",
	"POST /forms/:formID/polish":  "description_polished",
	"POST /forms/:formID/suggest": "next_action_suggested",
	"POST /forms/:formID/submit":  "negotiation_saved",
	"DELETE /forms/:formID":       "form_closed",
}

// EventName resolves the analytics event for a request. route is the gin
// route pattern with or without the API prefix.
func EventName(method, route string) (string, bool) {
	if i := strings.Index(route, "/v1/"); i >= 0 {
		route = route[i+len("/v1"):]
	}
	name, ok := trackedEvents[method+" "+route]
	return name, ok
}

// PosthogMiddleware reports successful user actions to PostHog once the handler has run.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event, ok := EventName(c.Request.Method, c.FullPath())
		if !ok {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{"status_code": c.Writer.Status()}
		if id := c.Param("id"); id != "" {
			props["negotiation_id"] = id
		}
		if formID := c.Param("formID"); formID != "" {
			props["form_id"] = formID
		}
		if q := c.Request.URL.RawQuery; q != "" {
			props["query"] = q
		}
		posthogClient.Enqueue(userID, event, props)
	}
}
