package handlers

import (
	"net/http"
)

// callerID returns the authenticated user id placed in the request context by
// the JWT middleware.
func callerID(r *http.Request) string {
	id, _ := r.Context().Value("user_id").(string)
	return id
}
