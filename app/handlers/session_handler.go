package handlers

import (
	"log"
	"net/http"

	"github.com/printcraft/storefront/app/helpers"
	"github.com/printcraft/storefront/app/services"
	"github.com/printcraft/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type SessionHandler struct {
	store   sessions.SessionStore
	manager *services.SessionManager
	render  *render.Render
}

func NewSessionHandler(store sessions.SessionStore, manager *services.SessionManager, render *render.Render) *SessionHandler {
	return &SessionHandler{store: store, manager: manager, render: render}
}

type endSessionResponse struct {
	Ended bool `json:"ended"`
}

// EndSession drops the session's cart and draft and expires its cookie. The next stateful
// request starts from an empty cart.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(helpers.ContextKeySessionID).(string)
	_, ended := r.Context().Value(helpers.ContextKeySession).(*services.Session)

	if err := h.store.ClearSession(w, r); err != nil {
		log.Printf("SessionHandler.EndSession: Error clearing session cookie: %v", err)
		renderError(h.render, w, http.StatusInternalServerError, "Failed to end session")
		return
	}
	if sessionID != "" {
		h.manager.End(sessionID)
		log.Printf("SessionHandler.EndSession: session %s ended", sessionID)
	}

	_ = h.render.JSON(w, http.StatusOK, endSessionResponse{Ended: ended})
}
