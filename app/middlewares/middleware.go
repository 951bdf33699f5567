package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/printcraft/storefront/app/helpers"
	"github.com/printcraft/storefront/app/services"
	"github.com/printcraft/storefront/app/utils/sessions"
)

// SessionMiddleware resolves the cookie session id and attaches that session's cart and
// customizer to the request context.
func SessionMiddleware(store sessions.SessionStore, manager *services.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := store.EnsureSessionID(w, r)
			if err != nil {
				log.Printf("SessionMiddleware: Error issuing session on %s: %v", r.URL.Path, err)
				http.Error(w, "Failed to start session", http.StatusInternalServerError)
				return
			}

			state := manager.Get(sessionID)
			ctx := context.WithValue(r.Context(), helpers.ContextKeySessionID, sessionID)
			ctx = context.WithValue(ctx, helpers.ContextKeySession, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionLookupMiddleware attaches an existing session, if the cookie names one. It never
// creates a session or sets a cookie.
func SessionLookupMiddleware(store sessions.SessionStore, manager *services.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := store.GetSessionID(r)
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeySessionID, sessionID)
			if state, ok := manager.Lookup(sessionID); ok {
				ctx = context.WithValue(ctx, helpers.ContextKeySession, state)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartCountMiddleware exposes the session's item count. Requests without a session see none.
func CartCountMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, ok := r.Context().Value(helpers.ContextKeySession).(*services.Session)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), helpers.CartCountKey, state.Cart.TotalItems())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := r.URL.Query().Get("_method")
			if override == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				_ = r.ParseForm()
				override = r.Form.Get("_method")
			}
			if override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CSRFMiddleware protects unsafe methods and exposes the token in the X-CSRF-Token response
// header, which clients echo back on writes. authKey must be 32 bytes.
func CSRFMiddleware(authKey []byte, secure bool) func(http.Handler) http.Handler {
	protect := csrf.Protect(authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("CSRFMiddleware: rejected %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
		})),
	)

	return func(next http.Handler) http.Handler {
		return protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-CSRF-Token", csrf.Token(r))
			next.ServeHTTP(w, r)
		}))
	}
}
