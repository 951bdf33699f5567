package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "printcraft-session"

	sessionIDKey = "sid"
)

type SessionStore interface {
	GetSessionID(r *http.Request) string
	EnsureSessionID(w http.ResponseWriter, r *http.Request) (string, error)
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(maxAge time.Duration, secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		// A cookie signed with rotated keys still yields a fresh session.
		log.Printf("CookieSessionStore.getSession: %v", err)
	}
	return session
}

func (c *CookieSessionStore) GetSessionID(r *http.Request) string {
	session := c.getSession(r)
	if session == nil {
		return ""
	}
	sid, _ := session.Values[sessionIDKey].(string)
	return sid
}

// EnsureSessionID returns the session id carried by the request, issuing and saving a new one
// when the cookie is missing or unreadable.
func (c *CookieSessionStore) EnsureSessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	session := c.getSession(r)
	if session == nil {
		return "", http.ErrNoCookie
	}

	if sid, ok := session.Values[sessionIDKey].(string); ok && sid != "" {
		return sid, nil
	}

	sid := uuid.New().String()
	session.Values[sessionIDKey] = sid
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return sid, nil
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	if session == nil {
		return nil
	}
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
