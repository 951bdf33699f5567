package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *CookieSessionStore {
	return NewCookieSessionStore(time.Hour, false, securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))
}

func TestEnsureSessionIDIssuesCookie(t *testing.T) {
	store := newTestStore()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	sid, err := store.EnsureSessionID(rec, req)
	require.NoError(t, err)
	assert.NotEmpty(t, sid)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])

	assert.Equal(t, sid, store.GetSessionID(next))

	again, err := store.EnsureSessionID(httptest.NewRecorder(), next)
	require.NoError(t, err)
	assert.Equal(t, sid, again)
}

func TestGetSessionIDWithoutCookie(t *testing.T) {
	store := newTestStore()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, store.GetSessionID(req))
}

func TestForeignCookieGetsNewSession(t *testing.T) {
	issuer := newTestStore()
	rec := httptest.NewRecorder()
	sid, err := issuer.EnsureSessionID(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	other := newTestStore()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	fresh, err := other.EnsureSessionID(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.NotEqual(t, sid, fresh)
}
