package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/garage-repair-shop/internal/utils"
	"github.com/iliyamo/garage-repair-shop/internal/view"
)

const testSecret = "session-test-secret"

// runSession sends a request through the Session middleware and a probe
// handler that records the identity it saw.
func runSession(t *testing.T, cookie *http.Cookie) (*httptest.ResponseRecorder, *utils.Identity, bool) {
	t.Helper()

	e := echo.New()
	renderer, err := view.New()
	require.NoError(t, err)
	e.Renderer = renderer
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *utils.Identity
	reached := false
	h := Session(testSecret)(func(c echo.Context) error {
		reached = true
		seen = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, seen, reached
}

func TestSessionNoCookie(t *testing.T) {
	rec, seen, reached := runSession(t, nil)

	assert.True(t, reached, "anonymous requests must reach the handler")
	assert.Nil(t, seen)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionValidCookie(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, "alice", 42, utils.DefaultSessionTTL)
	require.NoError(t, err)

	rec, seen, reached := runSession(t, &http.Cookie{Name: SessionCookieName, Value: tok.Token})

	assert.True(t, reached)
	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.Username)
	assert.Equal(t, uint64(42), seen.UserID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// A tampered token is rejected with 401, the cookie is cleared so the
// browser does not resend it, and the visitor gets the login page.
func TestSessionInvalidCookie(t *testing.T) {
	rec, _, reached := runSession(t, &http.Cookie{Name: SessionCookieName, Value: "garbage"})

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cleared := false
	for _, sc := range rec.Result().Cookies() {
		if sc.Name == SessionCookieName && sc.Value == "" && sc.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected an expired %s cookie", SessionCookieName)
	assert.Contains(t, rec.Body.String(), "please log in again")
	assert.Contains(t, rec.Body.String(), "<form method=\"post\" action=\"/login\">")
}

func TestSessionWrongSecretCookie(t *testing.T) {
	tok, err := utils.NewSessionToken("another-secret", "alice", 42, utils.DefaultSessionTTL)
	require.NoError(t, err)

	rec, _, reached := runSession(t, &http.Cookie{Name: SessionCookieName, Value: tok.Token})

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSetSessionCookieAttributes(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	tok, err := utils.NewSessionToken(testSecret, "alice", 42, utils.DefaultSessionTTL)
	require.NoError(t, err)
	SetSessionCookie(c, tok)

	raw := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(raw, SessionCookieName+"="))
	assert.Contains(t, raw, "HttpOnly")
	assert.Contains(t, raw, "Path=/")
}
