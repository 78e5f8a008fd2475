package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/garage-repair-shop/internal/config"
	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
	"github.com/iliyamo/garage-repair-shop/internal/utils"
	"github.com/iliyamo/garage-repair-shop/internal/view"
)

// stubUserStore serves canned users and records created ones.
type stubUserStore struct {
	users   map[string]*model.User
	created []*model.User
}

func (s *stubUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserStore) Create(_ context.Context, u *model.User, _ string, _ int) (uint64, error) {
	if _, ok := s.users[u.Username]; ok {
		return 0, repository.ErrUserExists
	}
	u.ID = uint64(len(s.created) + 1)
	s.created = append(s.created, u)
	return u.ID, nil
}

func testAuthHandler(t *testing.T, store *stubUserStore) (*AuthHandler, *echo.Echo) {
	t.Helper()
	renderer, err := view.New()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = renderer
	cfg := config.Config{JWTSecret: "handler-test-secret", SessionTTLMin: 60, BcryptCost: bcrypt.MinCost}
	return NewAuthHandler(cfg, store), e
}

func postForm(e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// sessionCookie returns the access_token cookie from the response, or nil.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	return nil
}

func storeWithUser(t *testing.T, username, password, role string) *stubUserStore {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &stubUserStore{users: map[string]*model.User{
		username: {ID: 42, Username: username, Email: username + "@example.com", PasswordHash: hash, Role: role},
	}}
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	h, e := testAuthHandler(t, storeWithUser(t, "alice", "s3cret", model.RoleCustomer))
	c, rec := postForm(e, "/login", url.Values{"username": {"alice"}, "password": {"s3cret"}})

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/customer", rec.Header().Get(echo.HeaderLocation))

	ck := sessionCookie(rec)
	require.NotNil(t, ck, "login must set the session cookie")
	assert.True(t, ck.HttpOnly)

	ident, err := utils.DecodeSessionToken("handler-test-secret", ck.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", ident.Username)
	assert.Equal(t, uint64(42), ident.UserID)
}

func TestLoginRedirectsToRoleHome(t *testing.T) {
	cases := []struct {
		role string
		home string
	}{
		{model.RoleCustomer, "/customer"},
		{model.RoleMechanic, "/mechanic"},
		{model.RoleAdmin, "/admin"},
	}
	for _, tc := range cases {
		h, e := testAuthHandler(t, storeWithUser(t, "bob", "s3cret", tc.role))
		c, rec := postForm(e, "/login", url.Values{"username": {"bob"}, "password": {"s3cret"}})

		require.NoError(t, h.Login(c))
		assert.Equal(t, tc.home, rec.Header().Get(echo.HeaderLocation), tc.role)
	}
}

// A wrong password re-renders the form and leaves the session cookie
// unset.
func TestLoginWrongPasswordLeavesCookieUnset(t *testing.T) {
	h, e := testAuthHandler(t, storeWithUser(t, "alice", "s3cret", model.RoleCustomer))
	c, rec := postForm(e, "/login", url.Values{"username": {"alice"}, "password": {"nope"}})

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wrong password!")
	assert.Nil(t, sessionCookie(rec), "failed login must not set a session cookie")
}

func TestLoginUnknownUsernameLeavesCookieUnset(t *testing.T) {
	h, e := testAuthHandler(t, &stubUserStore{users: map[string]*model.User{}})
	c, rec := postForm(e, "/login", url.Values{"username": {"ghost"}, "password": {"s3cret"}})

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username is not registered")
	assert.Nil(t, sessionCookie(rec))
}

func registerForm(username string) url.Values {
	return url.Values{
		"email":     {username + "@example.com"},
		"username":  {username},
		"firstname": {"New"},
		"lastname":  {"Customer"},
		"password":  {"s3cret"},
		"password2": {"s3cret"},
	}
}

// Registration always produces a customer account and does not log the
// visitor in.
func TestRegisterCreatesCustomer(t *testing.T) {
	store := &stubUserStore{users: map[string]*model.User{}}
	h, e := testAuthHandler(t, store)
	c, rec := postForm(e, "/register", registerForm("carol"))

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User successfully created")

	require.Len(t, store.created, 1)
	assert.Equal(t, "carol", store.created[0].Username)
	assert.Equal(t, model.RoleCustomer, store.created[0].Role)
	assert.Nil(t, sessionCookie(rec), "register must not set a session cookie")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	store := &stubUserStore{users: map[string]*model.User{}}
	h, e := testAuthHandler(t, store)
	form := registerForm("carol")
	form.Set("password2", "different")
	c, rec := postForm(e, "/register", form)

	require.NoError(t, h.Register(c))
	assert.Contains(t, rec.Body.String(), "Verify password must be the same")
	assert.Empty(t, store.created)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h, e := testAuthHandler(t, storeWithUser(t, "alice", "s3cret", model.RoleCustomer))
	c, rec := postForm(e, "/register", registerForm("alice"))

	require.NoError(t, h.Register(c))
	assert.Contains(t, rec.Body.String(), "Username or Email is already in use")
}

func TestLogoutClearsCookie(t *testing.T) {
	h, e := testAuthHandler(t, &stubUserStore{users: map[string]*model.User{}})
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	ck := sessionCookie(rec)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)
}
