package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
	"github.com/iliyamo/garage-repair-shop/internal/utils"
)

// stubFinder serves canned users keyed by username.
type stubFinder struct {
	users map[string]*model.User
	err   error
}

func (s *stubFinder) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func finderWith(users ...*model.User) *stubFinder {
	m := make(map[string]*model.User, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &stubFinder{users: m}
}

func TestAuthorizeAnonymous(t *testing.T) {
	users := finderWith()

	for _, ident := range []*utils.Identity{nil, {}, {UserID: 7}} {
		dec, err := Authorize(context.Background(), users, ident, model.RoleCustomer)
		require.NoError(t, err)
		assert.False(t, dec.Proceed)
		assert.Equal(t, LoginPath, dec.Target)
	}
}

func TestAuthorizeUnknownUsername(t *testing.T) {
	users := finderWith()

	dec, err := Authorize(context.Background(), users, &utils.Identity{Username: "ghost", UserID: 9}, model.RoleCustomer)
	require.NoError(t, err)
	assert.False(t, dec.Proceed)
	assert.Equal(t, LoginPath, dec.Target)
}

func TestAuthorizeRoleMatch(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice", Role: model.RoleMechanic}
	users := finderWith(alice)

	dec, err := Authorize(context.Background(), users, &utils.Identity{Username: "alice", UserID: 1}, model.RoleMechanic)
	require.NoError(t, err)
	assert.True(t, dec.Proceed)
	assert.Equal(t, alice, dec.User)
}

// A user with the wrong role lands on their own home route, whatever
// namespace they asked for.
func TestAuthorizeRoleMismatch(t *testing.T) {
	cases := []struct {
		role     string
		required string
		target   string
	}{
		{model.RoleCustomer, model.RoleMechanic, "/customer"},
		{model.RoleCustomer, model.RoleAdmin, "/customer"},
		{model.RoleMechanic, model.RoleCustomer, "/mechanic"},
		{model.RoleMechanic, model.RoleAdmin, "/mechanic"},
		{model.RoleAdmin, model.RoleCustomer, "/admin"},
		{model.RoleAdmin, model.RoleMechanic, "/admin"},
	}
	for _, tc := range cases {
		u := &model.User{ID: 1, Username: "bob", Role: tc.role}
		dec, err := Authorize(context.Background(), finderWith(u), &utils.Identity{Username: "bob", UserID: 1}, tc.required)
		require.NoError(t, err)
		assert.False(t, dec.Proceed, "%s asking for %s", tc.role, tc.required)
		assert.Equal(t, tc.target, dec.Target)
	}
}

// An unrecognized persisted role is treated like an unknown visitor.
func TestAuthorizeUnknownRole(t *testing.T) {
	u := &model.User{ID: 1, Username: "odd", Role: "intern"}

	dec, err := Authorize(context.Background(), finderWith(u), &utils.Identity{Username: "odd", UserID: 1}, model.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, dec.Proceed)
	assert.Equal(t, LoginPath, dec.Target)
}

func TestAuthorizeLookupFailure(t *testing.T) {
	boom := errors.New("connection refused")
	users := &stubFinder{err: boom}

	_, err := Authorize(context.Background(), users, &utils.Identity{Username: "alice", UserID: 1}, model.RoleCustomer)
	assert.ErrorIs(t, err, boom)
}

func TestRoleHome(t *testing.T) {
	assert.Equal(t, "/customer", RoleHome(model.RoleCustomer))
	assert.Equal(t, "/mechanic", RoleHome(model.RoleMechanic))
	assert.Equal(t, "/admin", RoleHome(model.RoleAdmin))
	assert.Equal(t, LoginPath, RoleHome("something-else"))
}
