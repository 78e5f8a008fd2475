// Package auth implements the role gate executed at the entry of every
// protected route.  The gate takes the identity decoded from the session
// cookie, loads the persisted user, and decides between letting the
// request proceed and redirecting the visitor to where they belong.
package auth

import (
	"context"
	"errors"

	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
	"github.com/iliyamo/garage-repair-shop/internal/utils"
)

// LoginPath is where anonymous or unknown visitors are sent.
const LoginPath = "/login"

// roleHomes maps each role to its home route.
var roleHomes = map[string]string{
	model.RoleCustomer: "/customer",
	model.RoleMechanic: "/mechanic",
	model.RoleAdmin:    "/admin",
}

// RoleHome returns the home route for a role, or the login page when the
// role is unknown.
func RoleHome(role string) string {
	if home, ok := roleHomes[role]; ok {
		return home
	}
	return LoginPath
}

// UserFinder is the single lookup the gate needs.  *repository.UserRepo
// satisfies it; tests may substitute a stub.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// Decision is the outcome of an authorization check: either the request
// proceeds carrying the loaded user, or it is redirected to Target.
type Decision struct {
	Proceed bool
	Target  string      // redirect target when Proceed is false
	User    *model.User // persisted user when Proceed is true
}

func proceed(u *model.User) Decision { return Decision{Proceed: true, User: u} }
func redirectTo(target string) Decision { return Decision{Target: target} }

// Authorize decides whether an identity may enter a route namespace.
// No identity, or an identity whose username is not persisted, redirects
// to the login page.  A persisted user with a different role is sent to
// their own home route instead of the requested one.  The role is read
// from the database row, not the token, so a role change applies on the
// next gate lookup.
func Authorize(ctx context.Context, users UserFinder, ident *utils.Identity, requiredRole string) (Decision, error) {
	if ident == nil || ident.Username == "" {
		return redirectTo(LoginPath), nil
	}
	u, err := users.GetByUsername(ctx, ident.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Token subject no longer matches an account; treat as anonymous.
			return redirectTo(LoginPath), nil
		}
		return Decision{}, err
	}
	if u.Role == requiredRole {
		return proceed(u), nil
	}
	return redirectTo(RoleHome(u.Role)), nil
}
