package utils // package utils provides helper functions for session tokens and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// DefaultSessionTTL is the validity of a session token when the caller
// does not override it.  The login flow issues longer-lived tokens.
const DefaultSessionTTL = 15 * time.Minute

// ErrInvalidToken is returned by DecodeSessionToken when the token fails
// signature or expiry verification.  The HTTP layer maps it to 401.
var ErrInvalidToken = errors.New("invalid session token")

// SessionToken is a signed JWT together with its expiry.  The Token field
// holds the serialized JWT placed in the access_token cookie.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Identity is the result of decoding a session token: the subject
// username and the numeric user id embedded at issue time.  It proves who
// the request claims to be; the role gate still loads the persisted user
// before letting the request through.
type Identity struct {
	Username string
	UserID   uint64
}

// NewSessionToken builds and signs an HS256 JWT for a user.  The claims
// carry the username as subject (sub), the numeric id (id), the absolute
// expiration (exp) and issue time (iat).  Pass DefaultSessionTTL unless
// the flow asks for a different validity.
func NewSessionToken(secret, username string, userID uint64, ttl time.Duration) (SessionToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub": username,
		"id":  userID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// DecodeSessionToken verifies signature and expiry of a session token and
// returns the embedded Identity.  A token signed with another method or
// secret, or an expired one, yields ErrInvalidToken.  A valid token with
// missing claims yields an Identity with zero fields; the role gate
// treats such an identity as unknown and sends it back to /login.
func DecodeSessionToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	var ident Identity
	if sub, ok := claims["sub"].(string); ok {
		ident.Username = sub
	}
	// JWT numeric values decode as float64.
	if id, ok := claims["id"].(float64); ok {
		ident.UserID = uint64(id)
	}
	return ident, nil
}
