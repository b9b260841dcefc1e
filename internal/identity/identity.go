// Package identity resolves bearer credentials to a caller and describes what
// each platform role is allowed to do.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// ErrUnauthenticated is returned when a credential is missing, malformed,
// expired or signed with the wrong key.
var ErrUnauthenticated = errors.New("unauthenticated")

// Role is a platform account role.
type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Capability is a single permission checked by the authorization middleware.
type Capability string

const (
	CapRegister           Capability = "register"
	CapCreateHackathon    Capability = "create_hackathon"
	CapModerateHackathons Capability = "moderate_hackathons"
	CapManageFeedback     Capability = "manage_feedback"
)

var capabilities = map[Role][]Capability{
	RoleStudent:   {CapRegister},
	RoleOrganizer: {CapRegister, CapCreateHackathon},
	RoleAdmin:     {CapRegister, CapCreateHackathon, CapModerateHackathons, CapManageFeedback},
}

// Principal is the authenticated caller.
type Principal struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// Can reports whether the principal's role grants c.
func (p Principal) Can(c Capability) bool {
	for _, granted := range capabilities[p.Role] {
		if granted == c {
			return true
		}
	}
	return false
}

// Resolver turns a bearer token into a Principal.
type Resolver interface {
	Resolve(ctx context.Context, token string) (Principal, error)
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by WithPrincipal, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Claims is the JWT payload. The subject is the user id.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTResolver verifies HS256 tokens signed with a shared secret.
type JWTResolver struct {
	secret []byte
	issuer string
	clock  clockwork.Clock
}

// NewJWTResolver constructs a JWTResolver. An empty issuer disables the
// issuer check.
func NewJWTResolver(secret, issuer string, clock clockwork.Clock) *JWTResolver {
	return &JWTResolver{secret: []byte(secret), issuer: issuer, clock: clock}
}

func (r *JWTResolver) Resolve(_ context.Context, token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrUnauthenticated
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(r.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if r.issuer != "" {
		opts = append(opts, jwt.WithIssuer(r.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return r.secret, nil
	}, opts...)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return Principal{}, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	role, err := ParseRole(string(claims.Role))
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return Principal{UserID: claims.Subject, Role: role}, nil
}

// Issuer mints tokens the JWTResolver accepts. Used by the token command and
// tests; production tokens come from the account service.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  clockwork.Clock
}

func NewIssuer(secret, issuer string, ttl time.Duration, clock clockwork.Clock) *Issuer {
	return &Issuer{secret: []byte(secret), issuer: issuer, ttl: ttl, clock: clock}
}

// Issue signs a token for p.
func (i *Issuer) Issue(p Principal) (string, error) {
	now := i.clock.Now()
	claims := Claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
