package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"

	"github.com/sakif/api-catalog/internal/model"
)

// Session is the authenticated identity carried by a request. It is the
// decoded content of the session cookie — nothing more is stored server
// side, and nothing re-checks that the account still exists on each
// request (a deleted account leaves a dangling but still-valid session
// until the token expires).
type Session struct {
	UserID   int64
	Username string
	Role     string
}

// CookieName is the name of the HttpOnly cookie holding the session token.
const CookieName = "session"

// sessionTTL bounds how long an issued session stays valid. The cookie
// MaxAge set by the login handler matches this.
const sessionTTL = 24 * time.Hour

const issuer = "api-catalog"

// SessionService issues and validates signed session tokens (HS256 JWTs).
//
// The token is stateless: the signature over sub/username/role is the whole
// authorization check, so logout only deletes the client's cookie. The same
// secret signs and verifies; it comes from SECRET_KEY in the environment.
type SessionService struct {
	secret []byte
}

// NewSessionService creates a SessionService with the given signing secret.
func NewSessionService(secret string) (*SessionService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &SessionService{secret: []byte(secret)}, nil
}

// sessionClaims is the JWT payload. Subject holds the user ID; username
// and role ride along so handlers can show the identity without a DB hit.
type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue creates a signed session token for the given user.
//
// The jti (token ID) is an xid — unique per issued session, so individual
// sessions are distinguishable in logs even for the same user.
func (s *SessionService) Issue(user *model.User) (string, error) {
	now := time.Now()

	c := sessionClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a session token string.
//
// The jwt library checks the signature, expiry and issuer; restricting the
// valid methods to HS256 blocks algorithm-confusion tokens.
func (s *SessionService) Validate(tokenStr string) (*Session, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&sessionClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("auth: session expired")
		}
		return nil, fmt.Errorf("auth: invalid session token: %w", err)
	}

	c, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid session claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, fmt.Errorf("auth: session has no usable subject")
	}

	return &Session{
		UserID:   userID,
		Username: c.Username,
		Role:     c.Role,
	}, nil
}
