package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/backend/internal/common/clock"
	"github.com/taskboard/backend/internal/observability/metrics"
)

// Identity is the authenticated caller carried by a session token.
type Identity struct {
	UserID   string
	Username string
}

// Codec issues and verifies signed, time-limited session tokens. Rotating the
// signing key invalidates every outstanding session.
type Codec struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewCodec(secret string, ttl time.Duration, clk clock.Clock) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

func (c *Codec) Issue(userID, username string) (string, time.Time, error) {
	now := c.clock.Now()
	expiresAt := now.Add(c.ttl)
	claims := jwt.MapClaims{
		"sub": userID,
		"usr": username,
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	metrics.SessionTokensIssued.Inc()
	return tokenString, expiresAt, nil
}

// Verify fails closed: a malformed, expired, or signature-mismatched token
// yields ok=false. Callers must treat an invalid token exactly like an absent
// one.
func (c *Codec) Verify(tokenString string) (Identity, bool) {
	if tokenString == "" {
		return Identity{}, false
	}

	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, jwt.ErrSignatureInvalid
			}
			return c.secret, nil
		},
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, false
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, false
	}

	sub, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["usr"].(string)
	if sub == "" || username == "" {
		return Identity{}, false
	}

	return Identity{
		UserID:   sub,
		Username: username,
	}, true
}
