// Package auth issues and verifies the bearer credential bound to a user id
// and injects the authenticated actor into request context.
//
// Everything past VerifyBearer trusts the actor id; no handler re-derives it.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Actor is the authenticated user injected into r.Context().
type Actor struct {
	ID   primitive.ObjectID
	Name string
}

type ctxKey string

const currentActorKey ctxKey = "currentActor"

// CurrentActor returns the actor and a found flag.
func CurrentActor(r *http.Request) (Actor, bool) {
	a, ok := r.Context().Value(currentActorKey).(Actor)
	return a, ok
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// Manager signs and verifies bearer tokens.
type Manager struct {
	secret []byte
	expiry time.Duration
	log    *zap.Logger
}

// NewManager creates a token Manager. The secret must be non-empty.
func NewManager(secret string, expiry time.Duration, log *zap.Logger) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, apperr.Validation("jwt_secret must be set")
	}
	if expiry <= 0 {
		expiry = 30 * 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), expiry: expiry, log: log}, nil
}

// IssueToken signs a bearer token for the given user.
func (m *Manager) IssueToken(userID primitive.ObjectID, name string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
		Name: name,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// VerifyToken parses and validates a bearer token, returning the actor it is
// bound to.
func (m *Manager) VerifyToken(raw string) (Actor, error) {
	var claims tokenClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthenticated("not authorized, token failed or expired")
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return Actor{}, apperr.Unauthenticated("not authorized, token failed or expired")
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		// Malformed subject in a validly-signed token; fail closed.
		return Actor{}, apperr.Unauthenticated("not authorized, token failed or expired")
	}
	return Actor{ID: id, Name: claims.Name}, nil
}

// RequireBearer authenticates the Authorization header and injects the actor
// into context. Requests without a valid token get 401 and never reach the
// wrapped handler.
func (m *Manager) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			httpjson.Error(w, m.log, apperr.Unauthenticated("not authorized, no token"))
			return
		}
		actor, err := m.VerifyToken(raw)
		if err != nil {
			httpjson.Error(w, m.log, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

// bearerToken extracts a token from the Authorization header, falling back
// to the token query parameter for WebSocket upgrades where browsers cannot
// set headers.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer "), true
	}
	if q := r.URL.Query().Get("token"); q != "" {
		return q, true
	}
	return "", false
}

func withActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, currentActorKey, a)
}

// WithActor injects an actor directly; exported for handler tests.
func WithActor(r *http.Request, a Actor) *http.Request {
	return r.WithContext(withActor(r.Context(), a))
}
