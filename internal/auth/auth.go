package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/amontoya/webawards/internal/models"
)

// DefaultTokenTTL is how long an issued token stays valid
const DefaultTokenTTL = 24 * time.Hour

// Claims is the JWT payload carried by every issued token
type Claims struct {
	UserID int              `json:"user_id"`
	Kind   models.VoterKind `json:"kind"`
	jwt.RegisteredClaims
}

// VoterStore checks that a token still maps to a live account, so that
// tokens of deleted accounts stop working immediately.
type VoterStore interface {
	VoterExists(ctx context.Context, voter models.VoterRef) (bool, error)
}

// Manager issues and verifies bearer tokens
type Manager struct {
	secret []byte
	ttl    time.Duration
	store  VoterStore
}

// NewManager creates a token manager. store may be nil, in which case
// tokens are trusted on signature alone.
func NewManager(secret string, ttl time.Duration, store VoterStore) *Manager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, store: store}
}

// Issue signs a token for the given voter
func (m *Manager) Issue(voter models.VoterRef) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: voter.ID,
		Kind:   voter.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token, returning the voter it names
func (m *Manager) Verify(token string) (models.VoterRef, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return models.VoterRef{}, err
	}
	if !parsed.Valid || !claims.Kind.Valid() {
		return models.VoterRef{}, jwt.ErrTokenInvalidClaims
	}
	return models.VoterRef{Kind: claims.Kind, ID: claims.UserID}, nil
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type contextKey int

const voterKey contextKey = iota

// WithVoter stores the authenticated voter on the context
func WithVoter(ctx context.Context, voter models.VoterRef) context.Context {
	return context.WithValue(ctx, voterKey, voter)
}

// VoterFrom retrieves the authenticated voter from the context
func VoterFrom(ctx context.Context) (models.VoterRef, bool) {
	voter, ok := ctx.Value(voterKey).(models.VoterRef)
	return voter, ok
}

// Authenticate middleware requires a valid bearer token and stashes the
// voter on the request context.
func (m *Manager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		voter, ok := m.authenticate(r)
		if !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithVoter(r.Context(), voter)))
	})
}

// RequireKind middleware restricts a route to one voter kind. It must
// run after Authenticate.
func RequireKind(kind models.VoterKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			voter, ok := VoterFrom(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if voter.Kind != kind {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"code":"FORBIDDEN","error":"insufficient permissions"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuthenticate resolves the voter when a valid token is present
// but lets anonymous requests through.
func (m *Manager) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if voter, ok := m.authenticate(r); ok {
			r = r.WithContext(WithVoter(r.Context(), voter))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Manager) authenticate(r *http.Request) (models.VoterRef, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return models.VoterRef{}, false
	}
	voter, err := m.Verify(token)
	if err != nil {
		return models.VoterRef{}, false
	}
	if m.store != nil {
		exists, err := m.store.VoterExists(r.Context(), voter)
		if err != nil || !exists {
			return models.VoterRef{}, false
		}
	}
	return voter, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Unauthorized - please log in"}`))
}
