// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthUser is the authenticated caller placed in the request context.
// It is loaded fresh from the user store on every request so role changes
// and disabled accounts take effect immediately.
type AuthUser struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Role  string
}

type ctxKey struct{}

// CurrentUser returns the authenticated user from the request context.
func CurrentUser(r *http.Request) (*AuthUser, bool) {
	u, ok := r.Context().Value(ctxKey{}).(*AuthUser)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing token
// verification. Test-only.
func WithTestUser(r *http.Request, u *AuthUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, u))
}

// Claims is the JWT payload: subject is the user's ObjectID hex, the role
// is embedded so middleware can reject non-admins without a DB round trip,
// and the jti uniquely identifies the token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var errWeakSecret = errors.New("jwt secret must be at least 32 bytes")

// TokenManager issues and verifies bearer tokens and provides the auth
// middleware. Constructed once in bootstrap and shared by all features.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	users  *userstore.Store
	log    *zap.Logger
}

// NewTokenManager validates the signing secret and constructs a TokenManager.
func NewTokenManager(secret string, expiry time.Duration, users *userstore.Store, log *zap.Logger) (*TokenManager, error) {
	if len(secret) < 32 {
		return nil, errWeakSecret
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
		users:  users,
		log:    log,
	}, nil
}

// Issue signs a token for the given user.
func (tm *TokenManager) Issue(u *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Parse verifies a token string and returns its claims.
func (tm *TokenManager) Parse(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

// RequireSignedIn verifies the Authorization bearer token, loads the user
// fresh from the store, and places it in the request context. Disabled
// accounts are rejected even when their token is still valid.
func (tm *TokenManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			uierrors.WriteUnauthorized(w)
			return
		}

		claims, err := tm.Parse(raw)
		if err != nil {
			uierrors.WriteUnauthorized(w)
			return
		}

		uid, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			// Malformed subject in a validly-signed token indicates a bug
			// or key compromise. Fail closed.
			tm.log.Warn("token with malformed subject", zap.String("subject", claims.Subject))
			uierrors.WriteUnauthorized(w)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
		defer cancel()

		u, err := tm.users.GetByID(ctx, uid)
		if err != nil {
			uierrors.WriteUnauthorized(w)
			return
		}
		if u.Status == models.UserDisabled {
			uierrors.WriteForbidden(w)
			return
		}

		authUser := &AuthUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, authUser)))
	})
}

// RequireAdmin rejects requests from non-admin users. It must be mounted
// after RequireSignedIn.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			uierrors.WriteUnauthorized(w)
			return
		}
		if u.Role != models.RoleAdmin {
			uierrors.WriteForbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether the plaintext matches the bcrypt hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
