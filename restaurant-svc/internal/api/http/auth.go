package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/service"

	"github.com/golang-jwt/jwt/v5"
)

type identityKey struct{}

// Claims are the bearer token claims issued by the identity provider.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	Secret   []byte
	Profiles service.ProfileServiceInterface
}

func NewAuthenticator(secret string, profiles service.ProfileServiceInterface) *Authenticator {
	return &Authenticator{Secret: []byte(secret), Profiles: profiles}
}

func IssueToken(secret string, user domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (a *Authenticator) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Middleware attaches the caller identity to the request context. Requests
// without an Authorization header continue as anonymous; services decide
// whether that is enough.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "authorization header must use the Bearer scheme")
			return
		}
		claims, err := a.ParseToken(strings.TrimSpace(tokenString))
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}

		identity, err := a.Profiles.Resolve(r.Context(), domain.User{
			ID:       claims.UserID,
			Username: claims.Username,
			IsAdmin:  claims.IsAdmin,
		})
		if err != nil {
			WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) domain.Identity {
	id, _ := ctx.Value(identityKey{}).(domain.Identity)
	return id
}
