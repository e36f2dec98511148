package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/league-system/models"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const authContextKey contextKey = "auth"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

var ErrNoAuthContext = errors.New("auth context not found in request context")

// Authenticate verifies the session token from the cookie (or a bearer
// header) and attaches an immutable models.AuthContext to the request
// context. Requests without a valid token get 401.
func Authenticate(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				unauthorized(w, "no token provided")
				return
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return jwtSecret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w, "invalid token payload")
				return
			}

			auth, err := authContextFromClaims(claims)
			if err != nil {
				unauthorized(w, "invalid token payload")
				return
			}

			ctx := context.WithValue(r.Context(), authContextKey, auth)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthContext returns the caller identity attached by Authenticate.
func GetAuthContext(ctx context.Context) (models.AuthContext, error) {
	auth, ok := ctx.Value(authContextKey).(models.AuthContext)
	if !ok {
		return models.AuthContext{}, ErrNoAuthContext
	}
	return auth, nil
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func authContextFromClaims(claims jwt.MapClaims) (models.AuthContext, error) {
	idClaim, ok := claims["user_id"]
	if !ok {
		return models.AuthContext{}, errors.New("missing 'user_id' claim")
	}
	idFloat, ok := idClaim.(float64)
	if !ok || idFloat != float64(int(idFloat)) || int(idFloat) <= 0 {
		return models.AuthContext{}, errors.New("invalid 'user_id' claim")
	}

	privileges := models.PrivilegesUser
	if raw, ok := claims["privileges"].(string); ok {
		switch models.UserPrivileges(raw) {
		case models.PrivilegesUser, models.PrivilegesAdmin:
			privileges = models.UserPrivileges(raw)
		default:
			return models.AuthContext{}, errors.New("invalid 'privileges' claim")
		}
	}

	name, _ := claims["name"].(string)

	return models.AuthContext{
		UserID:     int(idFloat),
		Name:       name,
		Privileges: privileges,
	}, nil
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "unauthorized: ` + message + `"}` + "\n"))
}
