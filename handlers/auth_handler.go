package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/league-system/middleware"
	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/services"
	"github.com/golang-jwt/jwt/v4"
)

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	authService  services.AuthService
	jwtSecret    []byte
	secureCookie bool
}

func NewAuthHandler(authService services.AuthService, jwtSecret string, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		jwtSecret:    []byte(jwtSecret),
		secureCookie: secureCookie,
	}
}

// Callback handles GET /auth/callback?token=... — the identity-provider
// redirect target. The raw ID token is verified, the user provisioned on
// first login, and a session cookie issued.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	rawToken := r.URL.Query().Get("token")
	if rawToken == "" {
		badRequestResponse(w, r, errors.New("token query parameter is required"))
		return
	}

	user, err := h.authService.LoginWithIDToken(r.Context(), rawToken)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := h.issueSession(w, user); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Login handles POST /auth/login for local email/password accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	user, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := h.issueSession(w, user); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Logout handles POST /auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, user *models.User) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"privileges": user.Privileges,
		"name":       user.Name,
		"exp":        now.Add(sessionTTL).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    tokenString,
		Path:     "/",
		Expires:  now.Add(sessionTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
