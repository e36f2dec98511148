package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

type googleTokenVerifier struct {
	clientID   string
	httpClient *http.Client
	endpoint   string
}

// NewGoogleTokenVerifier verifies Google ID tokens against the tokeninfo
// endpoint and checks the audience and expiry.
func NewGoogleTokenVerifier(clientID string) TokenVerifier {
	return &googleTokenVerifier{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   googleTokenInfoURL,
	}
}

func (v *googleTokenVerifier) VerifyIDToken(ctx context.Context, rawToken string) (*IdentityClaims, error) {
	if rawToken == "" {
		return nil, errors.New("empty token")
	}

	reqURL := v.endpoint + "?id_token=" + url.QueryEscape(rawToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo rejected token: status %d", resp.StatusCode)
	}

	var payload struct {
		Aud     string `json:"aud"`
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Expires string `json:"exp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if payload.Aud != v.clientID {
		return nil, errors.New("token audience mismatch")
	}
	if exp, err := strconv.ParseInt(payload.Expires, 10, 64); err != nil || time.Now().Unix() >= exp {
		return nil, errors.New("token expired")
	}

	return &IdentityClaims{
		Subject: payload.Sub,
		Email:   payload.Email,
		Name:    payload.Name,
	}, nil
}
