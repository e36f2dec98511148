package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/league-system/middleware"
	"github.com/Dosada05/league-system/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type scoreInput struct {
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`
}

func (in scoreInput) values() (int, int, error) {
	if in.Score1 == nil || in.Score2 == nil {
		return 0, 0, errors.New("score1 and score2 are required")
	}
	return *in.Score1, *in.Score2, nil
}

// MyMatches handles GET /matches/my-matches.
func (h *MatchHandler) MyMatches(w http.ResponseWriter, r *http.Request) {
	auth, err := middleware.GetAuthContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	matches, err := h.matchService.ListUserMatches(r.Context(), auth)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReportScore handles POST /matches/{matchID}/score.
func (h *MatchHandler) ReportScore(w http.ResponseWriter, r *http.Request) {
	auth, err := middleware.GetAuthContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	score1, score2, err := input.values()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ReportScore(r.Context(), auth, matchID, score1, score2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EditScore handles PUT /matches/{matchID}/score.
func (h *MatchHandler) EditScore(w http.ResponseWriter, r *http.Request) {
	auth, err := middleware.GetAuthContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	score1, score2, err := input.values()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.EditScore(r.Context(), auth, matchID, score1, score2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteScore handles DELETE /matches/{matchID}/score.
func (h *MatchHandler) DeleteScore(w http.ResponseWriter, r *http.Request) {
	auth, err := middleware.GetAuthContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.DeleteScore(r.Context(), auth, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
