package handlers

import (
	"net/http"

	"github.com/Dosada05/league-system/middleware"
	"github.com/Dosada05/league-system/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(leagueService services.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: leagueService}
}

// GetLeague handles GET /leagues/{leagueID}.
func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	auth, err := middleware.GetAuthContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.leagueService.GetLeagueView(r.Context(), auth, leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MyLeagues handles GET /leagues/my-leagues.
func (h *LeagueHandler) MyLeagues(w http.ResponseWriter, r *http.Request) {
	auth, err := middleware.GetAuthContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	leagues, err := h.leagueService.ListUserLeagues(r.Context(), auth)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leagues": leagues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
