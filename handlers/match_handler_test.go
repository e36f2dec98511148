package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/league-system/middleware"
	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWTSecret = []byte("handler-test-secret")

// stubMatchService returns canned results so the tests can focus on the HTTP
// mapping: routing, body decoding and error-to-status translation.
type stubMatchService struct {
	match *models.Match
	err   error

	gotAuth  models.AuthContext
	gotID    int
	gotScore [2]int
}

func (s *stubMatchService) ReportScore(ctx context.Context, auth models.AuthContext, matchID, score1, score2 int) (*models.Match, error) {
	s.gotAuth, s.gotID, s.gotScore = auth, matchID, [2]int{score1, score2}
	return s.match, s.err
}

func (s *stubMatchService) EditScore(ctx context.Context, auth models.AuthContext, matchID, score1, score2 int) (*models.Match, error) {
	s.gotAuth, s.gotID, s.gotScore = auth, matchID, [2]int{score1, score2}
	return s.match, s.err
}

func (s *stubMatchService) DeleteScore(ctx context.Context, auth models.AuthContext, matchID int) (*models.Match, error) {
	s.gotAuth, s.gotID = auth, matchID
	return s.match, s.err
}

func (s *stubMatchService) ListUserMatches(ctx context.Context, auth models.AuthContext) ([]*models.Match, error) {
	s.gotAuth = auth
	if s.err != nil {
		return nil, s.err
	}
	return []*models.Match{s.match}, nil
}

func newMatchRouter(svc services.MatchService) *chi.Mux {
	handler := NewMatchHandler(svc)
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testJWTSecret))
		r.Get("/matches/my-matches", handler.MyMatches)
		r.Post("/matches/{matchID}/score", handler.ReportScore)
		r.Put("/matches/{matchID}/score", handler.EditScore)
		r.Delete("/matches/{matchID}/score", handler.DeleteScore)
	})
	return router
}

func authedRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    float64(1),
		"privileges": "USER",
		"name":       "Alice",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString(testJWTSecret)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	return req
}

func decidedTestMatch() *models.Match {
	return &models.Match{
		ID:        5,
		LeagueID:  10,
		Player1ID: 1,
		Player2ID: 2,
		Round:     1,
		Result:    models.NewMatchResult(2, 1, time.Now()),
	}
}

func TestReportScoreHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubMatchService{match: decidedTestMatch()}
		rec := httptest.NewRecorder()
		newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodPost, "/matches/5/score", `{"score1": 2, "score2": 1}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, svc.gotAuth.UserID)
		assert.Equal(t, 5, svc.gotID)
		assert.Equal(t, [2]int{2, 1}, svc.gotScore)

		var body struct {
			Success bool          `json:"success"`
			Match   *models.Match `json:"match"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		require.NotNil(t, body.Match.Result)
		assert.Equal(t, models.OutcomePlayer1Wins, body.Match.Result.Outcome)
	})

	t.Run("no session", func(t *testing.T) {
		svc := &stubMatchService{match: decidedTestMatch()}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/matches/5/score", strings.NewReader(`{"score1": 2, "score2": 1}`))
		newMatchRouter(svc).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad match id", func(t *testing.T) {
		svc := &stubMatchService{}
		rec := httptest.NewRecorder()
		newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodPost, "/matches/abc/score", `{"score1": 2, "score2": 1}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing score field", func(t *testing.T) {
		svc := &stubMatchService{}
		rec := httptest.NewRecorder()
		newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodPost, "/matches/5/score", `{"score1": 2}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-integer score", func(t *testing.T) {
		svc := &stubMatchService{}
		rec := httptest.NewRecorder()
		newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodPost, "/matches/5/score", `{"score1": 1.5, "score2": 1}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service errors map to status codes", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			want int
		}{
			{"validation", services.ErrScoreTotalTooHigh, http.StatusBadRequest},
			{"not a participant", services.ErrNotMatchParticipant, http.StatusForbidden},
			{"not found", services.ErrMatchNotFound, http.StatusNotFound},
			{"already decided", services.ErrMatchAlreadyDecided, http.StatusConflict},
			{"infrastructure", assert.AnError, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := &stubMatchService{err: tc.err}
				rec := httptest.NewRecorder()
				newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodPost, "/matches/5/score", `{"score1": 2, "score2": 1}`))
				assert.Equal(t, tc.want, rec.Code)
			})
		}
	})
}

func TestEditScoreHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubMatchService{match: decidedTestMatch()}
		rec := httptest.NewRecorder()
		newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodPut, "/matches/5/score", `{"score1": 1, "score2": 2}`))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, [2]int{1, 2}, svc.gotScore)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := &stubMatchService{err: services.ErrForbiddenOperation}
		rec := httptest.NewRecorder()
		newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodPut, "/matches/5/score", `{"score1": 1, "score2": 2}`))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDeleteScoreHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		match := decidedTestMatch()
		match.Result = nil
		svc := &stubMatchService{match: match}
		rec := httptest.NewRecorder()
		newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/matches/5/score", ""))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5, svc.gotID)
	})

	t.Run("nothing to delete", func(t *testing.T) {
		svc := &stubMatchService{err: services.ErrMatchNotDecided}
		rec := httptest.NewRecorder()
		newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/matches/5/score", ""))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMyMatchesHandler(t *testing.T) {
	svc := &stubMatchService{match: decidedTestMatch()}
	rec := httptest.NewRecorder()
	newMatchRouter(svc).ServeHTTP(rec, authedRequest(t, http.MethodGet, "/matches/my-matches", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Matches []*models.Match `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Matches, 1)
	assert.Equal(t, 5, body.Matches[0].ID)
}
