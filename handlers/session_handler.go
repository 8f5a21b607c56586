package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shuttlehub/club-system/rotation"
	"github.com/shuttlehub/club-system/services"
)

type SessionHandler struct {
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSessionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	session, err := h.sessionService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	sessions, err := h.sessionService.List(r.Context(), limit, offset)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"sessions": sessions}, nil)
}

func (h *SessionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.GetByID(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) GetLive(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.GetLive(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.Start(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.End(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.AutoAssign(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"session":         result.Session,
		"courts_filled":   result.CourtsFilled,
		"players_waiting": result.PlayersWaiting,
	}, nil)
}

type completeMatchRequest struct {
	Scores          [2]int `json:"scores"`
	WinnerTeamIndex int    `json:"winner_team_index"`
}

func (h *SessionHandler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	courtNumber, err := courtNumberParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input completeMatchRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.sessionService.CompleteMatch(r.Context(),
		chi.URLParam(r, "sessionID"), courtNumber, input.Scores, input.WinnerTeamIndex)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"session":         result.Session,
		"completed_match": result.Completed,
		"next_match":      result.Next,
	}, nil)
}

type substituteRequest struct {
	PlayerOutID string `json:"player_out_id"`
	PlayerInID  string `json:"player_in_id"`
}

func (h *SessionHandler) SubstitutePlayer(w http.ResponseWriter, r *http.Request) {
	courtNumber, err := courtNumberParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input substituteRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	session, err := h.sessionService.SubstitutePlayer(r.Context(),
		chi.URLParam(r, "sessionID"), courtNumber, input.PlayerOutID, input.PlayerInID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	session, err := h.sessionService.AddPlayer(r.Context(), chi.URLParam(r, "sessionID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) PausePlayer(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.PausePlayer(r.Context(),
		chi.URLParam(r, "sessionID"), chi.URLParam(r, "playerID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) ResumePlayer(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.ResumePlayer(r.Context(),
		chi.URLParam(r, "sessionID"), chi.URLParam(r, "playerID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) AddCourt(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.AddCourt(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) RemoveCourt(w http.ResponseWriter, r *http.Request) {
	courtNumber, err := courtNumberParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	session, err := h.sessionService.RemoveCourt(r.Context(), chi.URLParam(r, "sessionID"), courtNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

type resetRatingsRequest struct {
	Scope     string `json:"scope"`
	Confirmed bool   `json:"confirmed"`
}

func (h *SessionHandler) ResetRatings(w http.ResponseWriter, r *http.Request) {
	var input resetRatingsRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	session, err := h.sessionService.ResetRatings(r.Context(),
		chi.URLParam(r, "sessionID"), rotation.ResetScope(input.Scope), input.Confirmed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil)
}

func (h *SessionHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.sessionService.Rankings(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"rankings": rankings}, nil)
}

func courtNumberParam(r *http.Request) (int, error) {
	courtNumber, err := strconv.Atoi(chi.URLParam(r, "courtNumber"))
	if err != nil || courtNumber < 1 {
		return 0, errors.New("court number must be a positive integer")
	}
	return courtNumber, nil
}
