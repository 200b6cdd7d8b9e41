package controllers

import (
	"net/http"

	"gentil/internal/auth"
	"gentil/internal/providers"
	"gentil/internal/services"
)

type StreakController struct {
	logger  providers.Logger
	streaks services.StreakServiceInterface
}

func NewStreakController(logger providers.Logger, streaks services.StreakServiceInterface) *StreakController {
	return &StreakController{logger: logger, streaks: streaks}
}

type streakResponse struct {
	CurrentStreak int `json:"current_streak"`
}

// Get reports 0 for anonymous callers.
func (sc *StreakController) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	n, err := sc.streaks.GetStreak(r.Context(), userID)
	if err != nil {
		writeError(w, r, sc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, streakResponse{CurrentStreak: n})
}

func (sc *StreakController) RecordActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	rec, err := sc.streaks.RecordActivity(r.Context(), userID)
	if err != nil {
		writeError(w, r, sc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
