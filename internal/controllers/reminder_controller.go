package controllers

import (
	"net/http"

	"gentil/internal/models"
	"gentil/internal/providers"
	"gentil/internal/reminder"
	"gentil/internal/services"
)

type ReminderController struct {
	logger    providers.Logger
	reminders services.ReminderServiceInterface
}

func NewReminderController(logger providers.Logger, reminders services.ReminderServiceInterface) *ReminderController {
	return &ReminderController{logger: logger, reminders: reminders}
}

type savePreferencesResponse struct {
	Preferences models.NotificationPreferences `json:"preferences"`
	Schedule    services.ScheduleOutcome       `json:"schedule"`
}

type previewResponse struct {
	Triggers []string `json:"triggers"`
}

type pushTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

func (rc *ReminderController) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	prefs, err := rc.reminders.GetPreferences(r.Context(), userID)
	if err != nil {
		writeError(w, r, rc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (rc *ReminderController) SavePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var prefs models.NotificationPreferences
	if !decodeJSON(w, r, &prefs) {
		return
	}
	outcome, err := rc.reminders.SavePreferences(r.Context(), userID, prefs)
	if err != nil {
		writeError(w, r, rc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, savePreferencesResponse{Preferences: prefs, Schedule: outcome})
}

func (rc *ReminderController) Preview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	triggers, err := rc.reminders.Preview(r.Context(), userID)
	if err != nil {
		writeError(w, r, rc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Triggers: formatTriggers(triggers)})
}

// Reschedule re-arms reminders explicitly; unlike saving preferences, a
// missing permission is an error here.
func (rc *ReminderController) Reschedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	plan, err := rc.reminders.Reschedule(r.Context(), userID)
	if err != nil {
		writeError(w, r, rc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Triggers: formatTriggers(plan.Triggers)})
}

func (rc *ReminderController) RegisterToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req pushTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	outcome, err := rc.reminders.RegisterPushToken(r.Context(), models.PushToken{UserID: userID, Token: req.Token, Platform: req.Platform})
	if err != nil {
		writeError(w, r, rc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (rc *ReminderController) RevokeToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := rc.reminders.RevokePushToken(r.Context(), userID); err != nil {
		writeError(w, r, rc.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func formatTriggers(triggers []reminder.Trigger) []string {
	out := make([]string, 0, len(triggers))
	for _, t := range triggers {
		out = append(out, t.String())
	}
	return out
}
