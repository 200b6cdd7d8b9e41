package controllers

import (
	"net/http"

	"gentil/internal/models"
	"gentil/internal/providers"
	"gentil/internal/services"
)

type OnboardingController struct {
	logger   providers.Logger
	drafts   services.DraftServiceInterface
	profiles services.ProfileServiceInterface
}

func NewOnboardingController(logger providers.Logger, drafts services.DraftServiceInterface, profiles services.ProfileServiceInterface) *OnboardingController {
	return &OnboardingController{logger: logger, drafts: drafts, profiles: profiles}
}

type onboardingResponse struct {
	Responses  models.OnboardingResponses `json:"responses"`
	Completed  bool                       `json:"completed"`
	Completion int                        `json:"completion"`
}

type appPreferencesResponse struct {
	Preferences models.AppPreferences `json:"preferences"`
	Palette     models.ThemePalette   `json:"palette"`
}

func (oc *OnboardingController) state(userID string) onboardingResponse {
	return onboardingResponse{
		Responses:  oc.drafts.Responses(userID),
		Completed:  oc.drafts.Completed(userID),
		Completion: oc.drafts.CompletionPercent(userID),
	}
}

func (oc *OnboardingController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, oc.state(userID))
}

func (oc *OnboardingController) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var responses models.OnboardingResponses
	if !decodeJSON(w, r, &responses) {
		return
	}
	oc.drafts.SaveResponses(userID, responses)
	writeJSON(w, http.StatusOK, oc.state(userID))
}

func (oc *OnboardingController) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	oc.drafts.Reset(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (oc *OnboardingController) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	res, err := oc.profiles.SyncOnboarding(r.Context(), userID)
	if err != nil {
		writeError(w, r, oc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (oc *OnboardingController) GetAppPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	prefs := oc.drafts.AppPreferences(userID)
	writeJSON(w, http.StatusOK, appPreferencesResponse{Preferences: prefs, Palette: models.PaletteFor(prefs.ThemeMode)})
}

func (oc *OnboardingController) SaveAppPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var patch models.AppPreferencesPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	prefs, err := oc.drafts.SaveAppPreferences(userID, patch)
	if err != nil {
		writeError(w, r, oc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appPreferencesResponse{Preferences: prefs, Palette: models.PaletteFor(prefs.ThemeMode)})
}

func (oc *OnboardingController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	p, err := oc.profiles.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, oc.logger, err)
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}
