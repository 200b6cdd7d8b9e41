package controllers

import (
	"net/http"

	"gentil/internal/providers"
	"gentil/internal/services"
)

type DashboardController struct {
	logger    providers.Logger
	dashboard services.DashboardServiceInterface
}

func NewDashboardController(logger providers.Logger, dashboard services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{logger: logger, dashboard: dashboard}
}

func (dc *DashboardController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	d, err := dc.dashboard.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, dc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
