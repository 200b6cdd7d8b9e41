package controllers

import (
	"fmt"
	"net/http"
	"time"

	"gentil/internal/notify"
	"gentil/internal/services"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	drafts    services.DraftServiceInterface
	hub       notify.HubInterface
	startTime time.Time
}

type healthResponse struct {
	Status            string  `json:"status"`
	Uptime            string  `json:"uptime"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
	Drafts            int     `json:"drafts"`
	ArmedTriggers     int     `json:"armed_triggers"`
	NotificationsSent int64   `json:"notifications_sent"`
	NotificationsFail int64   `json:"notifications_failed"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:            "ok",
		Uptime:            formatDuration(uptime),
		UptimeSeconds:     uptime.Seconds(),
		Drafts:            hc.drafts.Count(),
		ArmedTriggers:     hc.hub.ArmedTotal(),
		NotificationsSent: hc.hub.Sent(),
		NotificationsFail: hc.hub.Failed(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(drafts services.DraftServiceInterface, hub notify.HubInterface) *HealthController {
	return &HealthController{
		drafts:    drafts,
		hub:       hub,
		startTime: time.Now(),
	}
}
