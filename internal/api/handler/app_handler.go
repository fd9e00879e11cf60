package handler

import (
	"net/http"
	"time"

	"postboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type AppHandler struct {
	startedAt time.Time
}

func NewAppHandler(startedAt time.Time) *AppHandler {
	return &AppHandler{startedAt: startedAt}
}

func (h *AppHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.root)
	r.Get("/health", h.health)
}

func (h *AppHandler) root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Postboard API is running!"))
}

type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

func (h *AppHandler) health(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}
