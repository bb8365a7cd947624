package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"warung-site/notify-svc/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const (
	defaultRecent = 20
	maxRecent     = storage.LogLimit
)

type RecentReader interface {
	Recent(ctx context.Context, limit int) ([]storage.Notification, error)
}

type Handler struct {
	Log  RecentReader
	Feed http.HandlerFunc
}

func NewHandler(logReader RecentReader, feed http.HandlerFunc) *Handler {
	return &Handler{Log: logReader, Feed: feed}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/notify/recent", h.getRecent).Methods("GET")
	if h.Feed != nil {
		r.HandleFunc("/ws/notifications", h.Feed)
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "notify-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// getRecent returns the newest delivered notifications. limit defaults to 20
// and is capped at the log size.
func (h *Handler) getRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecent
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRecent)
	}

	items, err := h.Log.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("[notify-svc] request failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.Default().Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Notification Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
