package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"warung-site/admin-svc/internal/service"
	"warung-site/internal/domain"
	"warung-site/internal/store"
	"warung-site/internal/validation"

	"github.com/gorilla/mux"
)

type Handler struct {
	Auth         service.AuthServiceInterface
	Dashboard    service.DashboardServiceInterface
	Reservations service.ReservationServiceInterface
	Orders       service.OrderServiceInterface
	Menu         service.MenuServiceInterface
	Settings     service.SettingsServiceInterface
}

func NewHandler(
	authSvc service.AuthServiceInterface,
	dashboardSvc service.DashboardServiceInterface,
	reservationSvc service.ReservationServiceInterface,
	orderSvc service.OrderServiceInterface,
	menuSvc service.MenuServiceInterface,
	settingsSvc service.SettingsServiceInterface,
) *Handler {
	return &Handler{
		Auth:         authSvc,
		Dashboard:    dashboardSvc,
		Reservations: reservationSvc,
		Orders:       orderSvc,
		Menu:         menuSvc,
		Settings:     settingsSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/admin/login", h.login).Methods("POST")

	api := r.PathPrefix("/api/admin").Subrouter()
	api.Use(RequireSession(h.Auth))

	api.HandleFunc("/logout", h.logout).Methods("POST")
	api.HandleFunc("/session", h.getSession).Methods("GET")
	api.HandleFunc("/dashboard", h.getDashboard).Methods("GET")

	api.HandleFunc("/reservations", h.listReservations).Methods("GET")
	api.HandleFunc("/reservations/{id}", h.getReservation).Methods("GET")
	api.HandleFunc("/reservations/{id}/confirm", h.confirmReservation).Methods("POST")
	api.HandleFunc("/reservations/{id}/cancel", h.cancelReservation).Methods("POST")

	api.HandleFunc("/orders", h.listOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/advance", h.advanceOrder).Methods("POST")
	api.HandleFunc("/orders/{id}/cancel", h.cancelOrder).Methods("POST")

	api.HandleFunc("/menu", h.listMenu).Methods("GET")
	api.HandleFunc("/menu", h.createMenuItem).Methods("POST")
	api.HandleFunc("/menu/{id}", h.renameMenuItem).Methods("PATCH")
	api.HandleFunc("/menu/{id}", h.deleteMenuItem).Methods("DELETE")

	api.HandleFunc("/settings/hours", h.getHours).Methods("GET")
	api.HandleFunc("/settings/hours", h.updateHours).Methods("PUT")
	api.HandleFunc("/settings/info", h.getInfo).Methods("GET")
	api.HandleFunc("/settings/info", h.updateInfo).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "admin-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if req.Remember {
		cookie.Expires = result.ExpiresAt
	}
	http.SetCookie(w, cookie)
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), tokenFromContext(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, session)
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Dashboard.Load(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

func listFilter(r *http.Request) service.ListFilter {
	query := r.URL.Query()
	return service.ListFilter{Status: query.Get("status"), Query: query.Get("q")}
}

func (h *Handler) listReservations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Reservations.List(r.Context(), listFilter(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.Reservations.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reservation)
}

func (h *Handler) confirmReservation(w http.ResponseWriter, r *http.Request) {
	list, err := h.Reservations.Confirm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	list, err := h.Reservations.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.Orders.List(r.Context(), listFilter(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	list, err := h.Orders.Advance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	list, err := h.Orders.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req service.NewMenuItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	item, err := h.Menu.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handler) renameMenuItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	items, err := h.Menu.Rename(r.Context(), mux.Vars(r)["id"], body.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) getHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.Settings.Hours(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, hours)
}

func (h *Handler) updateHours(w http.ResponseWriter, r *http.Request) {
	var hours domain.OperatingHours
	if err := json.NewDecoder(r.Body).Decode(&hours); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	saved, err := h.Settings.UpdateHours(r.Context(), hours)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (h *Handler) getInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Settings.Info(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (h *Handler) updateInfo(w http.ResponseWriter, r *http.Request) {
	var info domain.RestaurantInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	saved, err := h.Settings.UpdateInfo(r.Context(), info)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  fieldErrs.Error(),
			"fields": fieldErrs,
		})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		log.Printf("[admin-svc] WARNING: %v", err)
		w.Header().Set("Retry-After", "1")
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "sedang sibuk, silakan coba lagi"})
	default:
		log.Printf("[admin-svc] request failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
