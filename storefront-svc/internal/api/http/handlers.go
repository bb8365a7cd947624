package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"warung-site/internal/store"
	"warung-site/internal/validation"
	"warung-site/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Menu         service.MenuServiceInterface
	Cart         service.CartServiceInterface
	Reservations service.ReservationServiceInterface
	Contact      service.ContactServiceInterface
	Status       service.StatusServiceInterface
	Now          func() time.Time
}

func NewHandler(
	menuSvc service.MenuServiceInterface,
	cartSvc service.CartServiceInterface,
	reservationSvc service.ReservationServiceInterface,
	contactSvc service.ContactServiceInterface,
	statusSvc service.StatusServiceInterface,
) *Handler {
	return &Handler{
		Menu:         menuSvc,
		Cart:         cartSvc,
		Reservations: reservationSvc,
		Contact:      contactSvc,
		Status:       statusSvc,
		Now:          time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/storefront/menu", h.getMenu).Methods("GET")

	r.HandleFunc("/api/storefront/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/storefront/cart/items/{id}", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/storefront/cart/items/{id}", h.changeCartQuantity).Methods("PATCH")
	r.HandleFunc("/api/storefront/cart/items/{id}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/storefront/checkout", h.checkout).Methods("POST")

	r.HandleFunc("/api/storefront/reservations", h.createReservation).Methods("POST")
	r.HandleFunc("/api/storefront/capacity", h.getCapacity).Methods("GET")
	r.HandleFunc("/api/storefront/contact", h.submitContact).Methods("POST")
	r.HandleFunc("/api/storefront/status", h.getStatus).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	items, err := h.Menu.List(r.Context(), service.MenuFilter{
		Category: query.Get("category"),
		Query:    query.Get("q"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.Cart.View(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.Cart.Add(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) changeCartQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	view, err := h.Cart.ChangeQuantity(r.Context(), mux.Vars(r)["id"], body.Delta)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.Cart.Remove(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	result, err := h.Cart.Checkout(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req service.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	reservation, err := h.Reservations.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) getCapacity(w http.ResponseWriter, r *http.Request) {
	indicator, err := h.Reservations.Capacity(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, indicator)
}

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var msg service.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Contact.Submit(r.Context(), msg); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Status.Status(r.Context(), h.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
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
	case errors.Is(err, service.ErrEmptyCart):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrCapacityExceeded):
		respondJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		log.Printf("[storefront-svc] WARNING: %v", err)
		w.Header().Set("Retry-After", "1")
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "sedang sibuk, silakan coba lagi"})
	default:
		log.Printf("[storefront-svc] request failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
