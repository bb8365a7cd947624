package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"warung-site/internal/validation"
	"warung-site/payment-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Payments service.PaymentServiceInterface
}

func NewHandler(paymentSvc service.PaymentServiceInterface) *Handler {
	return &Handler{Payments: paymentSvc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/payment/summary", h.getSummary).Methods("GET")
	r.HandleFunc("/api/payment/countdowns", h.startCountdown).Methods("POST")
	r.HandleFunc("/api/payment/countdowns/{id}", h.getCountdown).Methods("GET")
	r.HandleFunc("/api/payment/countdowns/{id}/pay", h.pay).Methods("POST")
	r.HandleFunc("/api/payment/qrcode", h.getQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "payment-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Payments.Summary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) startCountdown(w http.ResponseWriter, r *http.Request) {
	countdown, err := h.Payments.StartCountdown(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, countdown)
}

func (h *Handler) getCountdown(w http.ResponseWriter, r *http.Request) {
	countdown, err := h.Payments.Countdown(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, countdown)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	var req service.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	receipt, err := h.Payments.Pay(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

func (h *Handler) getQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Payments.QRCode(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
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
	case errors.Is(err, service.ErrPaymentExpired):
		respondJSON(w, http.StatusGone, map[string]string{"error": err.Error()})
	default:
		log.Printf("[payment-svc] request failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
