package connections

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-donor-connect/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/connections", func(cr chi.Router) {
		cr.Post("/", createRequestHandler(svc))
		// Lado del sender: qué solicitudes tengo abiertas.
		cr.Get("/sent", listSentHandler(svc))
	})
}

type createRequestRequest struct {
	RecipientUserID string `json:"recipient_user_id"`
	PetID           string `json:"pet_id"`
}

type connectionRequestResponse struct {
	ID              string    `json:"id"`
	SenderUserID    string    `json:"sender_user_id"`
	RecipientUserID string    `json:"recipient_user_id"`
	PetID           string    `json:"pet_id"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func createRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		cr, err := svc.Create(r.Context(), claims.UserID, req.RecipientUserID, req.PetID)
		if err != nil {
			switch err {
			case ErrInvalidInput, ErrSelfConnection, ErrDuplicateRequest:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toConnectionRequestResponse(cr))
	}
}

func listSentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListBySender(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]connectionRequestResponse, 0, len(items))
		for _, cr := range items {
			out = append(out, toConnectionRequestResponse(cr))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toConnectionRequestResponse(cr ConnectionRequest) connectionRequestResponse {
	return connectionRequestResponse{
		ID:              cr.ID,
		SenderUserID:    cr.SenderUserID,
		RecipientUserID: cr.RecipientUserID,
		PetID:           cr.PetID,
		Status:          cr.Status,
		CreatedAt:       cr.CreatedAt,
		UpdatedAt:       cr.UpdatedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
