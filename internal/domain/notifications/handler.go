package notifications

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-donor-connect/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/notifications", func(nr chi.Router) {
		nr.Get("/", listNotificationsHandler(svc))
		nr.Delete("/", dismissAllHandler(svc))
		nr.Delete("/{notificationID}", dismissHandler(svc))
	})
}

type notificationResponse struct {
	ID              string    `json:"id"`
	RecipientUserID string    `json:"recipient_user_id"`
	SenderUserID    string    `json:"sender_user_id"`
	Message         string    `json:"message"`
	CreatedAt       time.Time `json:"created_at"`
}

func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toNotificationResponse(n))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func dismissHandler(svc *Service) http.HandlerFunc {
	// Idempotente: un id ya eliminado responde 200 igual.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id := chi.URLParam(r, "notificationID")
		if err := svc.Dismiss(r.Context(), claims.UserID, id); err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
	}
}

func dismissAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.DismissAll(r.Context(), claims.UserID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}

func toNotificationResponse(n Notification) notificationResponse {
	return notificationResponse{
		ID:              n.ID,
		RecipientUserID: n.RecipientUserID,
		SenderUserID:    n.SenderUserID,
		Message:         n.Message,
		CreatedAt:       n.CreatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (misma decisión que en pets/connections): todavía no amerita un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
