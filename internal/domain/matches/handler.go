package matches

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-donor-connect/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/matches", func(mr chi.Router) {
		mr.Post("/confirm", confirmMatchHandler(svc))
		mr.Get("/", listMatchesHandler(svc))
		mr.Delete("/{matchID}", removeMatchHandler(svc))
	})
}

type confirmMatchRequest struct {
	SenderUserID string `json:"sender_user_id"`
}

type matchResponse struct {
	ID        string    `json:"id"`
	UserAID   string    `json:"user_a_id"`
	UserBID   string    `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

type counterpartSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type counterpartPet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	BloodType string `json:"blood_type"`
}

type matchDetailResponse struct {
	MatchID     string             `json:"match_id"`
	CreatedAt   time.Time          `json:"created_at"`
	Counterpart counterpartSummary `json:"counterpart"`
	Pets        []counterpartPet   `json:"pets"`
}

func confirmMatchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req confirmMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Confirm(r.Context(), claims.UserID, req.SenderUserID)
		if err != nil {
			switch err {
			case ErrInvalidInput, ErrAlreadyMatched:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, matchResponse{
			ID:        m.ID,
			UserAID:   m.UserAID,
			UserBID:   m.UserBID,
			CreatedAt: m.CreatedAt,
		})
	}
}

func listMatchesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]matchDetailResponse, 0, len(items))
		for _, d := range items {
			pets := make([]counterpartPet, 0, len(d.Pets))
			for _, p := range d.Pets {
				pets = append(pets, counterpartPet{
					ID:        p.ID,
					Name:      p.Name,
					Species:   string(p.Species),
					Breed:     p.Breed,
					BloodType: string(p.BloodType),
				})
			}
			out = append(out, matchDetailResponse{
				MatchID:   d.MatchID,
				CreatedAt: d.CreatedAt,
				Counterpart: counterpartSummary{
					ID:          d.Counterpart.ID,
					DisplayName: d.Counterpart.DisplayName,
					Email:       d.Counterpart.Email,
					Phone:       d.Counterpart.Phone,
					Address:     d.Counterpart.Address,
				},
				Pets: pets,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func removeMatchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		matchID := chi.URLParam(r, "matchID")
		if err := svc.Remove(r.Context(), matchID, claims.UserID); err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "match not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
