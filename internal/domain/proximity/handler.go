package proximity

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"pet-donor-connect/internal/domain/geo"
	"pet-donor-connect/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el mapa de donantes. defaultRadiusKm se usa
// cuando el cliente no manda radius_km; si es <= 0 se cae a 10 km.
func RegisterRoutes(r chi.Router, svc *Service, defaultRadiusKm float64) {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 10 // default razonable para búsqueda urbana
	}
	r.Route("/nearby", func(nr chi.Router) {
		nr.Get("/pets", nearbyPetsHandler(svc, defaultRadiusKm))
	})
}

type markerResponse struct {
	PetID       string  `json:"pet_id"`
	OwnerUserID string  `json:"owner_user_id"`
	Name        string  `json:"name"`
	Species     string  `json:"species"`
	BloodType   string  `json:"blood_type"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

func nearbyPetsHandler(svc *Service, defaultRadiusKm float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		lat, err1 := strconv.ParseFloat(q.Get("lat"), 64)
		lng, err2 := strconv.ParseFloat(q.Get("lng"), 64)
		if err1 != nil || err2 != nil {
			http.Error(w, "lat and lng are required numbers", http.StatusBadRequest)
			return
		}

		radiusKm := defaultRadiusKm
		if raw := strings.TrimSpace(q.Get("radius_km")); raw != "" {
			radiusKm, err1 = strconv.ParseFloat(raw, 64)
			if err1 != nil || radiusKm < 0 {
				http.Error(w, "radius_km must be a non-negative number", http.StatusBadRequest)
				return
			}
		}

		markers, err := svc.Nearby(r.Context(), geo.Point{Lat: lat, Lng: lng}, radiusKm)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]markerResponse, 0, len(markers))
		for _, m := range markers {
			out = append(out, markerResponse{
				PetID:       m.PetID,
				OwnerUserID: m.OwnerUserID,
				Name:        m.Name,
				Species:     m.Species,
				BloodType:   m.BloodType,
				Lat:         m.Location.Lat,
				Lng:         m.Location.Lng,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
