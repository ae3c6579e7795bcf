package proximity

import (
	"context"
	"errors"
	"strings"

	"pet-donor-connect/internal/domain/geo"
	"pet-donor-connect/internal/domain/pets"
	"pet-donor-connect/internal/platform/logger"
	"pet-donor-connect/internal/ports/geocode"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// PetSource entrega el working set de candidatos (interface local para
// no acoplar al storage; lo satisface pets.Service).
type PetSource interface {
	ListAll(ctx context.Context) ([]pets.Pet, error)
}

type Service struct {
	pets     PetSource
	geocoder geocode.Geocoder
	log      logger.Logger
}

func NewService(source PetSource, geocoder geocode.Geocoder, log logger.Logger) *Service {
	return &Service{
		pets:     source,
		geocoder: geocoder,
		log:      log,
	}
}

// Nearby arma los markers del mapa: carga el candidate set, resuelve la
// coordenada de cada mascota (la almacenada, o geocodificando su dirección),
// filtra por radio y separa coordenadas repetidas. Una mascota sin
// coordenada resoluble se omite en silencio; nunca tumba el call completo
// por un registro malo.
func (s *Service) Nearby(ctx context.Context, origin geo.Point, radiusKm float64) ([]Marker, error) {
	if radiusKm < 0 {
		return nil, ErrInvalidInput
	}

	candidates, err := s.pets.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	markers := make([]Marker, 0, len(candidates))
	for _, p := range candidates {
		loc, ok := s.resolveLocation(ctx, p)
		if !ok {
			continue
		}
		markers = append(markers, Marker{
			PetID:       p.ID,
			OwnerUserID: p.OwnerUserID,
			Name:        p.Name,
			Species:     string(p.Species),
			BloodType:   string(p.BloodType),
			Location:    loc,
		})
	}

	return DeduplicateCoordinates(FilterByRadius(origin, radiusKm, markers)), nil
}

func (s *Service) resolveLocation(ctx context.Context, p pets.Pet) (geo.Point, bool) {
	if p.Lat != nil && p.Lng != nil {
		return geo.Point{Lat: *p.Lat, Lng: *p.Lng}, true
	}

	addr := strings.TrimSpace(p.Address)
	if addr == "" || s.geocoder == nil {
		return geo.Point{}, false
	}

	loc, err := s.geocoder.Geocode(ctx, addr)
	if err != nil {
		if err != geocode.ErrNoResult {
			s.log.Debug("geocode failed", map[string]any{
				"pet_id": p.ID,
				"error":  err.Error(),
			})
		}
		return geo.Point{}, false
	}

	return loc, true
}
