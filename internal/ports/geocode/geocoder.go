package geocode

import (
	"context"
	"errors"

	"pet-donor-connect/internal/domain/geo"
)

// ErrNoResult indica que la dirección no resolvió a ninguna coordenada.
// Para el descubrimiento por cercanía es un resultado tolerable, no un
// error fatal: la entidad simplemente no se muestra en el mapa.
var ErrNoResult = errors.New("no geocoding result")

// Geocoder resuelve una dirección postal a una coordenada.
// Colaborador externo y falible; se invoca una vez por entidad mostrada.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
}
