package proximity

import "pet-donor-connect/internal/domain/geo"

// Marker es una mascota candidata ya resuelta a una coordenada,
// lista para presentarse en el mapa de donantes.
type Marker struct {
	PetID       string
	OwnerUserID string
	Name        string
	Species     string
	BloodType   string

	Location geo.Point
}
