package geo

import "math"

// earthRadiusKm es el radio medio de la Tierra (esfera IUGG).
const earthRadiusKm = 6371.0

// Point es una coordenada geográfica (WGS 84).
// Es un value type: no tiene identidad propia, siempre viaja
// adjunto a un usuario o mascota.
type Point struct {
	Lat float64
	Lng float64
}

// DistanceKm calcula la distancia de círculo máximo entre dos puntos
// con la fórmula de haversine. Simétrica, cero para puntos idénticos.
// Entradas NaN/Inf son violación de contrato del caller, no se validan.
func DistanceKm(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLng*sinLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
