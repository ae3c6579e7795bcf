package proximity

import "pet-donor-connect/internal/domain/geo"

// dedupOffsetDeg es el paso angular entre markers que comparten coordenada
// exacta: ~0.0001 grados ≈ 11 metros, suficiente para separarlos
// visualmente sin moverlos de cuadra.
const dedupOffsetDeg = 0.0001

// FilterByRadius devuelve los markers a distancia <= radiusKm del origen
// (frontera inclusiva), preservando el orden de entrada.
func FilterByRadius(origin geo.Point, radiusKm float64, markers []Marker) []Marker {
	out := make([]Marker, 0, len(markers))
	for _, m := range markers {
		if geo.DistanceKm(origin, m.Location) <= radiusKm {
			out = append(out, m)
		}
	}
	return out
}

// DeduplicateCoordinates separa markers que caen en la misma coordenada
// exacta: la primera aparición queda intacta y la k-ésima repetición se
// desplaza k*dedupOffsetDeg en ambos ejes (mismo signo). La clave es la
// igualdad exacta de coordenadas evaluada en orden de entrada: el
// resultado depende del orden del candidate set.
func DeduplicateCoordinates(markers []Marker) []Marker {
	seen := make(map[geo.Point]int, len(markers))
	out := make([]Marker, 0, len(markers))

	for _, m := range markers {
		k := seen[m.Location]
		seen[m.Location] = k + 1

		if k > 0 {
			offset := float64(k) * dedupOffsetDeg
			m.Location = geo.Point{
				Lat: m.Location.Lat + offset,
				Lng: m.Location.Lng + offset,
			}
		}
		out = append(out, m)
	}

	return out
}
