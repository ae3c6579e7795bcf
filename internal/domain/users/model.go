package users

import "time"

// User es el perfil mínimo que este servicio necesita de un usuario.
// La identidad y la edición de perfil viven en el subsistema de auth/perfiles;
// aquí solo se referencia por ID y se lee como resumen (lado de matches).
type User struct {
	ID          string
	DisplayName string
	Email       string
	Phone       string

	Address string
	// Coordenada derivada de la dirección (geocodificada externamente).
	// nil = sin coordenada resoluble.
	Lat *float64
	Lng *float64

	CreatedAt time.Time
}
