package matches

import "time"

// Match es la relación simétrica y confirmada entre dos usuarios.
// El par es no ordenado: se persiste canonicalizado (UserAID < UserBID)
// y existe a lo sumo un Match por par.
type Match struct {
	ID      string
	UserAID string
	UserBID string

	CreatedAt time.Time
}

// PairKey devuelve la identidad canónica del par no ordenado.
// Misma clave para (a,b) y (b,a): ordena lexicográficamente.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// NormalizePair devuelve el par en orden canónico.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// Counterpart devuelve el otro lado del par para un usuario dado.
func (m Match) Counterpart(userID string) string {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

// Contains indica si el usuario forma parte del par.
func (m Match) Contains(userID string) bool {
	return m.UserAID == userID || m.UserBID == userID
}
