package auth

// Claims es la identidad ya resuelta del caller.
// La emisión y validación de tokens vive en el subsistema externo de
// identidad; este servicio confía en los claims que llegan del verifier.
type Claims struct {
	UserID string
	Email  string
}
