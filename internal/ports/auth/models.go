package auth

// Claims representa la información extraída del token.
// OwnerID es la clave de aislamiento de todos los datos (perfiles, registros, sesión).
type Claims struct {
	OwnerID string
	Name    string
}
