package pets

import "strings"

// ownerKey normaliza el owner; vacío = sin owner (ErrInvalidInput).
// Todo acceso al repositorio pasa por aquí para mantener el aislamiento por owner.
func ownerKey(ownerUserID string) (string, error) {
	owner := strings.TrimSpace(ownerUserID)
	if owner == "" {
		return "", ErrInvalidInput
	}
	return owner, nil
}

func petKey(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ErrInvalidInput
	}
	return n, nil
}
