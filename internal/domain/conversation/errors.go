package conversation

import "fmt"

// Kind clasifica el error de un turno; decide si se re-pregunta o se limpia la sesión.
type Kind int

const (
	KindValidation Kind = iota + 1 // entrada mal formada: re-preguntar
	KindNotFound                   // perro/registro/lugar inexistente
	KindDomain                     // peso <= 0, estado fuera de rango
	KindAdapter                    // fallo de un colaborador externo o del almacenamiento
	KindConflict                   // nombre de perro duplicado
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDomain:
		return "domain"
	case KindAdapter:
		return "adapter"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// TurnError es el resultado tipado de un paso fallido. Msg es el texto para el usuario.
type TurnError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *TurnError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }
