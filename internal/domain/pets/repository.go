package pets

import (
	"context"
	"time"
)

// Repository persiste perros y registros diarios, siempre acotado a un owner.
//
// Errores: ErrNotFound si el perro/registro no existe, ErrConflict si el nombre ya está usado.
type Repository interface {
	CreatePet(ctx context.Context, p Pet) error
	// SavePet crea o reemplaza por (owner, name), conservando ID y CreatedAt.
	SavePet(ctx context.Context, p Pet) error
	GetPet(ctx context.Context, ownerUserID, name string) (Pet, error)
	ListPets(ctx context.Context, ownerUserID string) ([]Pet, error)
	// UpdatePet reemplaza el perro currentName por p; si cambia el nombre,
	// los registros diarios se renombran en la misma operación.
	UpdatePet(ctx context.Context, ownerUserID, currentName string, p Pet) error
	// DeletePet borra el perro y todos sus registros diarios.
	DeletePet(ctx context.Context, ownerUserID, name string) error

	// AddDailyIntake suma calorías/agua al registro del día (lo crea si no existe)
	// y devuelve el total acumulado.
	AddDailyIntake(ctx context.Context, ownerUserID, petName, date string, calories, waterML int, at time.Time) (DailyRecord, error)
	GetDailyRecord(ctx context.Context, ownerUserID, petName, date string) (DailyRecord, error)
}
