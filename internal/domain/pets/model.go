package pets

import (
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
)

// DateLayout es el formato de fechas de calendario (cumpleaños, día de registro).
const DateLayout = "2006-01-02"

// Pet representa el perfil de un perro. Identidad: (OwnerUserID, Name).
type Pet struct {
	ID          string
	OwnerUserID string

	Name      string
	BirthDate time.Time // solo fecha, UTC medianoche
	WeightKg  float64
	Breed     string           // opcional; si viene, resuelto por breeds.Lookup
	Status    nutrition.Status // 0 = sin estado

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeYears = floor(días desde el nacimiento / 365).
func (p Pet) AgeYears(now time.Time) int {
	days := int(dateOnly(now).Sub(dateOnly(p.BirthDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 365
}

// DailyRecord acumula la ingesta de un perro en un día. Identidad: (OwnerUserID, PetName, Date).
type DailyRecord struct {
	OwnerUserID string
	PetName     string
	Date        string // YYYY-MM-DD

	Calories int
	WaterML  int

	UpdatedAt time.Time
}

// Profile es la vista de detalle: perfil + metas + ingesta del día.
type Profile struct {
	Pet    Pet
	Target *nutrition.Target // nil si el perro no tiene estado
	Today  DailyRecord

	CaloriesProgress float64 // % sobre DER máximo
	WaterProgress    float64 // % sobre agua máxima
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
