package nutrition

import (
	"errors"
	"math"
)

var (
	ErrInvalidWeight = errors.New("weight must be a positive number of kg")
	ErrUnknownStatus = errors.New("status must be a number from 1 to 13")
)

// Range es un intervalo cerrado [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// DefaultActivityFactor se usa para códigos desconocidos en ActivityFactorRange.
var DefaultActivityFactor = Range{Min: 1.6, Max: 1.8}

var activityFactors = map[Status]Range{
	StatusPuppyUnder4Months:   {2.5, 3.0},
	StatusPuppy4To12Months:    {2.0, 2.5},
	StatusNeuteredAdult:       {1.4, 1.6},
	StatusIntactAdult:         {1.6, 1.8},
	StatusMildDietAdult:       {1.2, 1.4},
	StatusAggressiveDietAdult: {1.0, 1.2},
	StatusUnderweightAdult:    {1.6, 2.0},
	StatusLightlyActive:       {1.2, 1.4},
	StatusHighlyActive:        {2.0, 2.5},
	StatusSenior:              {1.2, 1.4},
	StatusPregnant:            {1.8, 2.0},
	StatusLactating:           {2.2, 2.5},
	StatusSickAdult:           {1.0, 1.5},
}

func validWeight(weightKg float64) bool {
	return weightKg > 0 && !math.IsInf(weightKg, 0) && !math.IsNaN(weightKg)
}

// RestingEnergyRequirement = 70 * peso^0.75 (kcal/día).
func RestingEnergyRequirement(weightKg float64) (float64, error) {
	if !validWeight(weightKg) {
		return 0, ErrInvalidWeight
	}
	return 70 * math.Pow(weightKg, 0.75), nil
}

// ActivityFactorRange es tolerante: un código fuera de tabla devuelve DefaultActivityFactor.
// El rechazo de códigos inválidos lo hacen ParseStatus y ComputeTarget.
func ActivityFactorRange(s Status) Range {
	if r, ok := activityFactors[s]; ok {
		return r
	}
	return DefaultActivityFactor
}

func DailyEnergyRequirement(rer, activityFactor float64) float64 {
	return rer * activityFactor
}

// WaterIntakeRange = 50-60 ml por kg.
func WaterIntakeRange(weightKg float64) (Range, error) {
	if !validWeight(weightKg) {
		return Range{}, ErrInvalidWeight
	}
	return Range{Min: weightKg * 50, Max: weightKg * 60}, nil
}

// Target son las metas diarias derivadas (no se persisten).
type Target struct {
	WeightKg float64
	Status   Status

	RER   float64
	DER   Range
	Water Range
}

func ComputeTarget(weightKg float64, s Status) (Target, error) {
	if !s.Valid() {
		return Target{}, ErrUnknownStatus
	}
	rer, err := RestingEnergyRequirement(weightKg)
	if err != nil {
		return Target{}, err
	}
	water, err := WaterIntakeRange(weightKg)
	if err != nil {
		return Target{}, err
	}

	af := ActivityFactorRange(s)
	return Target{
		WeightKg: weightKg,
		Status:   s,
		RER:      rer,
		DER: Range{
			Min: DailyEnergyRequirement(rer, af.Min),
			Max: DailyEnergyRequirement(rer, af.Max),
		},
		Water: water,
	}, nil
}

// Progress devuelve consumido/meta en %, 0 si la meta no es positiva.
func Progress(consumed, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return consumed / goal * 100
}
