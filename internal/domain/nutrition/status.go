package nutrition

import (
	"strconv"
	"strings"
)

// Status es el estado fisiológico del perro (códigos 1-13).
// 0 = sin estado registrado.
type Status int

const (
	StatusPuppyUnder4Months Status = iota + 1
	StatusPuppy4To12Months
	StatusNeuteredAdult
	StatusIntactAdult
	StatusMildDietAdult
	StatusAggressiveDietAdult
	StatusUnderweightAdult
	StatusLightlyActive
	StatusHighlyActive
	StatusSenior
	StatusPregnant
	StatusLactating
	StatusSickAdult
)

const (
	MinStatus = StatusPuppyUnder4Months
	MaxStatus = StatusSickAdult
)

var statusLabels = map[Status]string{
	StatusPuppyUnder4Months:   "Developing puppy (under 4 months)",
	StatusPuppy4To12Months:    "Developing puppy (4 months to 1 year)",
	StatusNeuteredAdult:       "Neutered adult (1-7 years)",
	StatusIntactAdult:         "Intact adult (1-7 years)",
	StatusMildDietAdult:       "Adult on a mild weight-loss diet",
	StatusAggressiveDietAdult: "Adult on a strict weight-loss diet",
	StatusUnderweightAdult:    "Underweight adult",
	StatusLightlyActive:       "Lightly active",
	StatusHighlyActive:        "Highly active",
	StatusSenior:              "Senior",
	StatusPregnant:            "Pregnant",
	StatusLactating:           "Lactating",
	StatusSickAdult:           "Sick adult",
}

func (s Status) Valid() bool {
	return s >= MinStatus && s <= MaxStatus
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return ""
}

// ParseStatus es estricto: solo acepta "1".."13".
func ParseStatus(raw string) (Status, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrUnknownStatus
	}
	s := Status(n)
	if !s.Valid() {
		return 0, ErrUnknownStatus
	}
	return s, nil
}

// Statuses devuelve todos los estados en orden de código.
func Statuses() []Status {
	out := make([]Status, 0, int(MaxStatus))
	for s := MinStatus; s <= MaxStatus; s++ {
		out = append(out, s)
	}
	return out
}
