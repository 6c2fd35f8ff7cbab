package breeds

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("breed not found")

// Info es la ficha de una raza. Todos los campos son texto libre.
type Info struct {
	Name             string
	Height           string
	Weight           string
	Lifespan         string
	Health           string
	RecommendedTests string
	WhatToFeed       string
	HowToFeed        string
	NutritionalTips  string
}

// Lookup resuelve una raza por nombre (o alias). Devuelve ErrNotFound si no existe.
type Lookup interface {
	GetBreedInfo(ctx context.Context, name string) (Info, error)
}
