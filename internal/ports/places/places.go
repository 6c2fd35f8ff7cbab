package places

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("place not found")

// Place es un lugar apto para perros. Rating nil = sin calificación.
type Place struct {
	Name    string
	Rating  *float64
	Address string
	Lat     float64
	Lon     float64
}

type Lookup interface {
	FindNearbyDogFriendlyPlaces(ctx context.Context, lat, lon float64) ([]Place, error)
	ResolvePlaceName(ctx context.Context, name string) (lat, lon float64, err error)
}
