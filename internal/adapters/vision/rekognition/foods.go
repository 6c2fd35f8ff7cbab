package rekognition

import (
	"context"

	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
)

// labelAliases mapea etiquetas genéricas de Rekognition a la tabla de alimentos.
var labelAliases = map[string]string{
	"Chicken":       "Chicken Breast",
	"Poultry":       "Chicken Breast",
	"Steak":         "Beef",
	"Meat":          "Beef",
	"Fish":          "Salmon",
	"Eggs":          "Egg",
	"Yam":           "Sweet Potato",
	"Rice":          "Brown Rice",
	"Squash":        "Pumpkin",
	"Carrots":       "Carrot",
	"Tomatoes":      "Tomato",
	"Blueberries":   "Blueberry",
	"Cherry Tomato": "Tomato",
}

// IdentifyFoods devuelve solo alimentos presentes en la tabla, normalizados y sin duplicados.
func (c *Client) IdentifyFoods(ctx context.Context, image []byte) ([]string, error) {
	labels, err := c.detectLabels(ctx, image)
	if err != nil {
		return nil, err
	}

	known := make([]string, 0, len(labels))
	for _, l := range labels {
		name := nutrition.NormalizeFoodName(l)
		if alias, ok := labelAliases[name]; ok {
			name = alias
		}
		if _, ok := nutrition.LookupFood(name); ok {
			known = append(known, name)
		}
	}
	return nutrition.NormalizeFoods(known), nil
}
