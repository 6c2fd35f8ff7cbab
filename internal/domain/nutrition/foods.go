package nutrition

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoodFacts son valores por cada 100 g.
type FoodFacts struct {
	Calories     float64 // kcal
	Carbohydrate float64 // g
	Protein      float64 // g
	Fiber        float64 // g
}

var freshFoods = map[string]FoodFacts{
	"Chicken Breast": {Calories: 115, Carbohydrate: 0, Protein: 24, Fiber: 0},
	"Beef":           {Calories: 288, Carbohydrate: 0, Protein: 26.3, Fiber: 0},
	"Salmon":         {Calories: 139, Carbohydrate: 0, Protein: 24.3, Fiber: 0},
	"Egg":            {Calories: 140, Carbohydrate: 1.7, Protein: 13, Fiber: 0},
	"Sweet Potato":   {Calories: 110, Carbohydrate: 27.8, Protein: 1.6, Fiber: 2.5},
	"Brown Rice":     {Calories: 354, Carbohydrate: 75.1, Protein: 7.5, Fiber: 4.9},
	"Pumpkin":        {Calories: 74, Carbohydrate: 17.3, Protein: 1.9, Fiber: 2.5},
	"Carrot":         {Calories: 41, Carbohydrate: 9.6, Protein: 0.9, Fiber: 2.8},
	"Broccoli":       {Calories: 25, Carbohydrate: 4.8, Protein: 2.2, Fiber: 2.3},
	"Tomato":         {Calories: 18, Carbohydrate: 4, Protein: 0.8, Fiber: 1.1},
	"Blueberry":      {Calories: 57, Carbohydrate: 14.5, Protein: 0.7, Fiber: 2.4},
}

// NormalizeFoodName recorta espacios y aplica Title Case ("sweet potato" -> "Sweet Potato").
func NormalizeFoodName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return cases.Title(language.Und).String(name)
}

func LookupFood(name string) (FoodFacts, bool) {
	f, ok := freshFoods[NormalizeFoodName(name)]
	return f, ok
}

// NormalizeFoods deduplica y normaliza, descartando vacíos. Salida ordenada.
func NormalizeFoods(names []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = NormalizeFoodName(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// KnownFoods devuelve los nombres de la tabla, ordenados.
func KnownFoods() []string {
	out := make([]string, 0, len(freshFoods))
	for k := range freshFoods {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
