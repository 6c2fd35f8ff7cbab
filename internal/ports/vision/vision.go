package vision

import "context"

// Nutrient identifica un valor de la etiqueta nutricional.
type Nutrient string

const (
	NutrientCalories Nutrient = "calories" // kcal por paquete
	NutrientProtein  Nutrient = "protein"  // %
	NutrientFat      Nutrient = "fat"      // %
	NutrientFiber    Nutrient = "fiber"    // %
	NutrientCarbs    Nutrient = "carbs"    // %
	NutrientWater    Nutrient = "water"    // %
)

// LabelNutrition son los valores leídos de una etiqueta. Vacío = nada reconocido.
type LabelNutrition map[Nutrient]float64

// LabelExtractor lee la etiqueta nutricional de una foto de paquete.
type LabelExtractor interface {
	ExtractLabelNutrition(ctx context.Context, image []byte) (LabelNutrition, error)
}

// FoodIdentifier reconoce alimentos frescos en una foto.
// Los nombres vuelven deduplicados y normalizados.
type FoodIdentifier interface {
	IdentifyFoods(ctx context.Context, image []byte) ([]string, error)
}
