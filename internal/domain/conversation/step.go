package conversation

import (
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
	"github.com/weijenchou/dogdietlinebot/internal/ports/vision"
)

// Step es el paso activo de un flujo multi-turno. Conjunto cerrado:
// solo los tipos de este archivo lo implementan. Sin sesión = idle.
type Step interface {
	Name() string
	isStep()
}

// IdleName es el nombre lógico de "sin sesión" (logs).
const IdleName = "idle"

// IntakeDraft es un registro diario pendiente de confirmación.
type IntakeDraft struct {
	PetName  string
	Calories int
	WaterML  int
}

type (
	AwaitingPetInfo            struct{}
	AwaitingSaveConfirmation   struct{ Draft pets.CreateInput }
	AwaitingDogName            struct{}
	AwaitingNutritionInfo      struct{}
	AwaitingBreedName          struct{}
	AwaitingDailyRecord        struct{}
	AwaitingRecordConfirmation struct{ Draft IntakeDraft }
	AwaitingDailyRecordCheck   struct{}
	// Label son los valores de la etiqueta leída (calorías por paquete completo).
	AwaitingFeedingWeight    struct{ Label vision.LabelNutrition }
	AwaitingPackageImage     struct{}
	AwaitingFreshFoodImage   struct{}
	AwaitingRestaurantChoice struct{}
	AwaitingLandmarkName     struct{}
)

func (AwaitingPetInfo) Name() string            { return "awaiting_pet_info" }
func (AwaitingSaveConfirmation) Name() string   { return "awaiting_save_confirmation" }
func (AwaitingDogName) Name() string            { return "awaiting_dog_name" }
func (AwaitingNutritionInfo) Name() string      { return "awaiting_nutrition_info" }
func (AwaitingBreedName) Name() string          { return "awaiting_breed_name" }
func (AwaitingDailyRecord) Name() string        { return "awaiting_daily_record" }
func (AwaitingRecordConfirmation) Name() string { return "awaiting_record_confirmation" }
func (AwaitingDailyRecordCheck) Name() string   { return "awaiting_daily_record_check" }
func (AwaitingFeedingWeight) Name() string      { return "awaiting_feeding_weight" }
func (AwaitingPackageImage) Name() string       { return "awaiting_package_image" }
func (AwaitingFreshFoodImage) Name() string     { return "awaiting_fresh_food_image" }
func (AwaitingRestaurantChoice) Name() string   { return "awaiting_restaurant_choice" }
func (AwaitingLandmarkName) Name() string       { return "awaiting_landmark_name" }

func (AwaitingPetInfo) isStep()            {}
func (AwaitingSaveConfirmation) isStep()   {}
func (AwaitingDogName) isStep()            {}
func (AwaitingNutritionInfo) isStep()      {}
func (AwaitingBreedName) isStep()          {}
func (AwaitingDailyRecord) isStep()        {}
func (AwaitingRecordConfirmation) isStep() {}
func (AwaitingDailyRecordCheck) isStep()   {}
func (AwaitingFeedingWeight) isStep()      {}
func (AwaitingPackageImage) isStep()       {}
func (AwaitingFreshFoodImage) isStep()     {}
func (AwaitingRestaurantChoice) isStep()   {}
func (AwaitingLandmarkName) isStep()       {}

func stepName(s Step) string {
	if s == nil {
		return IdleName
	}
	return s.Name()
}
