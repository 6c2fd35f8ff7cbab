package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
	"github.com/weijenchou/dogdietlinebot/internal/ports/breeds"
	"github.com/weijenchou/dogdietlinebot/internal/ports/places"
	"github.com/weijenchou/dogdietlinebot/internal/ports/vision"
)

// Palabras clave del menú (estado idle).
const (
	CmdAddPet         = "Add pet"
	CmdPetProfile     = "Pet profile"
	CmdMyPets         = "My pets"
	CmdTargets        = "Targets"
	CmdToxicFoods     = "Toxic foods"
	CmdBreedInfo      = "Breed info"
	CmdLogIntake      = "Log intake"
	CmdTodayIntake    = "Today intake"
	CmdPackagePhoto   = "Package photo"
	CmdFreshFoodPhoto = "Fresh food photo"
	CmdRestaurants    = "Friendly restaurants"

	CancelKeyword = "exit"

	ChoiceCurrentLocation = "Current location"
	ChoiceLandmarkName    = "Landmark name"
)

// MaxReplyRunes es el límite de texto del transporte.
const MaxReplyRunes = 5000

const (
	truncatedKeep   = 4900
	truncatedPrefix = "Too many results, showing partial information:\n"
)

const msgWelcome = `Hi! I'm your dog diet assistant 🐾
What would you like to do today? 😉

Start by saving your dog with "Add pet".

Commands
----------------------
Add pet · Pet profile · My pets
Targets · Log intake · Today intake
1. Toxic foods 🚫
2. Breed info 💡
3. Package photo 📸
4. Fresh food photo 🍲
10. Friendly restaurants 🍴
----------------------
Type "exit" at any time to come back here 🏠`

const (
	formatPetInfo = "name: XXX\nbirthday: YYYY-MM-DD\nweight: XX kg"
	formatTargets = "name: XXX\nstatus: X (a number from 1 to 13)"
	formatRecord  = "name: XXX\ncalories: XX\nwater: XX ml"
)

const (
	msgAskPetInfo     = "Please enter your dog's details in this format:\n" + formatPetInfo
	msgBadPetInfo     = "Invalid format, please re-enter:\n" + formatPetInfo
	msgFutureBirthday = "The birthday cannot be in the future, please re-enter:\n" + formatPetInfo
	msgBadWeight      = "The weight must be greater than 0 kg, please re-enter:\n" + formatPetInfo
	msgPetSaved       = "Saved! Send \"Targets\" to see your dog's daily targets."
	msgPetNotSaved    = "Not saved."
	msgYesNo          = "Please enter Y or N"

	msgAskDogName = "Please enter your dog's name:"

	msgBadTargets   = "Invalid format, please re-enter:\n" + formatTargets
	msgStatusRange  = "The status must be a number from 1 to 13."
	msgAskBreedName = "Please enter the breed (for example: Shiba Inu):"

	msgAskRecord       = "Please enter today's intake in this format:\n" + formatRecord
	msgBadRecord       = "Invalid format, please re-enter:\n" + formatRecord
	msgRecordNotSaved  = "Not saved."
	msgAskRecordDog    = "Which dog? Please enter its name:"
	msgAskPackageImage = "Choose how to upload the package photo; I'll calculate the calories and nutrients for you:"
	msgAskFreshImage   = "Choose how to upload the fresh food photo; I'll identify the foods and their nutrients:"
	msgSendPhoto       = "Please send a photo, or type \"exit\" to go back."
	msgAskGrams        = "How many grams did you feed this time? (for example: 100 or 100g)"
	msgBadGrams        = "Please enter a valid gram amount (for example: 100 or 100g)"
	msgNoLabel         = "Could not read the nutrition facts from the photo, please try again."
	msgNoFood          = "No food recognized!"

	msgAskRestaurant = "Choose how to search for dog-friendly restaurants:"
	msgPickChoice    = "Please choose \"" + ChoiceCurrentLocation + "\" or \"" + ChoiceLandmarkName + "\"."
	msgShareLocation = "Please share your location so I can search nearby."
	msgAskLandmark   = "Please enter a landmark name"
	msgNoPlaces      = "No dog-friendly restaurants found nearby."

	msgNoPets      = "You haven't saved any dogs yet. Send \"Add pet\" to start."
	msgFailed      = "Sorry, something went wrong. Please try again later."
	msgImageFailed = "Error processing the image, please try again."
	msgNoOwner     = "Unknown user."
)

const msgToxicFoods = `Foods your dog must not eat 🚫

🍇 Fruits
Grapes, raisins, cherries, pineapple, unripe tomatoes, avocado, citrus, fruit pits and seeds

🧅 Vegetables
Scallions, leeks, onions, garlic, spices

🍫 Other
Aloe, chocolate, macadamia nuts, wild mushrooms, milk, raw meat, pastries

Cook everything you share with your dog and cut it into small pieces.`

var photoChoices = []QuickReply{
	{Label: "Camera", Action: ActionCamera},
	{Label: "Camera roll", Action: ActionCameraRoll},
}

var restaurantChoices = []QuickReply{
	{Label: ChoiceCurrentLocation, Text: ChoiceCurrentLocation, Action: ActionLocation},
	{Label: ChoiceLandmarkName, Text: ChoiceLandmarkName, Action: ActionMessage},
}

func text(s string) Reply { return Reply{Text: s} }

func welcomeReply() Reply { return text(msgWelcome) }

func formatKg(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func askTargetsReply() Reply {
	var b strings.Builder
	b.WriteString("Please enter your dog's name and status:\n")
	for _, s := range nutrition.Statuses() {
		fmt.Fprintf(&b, "%d. %s\n", s, s.Label())
	}
	b.WriteString("\nExample:\nname: Rex\nstatus: 3")
	return text(b.String())
}

func confirmPetReply(in pets.CreateInput, age int) Reply {
	return text(fmt.Sprintf("🐶 Name: %s\n🎂 Birthday: %s\n⚖️ Weight: %s kg\n🎈 Age: %d\nSave this profile? (Y/N)",
		in.Name, in.BirthDate.Format(pets.DateLayout), formatKg(in.WeightKg), age))
}

func duplicatePetReply(name string) Reply {
	return text(fmt.Sprintf("A dog named '%s' already exists, please use another name:\n%s", name, formatPetInfo))
}

func petNotFoundReply(name string) Reply {
	return text(fmt.Sprintf("No dog named '%s' was found.", name))
}

func profileReply(p pets.Pet, age int) Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "🐶 Name: %s\n🎂 Birthday: %s\n⚖️ Weight: %s kg\n🎈 Age: %d",
		p.Name, p.BirthDate.Format(pets.DateLayout), formatKg(p.WeightKg), age)
	if p.Breed != "" {
		fmt.Fprintf(&b, "\n🐕 Breed: %s", p.Breed)
	}
	if p.Status.Valid() {
		fmt.Fprintf(&b, "\n📋 Status: %d. %s", p.Status, p.Status.Label())
	}
	return text(b.String())
}

func petListReply(list []pets.Pet, ageOf func(pets.Pet) int) Reply {
	if len(list) == 0 {
		return text(msgNoPets)
	}
	var b strings.Builder
	b.WriteString("Your dogs:")
	for _, p := range list {
		fmt.Fprintf(&b, "\n🐶 %s, %d years, %s kg", p.Name, ageOf(p), formatKg(p.WeightKg))
	}
	return text(b.String())
}

func targetsReply(p pets.Pet, t nutrition.Target) Reply {
	return text(fmt.Sprintf(
		"Today's targets\n\n🐶 Name: %s\n⚖️ Weight: %s kg\n🔥 Resting energy (RER): %.2f kcal\n⚡ Daily energy (DER): %.2f-%.2f kcal\n💧 Water: %.2f-%.2f ml",
		p.Name, formatKg(t.WeightKg), t.RER, t.DER.Min, t.DER.Max, t.Water.Min, t.Water.Max))
}

func breedReply(info breeds.Info) Reply {
	return text(fmt.Sprintf(
		"🐕 Breed: %s\n📏 Height: %s\n⚖️ Weight: %s\n⏳ Lifespan: %s\n🩺 Health: %s\n🧪 Recommended tests: %s\n🍖 What to feed: %s\n🥣 How to feed: %s\n💡 Nutritional tips: %s",
		info.Name, info.Height, info.Weight, info.Lifespan, info.Health,
		info.RecommendedTests, info.WhatToFeed, info.HowToFeed, info.NutritionalTips))
}

// notFoundReply sirve para razas y lugares.
func notFoundReply(name string) Reply {
	return text(fmt.Sprintf("No information found for '%s'.", name))
}

func confirmRecordReply(d IntakeDraft) Reply {
	return text(fmt.Sprintf("🐶 Name: %s\n🔥 Calories: %d kcal\n💧 Water: %d ml\nSave this record? (Y/N)",
		d.PetName, d.Calories, d.WaterML))
}

func recordSavedReply(rec pets.DailyRecord) Reply {
	return text(fmt.Sprintf("Saved! Today's total for %s:\n🔥 Calories: %d kcal\n💧 Water: %d ml",
		rec.PetName, rec.Calories, rec.WaterML))
}

func todayReply(rec pets.DailyRecord) Reply {
	return text(fmt.Sprintf("Today so far for %s\n\n🔥 Calories: %d kcal\n💧 Water: %d ml",
		rec.PetName, rec.Calories, rec.WaterML))
}

func noRecordReply(name string) Reply {
	return text(fmt.Sprintf("No intake recorded today for '%s'.", name))
}

// feedingReply escala solo las calorías; los porcentajes se muestran tal cual.
func feedingReply(label vision.LabelNutrition, grams, packageGrams float64) Reply {
	return text(fmt.Sprintf(
		"🔥 Calories: %.2f kcal\n🥚 Protein: %.2f%%\n🧈 Fat: %.2f%%\n🌾 Fiber: %.2f%%\n🍚 Carbohydrates: %.2f%%\n💧 Moisture: %.2f%%",
		label[vision.NutrientCalories]*grams/packageGrams,
		label[vision.NutrientProtein], label[vision.NutrientFat], label[vision.NutrientFiber],
		label[vision.NutrientCarbs], label[vision.NutrientWater]))
}

func freshFoodReply(foods []string) Reply {
	var b strings.Builder
	b.WriteString("Recognized foods and nutrition (per 100 g):\n")
	b.WriteString(strings.Repeat("=", 25))
	b.WriteString("\n")
	n := 0
	for _, name := range foods {
		f, ok := nutrition.LookupFood(name)
		if !ok {
			continue
		}
		n++
		fmt.Fprintf(&b, "Food: %s\nCalories: %s kcal\nCarbohydrate: %s g\nProtein: %s g\nFiber: %s g\n%s\n",
			nutrition.NormalizeFoodName(name), formatKg(f.Calories), formatKg(f.Carbohydrate),
			formatKg(f.Protein), formatKg(f.Fiber), strings.Repeat("-", 33))
	}
	if n == 0 {
		return text(msgNoFood)
	}
	return text(truncate(strings.TrimRight(b.String(), "\n")))
}

func placesReply(header string, list []places.Place) Reply {
	if len(list) == 0 {
		return text(msgNoPlaces)
	}
	var b strings.Builder
	b.WriteString(header)
	for _, p := range list {
		rating := "no rating"
		if p.Rating != nil {
			rating = strconv.FormatFloat(*p.Rating, 'f', 1, 64)
		}
		fmt.Fprintf(&b, "\n\n🍴 Restaurant: %s\n⭐ Rating: %s\n📍 Address: %s\n🛣️ Directions: %s",
			p.Name, rating, p.Address, DirectionsURL(p.Lat, p.Lon))
	}
	return text(truncate(b.String()))
}

// DirectionsURL arma el enlace de navegación de Google Maps.
func DirectionsURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%s,%s",
		strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lon, 'f', -1, 64))
}

// truncate corta por runas, no por bytes.
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxReplyRunes {
		return s
	}
	return truncatedPrefix + string(r[:truncatedKeep]) + "..."
}
