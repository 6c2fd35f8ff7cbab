package conversation

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
)

var (
	errMissingLine      = errors.New("missing line")
	errMissingSeparator = errors.New("missing separator")
	errUnexpectedLabel  = errors.New("unexpected label")
	errEmptyValue       = errors.New("empty value")
	errNotNumber        = errors.New("not a number")
	errNegative         = errors.New("negative value")
)

// Etiquetas aceptadas por campo, en minúsculas.
var (
	labelsName     = []string{"name", "dog name", "名字", "狗狗名字"}
	labelsBirthday = []string{"birthday", "birth date", "birthdate", "birth", "生日"}
	labelsWeight   = []string{"weight", "體重", "体重"}
	labelsStatus   = []string{"status", "狀態", "状态"}
	labelsCalories = []string{"calories", "calorie", "kcal", "卡路里", "熱量"}
	labelsWater    = []string{"water", "water intake", "水", "水量", "飲水量"}
)

var (
	unitsWeight   = []string{"kg", "公斤"}
	unitsCalories = []string{"kcal", "cal", "大卡", "卡路里", "卡"}
	unitsWater    = []string{"ml", "毫升"}
	unitsGrams    = []string{"grams", "gram", "g", "公克", "克"}
)

// PetInfoDraft es el resultado de parsear name/birthday/weight.
type PetInfoDraft struct {
	Name      string
	BirthDate time.Time
	WeightKg  float64
}

// ParsePetInfo espera tres líneas: name, birthday (YYYY-MM-DD), weight (kg).
// No valida peso > 0 ni fecha futura; eso lo hace pets.Service.Validate.
func ParsePetInfo(text string) (PetInfoDraft, error) {
	vals, err := labeledValues(text, labelsName, labelsBirthday, labelsWeight)
	if err != nil {
		return PetInfoDraft{}, err
	}
	birth, err := time.Parse(pets.DateLayout, vals[1])
	if err != nil {
		return PetInfoDraft{}, err
	}
	w, err := parseQuantity(vals[2], unitsWeight)
	if err != nil {
		return PetInfoDraft{}, err
	}
	return PetInfoDraft{Name: vals[0], BirthDate: birth, WeightKg: w}, nil
}

// ParseNutritionInfo devuelve el nombre y el estado crudo. Un estado no entero es
// error de formato; el rango 1-13 lo comprueba nutrition.ParseStatus.
func ParseNutritionInfo(text string) (name, status string, err error) {
	vals, err := labeledValues(text, labelsName, labelsStatus)
	if err != nil {
		return "", "", err
	}
	if _, err := strconv.Atoi(vals[1]); err != nil {
		return "", "", errNotNumber
	}
	return vals[0], vals[1], nil
}

// ParseDailyRecord espera name, calories y water (ml). Decimales se redondean.
func ParseDailyRecord(text string) (IntakeDraft, error) {
	vals, err := labeledValues(text, labelsName, labelsCalories, labelsWater)
	if err != nil {
		return IntakeDraft{}, err
	}
	cal, err := parseQuantity(vals[1], unitsCalories)
	if err != nil {
		return IntakeDraft{}, err
	}
	water, err := parseQuantity(vals[2], unitsWater)
	if err != nil {
		return IntakeDraft{}, err
	}
	if cal < 0 || water < 0 {
		return IntakeDraft{}, errNegative
	}
	return IntakeDraft{
		PetName:  vals[0],
		Calories: int(math.Round(cal)),
		WaterML:  int(math.Round(water)),
	}, nil
}

// ParseGrams acepta "100", "100g" y "100 g". Debe ser > 0.
func ParseGrams(text string) (float64, error) {
	g, err := parseQuantity(strings.TrimSpace(text), unitsGrams)
	if err != nil {
		return 0, err
	}
	if g <= 0 {
		return 0, errNegative
	}
	return g, nil
}

// labeledValues exige una línea no vacía por campo, en orden, con "label: valor".
// Separador ':' o '：' (ancho completo).
func labeledValues(text string, fields ...[]string) ([]string, error) {
	lines := nonEmptyLines(text)
	if len(lines) < len(fields) {
		return nil, errMissingLine
	}
	if len(lines) > len(fields) {
		return nil, errUnexpectedLabel
	}

	out := make([]string, len(fields))
	for i, labels := range fields {
		label, value, ok := cutSeparator(lines[i])
		if !ok {
			return nil, errMissingSeparator
		}
		if !matchLabel(label, labels) {
			return nil, errUnexpectedLabel
		}
		if value == "" {
			return nil, errEmptyValue
		}
		out[i] = value
	}
	return out, nil
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func cutSeparator(line string) (label, value string, ok bool) {
	i := strings.IndexAny(line, ":：")
	if i < 0 {
		return "", "", false
	}
	sep := line[i:]
	size := len(":")
	if strings.HasPrefix(sep, "：") {
		size = len("：")
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+size:]), true
}

func matchLabel(label string, labels []string) bool {
	label = strings.ToLower(strings.Join(strings.Fields(label), " "))
	for _, l := range labels {
		if label == l {
			return true
		}
	}
	return false
}

// parseQuantity quita una unidad final opcional y parsea un número finito.
func parseQuantity(value string, units []string) (float64, error) {
	v := strings.TrimSpace(value)
	lower := strings.ToLower(v)
	for _, u := range units {
		if strings.HasSuffix(lower, u) {
			v = strings.TrimSpace(v[:len(v)-len(u)])
			break
		}
	}
	if v == "" {
		return 0, errNotNumber
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumber
	}
	return f, nil
}
