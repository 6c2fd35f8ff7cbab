package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePetInfo(t *testing.T) {
	d, err := ParsePetInfo("\n  Name: Rex \r\nBirthday: 2022-01-01\nWEIGHT : 10.5kg\n")
	require.NoError(t, err)
	assert.Equal(t, "Rex", d.Name)
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), d.BirthDate)
	assert.Equal(t, 10.5, d.WeightKg)

	// el peso negativo se parsea; lo rechaza la validación del perfil
	d, err = ParsePetInfo("name: Rex\nbirthday: 2022-01-01\nweight: -3")
	require.NoError(t, err)
	assert.Equal(t, -3.0, d.WeightKg)
}

func TestParsePetInfo_Errors(t *testing.T) {
	cases := map[string]error{
		"name: Rex\nbirthday: 2022-01-01":                       errMissingLine,
		"name: Rex\nbirthday 2022-01-01\nweight: 10":            errMissingSeparator,
		"nombre: Rex\nbirthday: 2022-01-01\nweight: 10":         errUnexpectedLabel,
		"name:\nbirthday: 2022-01-01\nweight: 10":               errEmptyValue,
		"name: Rex\nbirthday: 2022-01-01\nweight: NaN":          errNotNumber,
		"name: Rex\nbirthday: 2022-01-01\nweight: kg":           errNotNumber,
		"name: Rex\nbirthday: 2022-01-01\nweight: 10\nextra: 1": errUnexpectedLabel,
	}
	for in, want := range cases {
		_, err := ParsePetInfo(in)
		assert.ErrorIs(t, err, want, "input=%q", in)
	}

	_, err := ParsePetInfo("name: Rex\nbirthday: 01/01/2022\nweight: 10")
	assert.Error(t, err)
}

func TestParseNutritionInfo(t *testing.T) {
	name, status, err := ParseNutritionInfo("name: Rex\nstatus: 99")
	require.NoError(t, err)
	assert.Equal(t, "Rex", name)
	assert.Equal(t, "99", status)

	_, _, err = ParseNutritionInfo("name: Rex\nstatus: 3.5")
	assert.ErrorIs(t, err, errNotNumber)
	_, _, err = ParseNutritionInfo("狀態: 3\n名字: Rex")
	assert.ErrorIs(t, err, errUnexpectedLabel)
}

func TestParseDailyRecord(t *testing.T) {
	d, err := ParseDailyRecord("name: Rex\ncalories: 120.6 kcal\nwater: 300 ml")
	require.NoError(t, err)
	assert.Equal(t, IntakeDraft{PetName: "Rex", Calories: 121, WaterML: 300}, d)

	d, err = ParseDailyRecord("名字：Rex\n卡路里：80卡\n水：50毫升")
	require.NoError(t, err)
	assert.Equal(t, IntakeDraft{PetName: "Rex", Calories: 80, WaterML: 50}, d)

	_, err = ParseDailyRecord("name: Rex\ncalories: 10\nwater: -1")
	assert.ErrorIs(t, err, errNegative)
}

func TestParseGrams(t *testing.T) {
	for in, want := range map[string]float64{"100": 100, "100g": 100, "100 g": 100, " 52.5 grams ": 52.5, "80克": 80} {
		got, err := ParseGrams(in)
		require.NoError(t, err, "input=%q", in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "g", "abc", "0", "-5g", "Inf"} {
		_, err := ParseGrams(in)
		assert.Error(t, err, "input=%q", in)
	}
}
