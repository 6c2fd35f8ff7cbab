package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestingEnergyRequirement(t *testing.T) {
	rer, err := RestingEnergyRequirement(10)
	require.NoError(t, err)
	assert.InDelta(t, 393.64, rer, 0.01)

	for _, w := range []float64{1, 2.5, 32, 70} {
		got, err := RestingEnergyRequirement(w)
		require.NoError(t, err)
		assert.InDelta(t, 70*math.Pow(w, 0.75), got, 1e-9)
	}
}

func TestRestingEnergyRequirement_InvalidWeight(t *testing.T) {
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := RestingEnergyRequirement(w)
		assert.ErrorIs(t, err, ErrInvalidWeight, "weight=%v", w)
	}
}

func TestActivityFactorRange_Table(t *testing.T) {
	want := map[Status]Range{
		1: {2.5, 3.0}, 2: {2.0, 2.5}, 3: {1.4, 1.6}, 4: {1.6, 1.8},
		5: {1.2, 1.4}, 6: {1.0, 1.2}, 7: {1.6, 2.0}, 8: {1.2, 1.4},
		9: {2.0, 2.5}, 10: {1.2, 1.4}, 11: {1.8, 2.0}, 12: {2.2, 2.5},
		13: {1.0, 1.5},
	}
	for s, r := range want {
		assert.Equal(t, r, ActivityFactorRange(s), "status=%d", s)
	}
}

func TestActivityFactorRange_UnknownFallsBackToDefault(t *testing.T) {
	for _, s := range []Status{0, -3, 14, 99} {
		assert.Equal(t, Range{1.6, 1.8}, ActivityFactorRange(s))
	}
}

func TestDailyEnergyRequirement_Linear(t *testing.T) {
	rer := 393.66
	for _, af := range []float64{1.0, 1.4, 2.5} {
		assert.InDelta(t, 2*DailyEnergyRequirement(rer, af), DailyEnergyRequirement(rer, 2*af), 1e-9)
	}
}

func TestWaterIntakeRange(t *testing.T) {
	r, err := WaterIntakeRange(10)
	require.NoError(t, err)
	assert.Equal(t, Range{500, 600}, r)

	_, err = WaterIntakeRange(0)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestComputeTarget(t *testing.T) {
	tg, err := ComputeTarget(10, StatusNeuteredAdult)
	require.NoError(t, err)
	assert.InDelta(t, 393.64, tg.RER, 0.01)
	assert.InDelta(t, tg.RER*1.4, tg.DER.Min, 1e-9)
	assert.InDelta(t, tg.RER*1.6, tg.DER.Max, 1e-9)
	assert.Equal(t, Range{500, 600}, tg.Water)

	_, err = ComputeTarget(10, 99)
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = ComputeTarget(-2, StatusSenior)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" 13 ")
	require.NoError(t, err)
	assert.Equal(t, StatusSickAdult, s)
	assert.NotEmpty(t, s.Label())

	for _, raw := range []string{"0", "14", "99", "abc", ""} {
		_, err := ParseStatus(raw)
		assert.ErrorIs(t, err, ErrUnknownStatus, "raw=%q", raw)
	}
	assert.Len(t, Statuses(), 13)
}

func TestProgress(t *testing.T) {
	assert.InDelta(t, 50.0, Progress(300, 600), 1e-9)
	assert.Zero(t, Progress(300, 0))
}

func TestNormalizeFoods(t *testing.T) {
	got := NormalizeFoods([]string{"  sweet   potato", "Sweet Potato", "", "EGG", "egg"})
	assert.Equal(t, []string{"Egg", "Sweet Potato"}, got)

	f, ok := LookupFood("chicken breast")
	require.True(t, ok)
	assert.Equal(t, 115.0, f.Calories)

	_, ok = LookupFood("chocolate")
	assert.False(t, ok)
	assert.Len(t, KnownFoods(), 11)
}
