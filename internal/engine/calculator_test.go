package engine_test

import (
	"testing"

	"github.com/resolvedesk/quote-api/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	result := engine.Calculate(engine.CalculationInput{
		UrgencyMultiplier: 1.5,
		BaseHourlyRate:    40,
		RateMultiplier:    1.2,
		EffortHoursMin:    1,
		EffortHoursMax:    8,
	})

	assert.Equal(t, 1.5, result.AdjustedHoursMin)
	assert.Equal(t, 12.0, result.AdjustedHoursMax)
	assert.Equal(t, 6.75, result.MidHours)
	assert.Equal(t, 48.0, result.HourlyRate)
	assert.Equal(t, 324.0, result.Cost)
}

func TestCalculate_IdentityMultipliers(t *testing.T) {
	result := engine.Calculate(engine.CalculationInput{
		UrgencyMultiplier: 1,
		BaseHourlyRate:    100,
		RateMultiplier:    1,
		EffortHoursMin:    2,
		EffortHoursMax:    4,
	})

	assert.Equal(t, 2.0, result.AdjustedHoursMin)
	assert.Equal(t, 4.0, result.AdjustedHoursMax)
	assert.Equal(t, 3.0, result.MidHours)
	assert.Equal(t, 100.0, result.HourlyRate)
	assert.Equal(t, 300.0, result.Cost)
}

func TestCalculate_NoRounding(t *testing.T) {
	result := engine.Calculate(engine.CalculationInput{
		UrgencyMultiplier: 1.1,
		BaseHourlyRate:    33.33,
		RateMultiplier:    1.07,
		EffortHoursMin:    1,
		EffortHoursMax:    3,
	})

	mid := (1*1.1 + 3*1.1) / 2
	rate := 33.33 * 1.07
	assert.InDelta(t, mid*rate, result.Cost, 1e-12)
}

func TestCalculateManual(t *testing.T) {
	result := engine.CalculateManual(2, 10, 50, 20)

	assert.Equal(t, 6.0, result.MidHours)
	assert.Equal(t, 320.0, result.Cost)
}

func TestCalculateManual_ZeroFixedCost(t *testing.T) {
	result := engine.CalculateManual(4, 4, 75, 0)

	assert.Equal(t, 4.0, result.MidHours)
	assert.Equal(t, 300.0, result.Cost)
}
