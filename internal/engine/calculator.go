// Package engine contains the quote calculation engine: pure cost arithmetic
// and the rule/rate-profile resolution that feeds it.
package engine

// CalculationInput are the resolved parameters for an automatic quote.
type CalculationInput struct {
	UrgencyMultiplier float64
	BaseHourlyRate    float64
	RateMultiplier    float64
	EffortHoursMin    float64
	EffortHoursMax    float64
}

// CalculationResult holds the derived estimate figures. No rounding is
// applied anywhere; values are stored as computed.
type CalculationResult struct {
	AdjustedHoursMin float64
	AdjustedHoursMax float64
	MidHours         float64
	HourlyRate       float64
	Cost             float64
}

// Calculate derives the automatic quote figures from a matched rule and rate
// profile. The cost is the midpoint of the urgency-adjusted hour range times
// the multiplied hourly rate; automatic quotes carry no fixed cost.
func Calculate(in CalculationInput) CalculationResult {
	adjustedMin := in.EffortHoursMin * in.UrgencyMultiplier
	adjustedMax := in.EffortHoursMax * in.UrgencyMultiplier
	midHours := (adjustedMin + adjustedMax) / 2
	hourlyRate := in.BaseHourlyRate * in.RateMultiplier

	return CalculationResult{
		AdjustedHoursMin: adjustedMin,
		AdjustedHoursMax: adjustedMax,
		MidHours:         midHours,
		HourlyRate:       hourlyRate,
		Cost:             midHours * hourlyRate,
	}
}

// ManualResult holds the derived figures for a user-supplied quote.
type ManualResult struct {
	MidHours float64
	Cost     float64
}

// CalculateManual applies the midpoint/cost formula to user-supplied values:
// cost = midHours*hourlyRate + fixedCost.
func CalculateManual(hoursMin, hoursMax, hourlyRate, fixedCost float64) ManualResult {
	midHours := (hoursMin + hoursMax) / 2
	return ManualResult{
		MidHours: midHours,
		Cost:     midHours*hourlyRate + fixedCost,
	}
}
