package model

import (
	"github.com/shopspring/decimal"

	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

var (
	bmiNormalMin     = decimal.RequireFromString("18.5")
	bmiNormalMax     = decimal.RequireFromString("24.9")
	bmiOverweightMin = decimal.RequireFromString("25.0")
	bmiOverweightMax = decimal.RequireFromString("29.9")

	centimetersPerMeter = decimal.NewFromInt(100)
)

// ComputeRisk validates the input and scores it. The only error it returns is
// a *ValidationError.
func ComputeRisk(input RiskInput) (*RiskResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	bmi := CalculateBMI(input.HeightCm, input.WeightKg)
	breakdown := ScoreBreakdown{
		AgePoints:           AgePoints(input.Age),
		BMIPoints:           BMIPoints(bmi),
		BloodPressurePoints: BloodPressurePoints(input.Systolic, input.Diastolic),
		FamilyHistoryPoints: FamilyHistoryPoints(&input),
	}
	total := breakdown.Total()

	return &RiskResult{
		BMI:          bmi,
		TotalScore:   total,
		RiskCategory: CategoryForScore(total),
		Breakdown:    breakdown,
	}, nil
}

// CalculateBMI returns weight / (height in meters)^2 rounded half away from
// zero to 2 decimal places. heightCm must be positive.
func CalculateBMI(heightCm, weightKg float64) decimal.Decimal {
	heightM := decimal.NewFromFloat(heightCm).Div(centimetersPerMeter)
	return decimal.NewFromFloat(weightKg).Div(heightM.Mul(heightM)).Round(2)
}

// AgePoints scores age in years
func AgePoints(age int) int {
	switch {
	case age < 30:
		return 0
	case age < 45:
		return 10
	case age < 60:
		return 20
	default:
		return 30
	}
}

// BMIPoints scores a rounded BMI. Values between the table rows (e.g. 24.95)
// fall through to the highest band.
func BMIPoints(bmi decimal.Decimal) int {
	switch {
	case bmi.GreaterThanOrEqual(bmiNormalMin) && bmi.LessThanOrEqual(bmiNormalMax):
		return 0
	case bmi.GreaterThanOrEqual(bmiOverweightMin) && bmi.LessThanOrEqual(bmiOverweightMax):
		return 30
	default:
		return 75
	}
}

// BloodPressurePoints scores a reading. Rules are evaluated top down; the
// first two need both values in range, the next two need only one.
func BloodPressurePoints(systolic, diastolic float64) int {
	switch {
	case systolic < 120 && diastolic < 80:
		return 0
	case systolic < 130 && diastolic < 80:
		return 15
	case systolic < 140 || diastolic < 90:
		return 30
	case systolic < 180 || diastolic < 120:
		return 75
	default:
		return 100
	}
}

// FamilyHistoryPoints adds 10 points per known condition present, once each
func FamilyHistoryPoints(input *RiskInput) int {
	points := 0
	for _, c := range types.AllFamilyConditions() {
		if input.HasFamilyCondition(c) {
			points += 10
		}
	}
	return points
}

// CategoryForScore maps a total score to its risk category
func CategoryForScore(total int) types.RiskCategory {
	switch {
	case total <= 20:
		return types.RiskCategoryLow
	case total <= 50:
		return types.RiskCategoryModerate
	case total <= 75:
		return types.RiskCategoryHigh
	default:
		return types.RiskCategoryUninsurable
	}
}
