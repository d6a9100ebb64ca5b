package model

import (
	"github.com/shopspring/decimal"

	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

// RiskInput is the biometric data of a single assessment request.
// Every field is health data and is masked in logs.
type RiskInput struct {
	Age           int      `json:"age" masq:"secret"`
	HeightCm      float64  `json:"height" masq:"secret"`
	WeightKg      float64  `json:"weight" masq:"secret"`
	Systolic      float64  `json:"systolic" masq:"secret"`
	Diastolic     float64  `json:"diastolic" masq:"secret"`
	FamilyHistory []string `json:"familyHistory" masq:"secret"`
}

// HasFamilyCondition reports whether the family history contains the condition.
// Matching is exact and case-sensitive.
func (x *RiskInput) HasFamilyCondition(c types.FamilyCondition) bool {
	for _, entry := range x.FamilyHistory {
		if entry == c.String() {
			return true
		}
	}
	return false
}

// ScoreBreakdown holds the four sub-scores that add up to the total score
type ScoreBreakdown struct {
	AgePoints           int `json:"agePoints"`
	BMIPoints           int `json:"bmiPoints"`
	BloodPressurePoints int `json:"bloodPressurePoints"`
	FamilyHistoryPoints int `json:"familyHistoryPoints"`
}

// Total returns the sum of all sub-scores
func (x ScoreBreakdown) Total() int {
	return x.AgePoints + x.BMIPoints + x.BloodPressurePoints + x.FamilyHistoryPoints
}

// RiskResult is the outcome of a successful assessment
type RiskResult struct {
	// BMI is rounded to 2 decimal places
	BMI          decimal.Decimal
	TotalScore   int
	RiskCategory types.RiskCategory
	Breakdown    ScoreBreakdown
}

// BMIString returns the BMI with exactly 2 decimal places, e.g. "24.20"
func (x *RiskResult) BMIString() string {
	return x.BMI.StringFixed(2)
}
