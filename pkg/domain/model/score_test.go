package model_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

func TestAgePoints(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{age: 0, want: 0},
		{age: 29, want: 0},
		{age: 30, want: 10},
		{age: 44, want: 10},
		{age: 45, want: 20},
		{age: 59, want: 20},
		{age: 60, want: 30},
		{age: 120, want: 30},
		{age: -1, want: 0},
	}

	for _, tt := range tests {
		gt.Value(t, model.AgePoints(tt.age)).Equal(tt.want)
	}
}

func TestBMIPoints(t *testing.T) {
	tests := []struct {
		bmi  string
		want int
	}{
		{bmi: "18.49", want: 75},
		{bmi: "18.50", want: 0},
		{bmi: "22.00", want: 0},
		{bmi: "24.90", want: 0},
		{bmi: "24.95", want: 75},
		{bmi: "25.00", want: 30},
		{bmi: "29.90", want: 30},
		{bmi: "29.91", want: 75},
		{bmi: "35.00", want: 75},
	}

	for _, tt := range tests {
		t.Run(tt.bmi, func(t *testing.T) {
			gt.Value(t, model.BMIPoints(decimal.RequireFromString(tt.bmi))).Equal(tt.want)
		})
	}
}

func TestBloodPressurePoints(t *testing.T) {
	tests := []struct {
		name      string
		systolic  float64
		diastolic float64
		want      int
	}{
		{name: "normal", systolic: 119, diastolic: 79, want: 0},
		{name: "systolic at 120 is elevated", systolic: 120, diastolic: 79, want: 15},
		{name: "elevated upper edge", systolic: 129, diastolic: 79, want: 15},
		{name: "low systolic with diastolic 80", systolic: 110, diastolic: 80, want: 30},
		{name: "stage 1 by systolic", systolic: 135, diastolic: 95, want: 30},
		{name: "stage 1 by diastolic", systolic: 150, diastolic: 85, want: 30},
		{name: "stage 2", systolic: 150, diastolic: 95, want: 75},
		{name: "stage 2 by diastolic only", systolic: 200, diastolic: 110, want: 75},
		{name: "crisis", systolic: 180, diastolic: 120, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.BloodPressurePoints(tt.systolic, tt.diastolic)).Equal(tt.want)
		})
	}
}

func TestFamilyHistoryPoints(t *testing.T) {
	tests := []struct {
		name    string
		history []string
		want    int
	}{
		{name: "nil", history: nil, want: 0},
		{name: "one condition", history: []string{"diabetes"}, want: 10},
		{name: "order a", history: []string{"cancer", "diabetes"}, want: 20},
		{name: "order b", history: []string{"diabetes", "cancer"}, want: 20},
		{name: "all three", history: []string{"alzheimer", "cancer", "diabetes"}, want: 30},
		{name: "duplicates count once", history: []string{"cancer", "cancer", "cancer"}, want: 10},
		{name: "unknown ignored", history: []string{"asthma", "heart disease", "alzheimer"}, want: 10},
		{name: "case sensitive", history: []string{"Diabetes", "CANCER"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := model.RiskInput{FamilyHistory: tt.history}
			gt.Value(t, model.FamilyHistoryPoints(&input)).Equal(tt.want)
		})
	}
}

func TestCategoryForScore(t *testing.T) {
	tests := []struct {
		total int
		want  types.RiskCategory
	}{
		{total: 0, want: types.RiskCategoryLow},
		{total: 20, want: types.RiskCategoryLow},
		{total: 21, want: types.RiskCategoryModerate},
		{total: 50, want: types.RiskCategoryModerate},
		{total: 51, want: types.RiskCategoryHigh},
		{total: 75, want: types.RiskCategoryHigh},
		{total: 76, want: types.RiskCategoryUninsurable},
		{total: 235, want: types.RiskCategoryUninsurable},
	}

	for _, tt := range tests {
		gt.Value(t, model.CategoryForScore(tt.total)).Equal(tt.want)
	}
}

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name     string
		heightCm float64
		weightKg float64
		want     string
	}{
		{name: "example", heightCm: 170, weightKg: 70, want: "24.22"},
		{name: "exact", heightCm: 100, weightKg: 24.9, want: "24.90"},
		{name: "half rounds away from zero", heightCm: 200, weightKg: 98.02, want: "24.51"},
		{name: "below half rounds down", heightCm: 200, weightKg: 98.01, want: "24.50"},
		{name: "minimum height", heightCm: 60, weightKg: 20, want: "55.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bmi := model.CalculateBMI(tt.heightCm, tt.weightKg)
			gt.Value(t, bmi.StringFixed(2)).Equal(tt.want)
		})
	}
}

func TestComputeRisk(t *testing.T) {
	t.Run("moderate risk example", func(t *testing.T) {
		result, err := model.ComputeRisk(model.RiskInput{
			Age:           50,
			HeightCm:      170,
			WeightKg:      70,
			Systolic:      125,
			Diastolic:     78,
			FamilyHistory: []string{"diabetes"},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.BMIString()).Equal("24.22")
		gt.Value(t, result.Breakdown).Equal(model.ScoreBreakdown{
			AgePoints:           20,
			BMIPoints:           0,
			BloodPressurePoints: 15,
			FamilyHistoryPoints: 10,
		})
		gt.Value(t, result.TotalScore).Equal(45)
		gt.Value(t, result.RiskCategory).Equal(types.RiskCategoryModerate)
	})

	t.Run("low risk at total 20", func(t *testing.T) {
		result, err := model.ComputeRisk(model.RiskInput{
			Age:           45,
			HeightCm:      100,
			WeightKg:      22,
			Systolic:      110,
			Diastolic:     70,
			FamilyHistory: []string{},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.TotalScore).Equal(20)
		gt.Value(t, result.RiskCategory).Equal(types.RiskCategoryLow)
	})

	t.Run("uninsurable", func(t *testing.T) {
		result, err := model.ComputeRisk(model.RiskInput{
			Age:           65,
			HeightCm:      160,
			WeightKg:      110,
			Systolic:      190,
			Diastolic:     125,
			FamilyHistory: []string{"diabetes", "cancer", "alzheimer"},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.TotalScore).Equal(30 + 75 + 100 + 30)
		gt.Value(t, result.RiskCategory).Equal(types.RiskCategoryUninsurable)
	})

	t.Run("total equals sum of breakdown", func(t *testing.T) {
		result, err := model.ComputeRisk(model.RiskInput{
			Age:       33,
			HeightCm:  182,
			WeightKg:  91,
			Systolic:  138,
			Diastolic: 88,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.TotalScore).Equal(result.Breakdown.Total())
		gt.Value(t, result.BMIString()).Equal("27.47")
		gt.Value(t, result.TotalScore).Equal(10 + 30 + 30)
	})

	t.Run("deterministic", func(t *testing.T) {
		input := model.RiskInput{
			Age:           41,
			HeightCm:      175.5,
			WeightKg:      80.3,
			Systolic:      131,
			Diastolic:     84,
			FamilyHistory: []string{"cancer"},
		}
		first, err := model.ComputeRisk(input)
		gt.NoError(t, err).Required()
		for i := 0; i < 10; i++ {
			again, err := model.ComputeRisk(input)
			gt.NoError(t, err).Required()
			gt.Value(t, again.BMIString()).Equal(first.BMIString())
			gt.Value(t, again.TotalScore).Equal(first.TotalScore)
			gt.Value(t, again.RiskCategory).Equal(first.RiskCategory)
		}
	})

	t.Run("validation error stops scoring", func(t *testing.T) {
		result, err := model.ComputeRisk(model.RiskInput{
			Age:       50,
			HeightCm:  50,
			WeightKg:  70,
			Systolic:  120,
			Diastolic: 80,
		})
		gt.Value(t, result).Nil()
		gt.Error(t, err).Is(model.ErrValidation)
		gt.Value(t, err.Error()).Equal(model.MsgHeightTooLow)
	})

	t.Run("non-finite values are rejected", func(t *testing.T) {
		inputs := map[string]model.RiskInput{
			"NaN height":      {Age: 40, HeightCm: math.NaN(), WeightKg: 70, Systolic: 120, Diastolic: 80},
			"infinite height": {Age: 40, HeightCm: math.Inf(1), WeightKg: 70, Systolic: 120, Diastolic: 80},
			"infinite weight": {Age: 40, HeightCm: 170, WeightKg: math.Inf(1), Systolic: 120, Diastolic: 80},
			"NaN systolic":    {Age: 40, HeightCm: 170, WeightKg: 70, Systolic: math.NaN(), Diastolic: 80},
		}
		for name, input := range inputs {
			t.Run(name, func(t *testing.T) {
				result, err := model.ComputeRisk(input)
				gt.Value(t, result).Nil()
				gt.Error(t, err).Is(model.ErrValidation)
			})
		}
	})
}
