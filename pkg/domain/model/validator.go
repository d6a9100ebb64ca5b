package model

import "math"

// Range limits for accepted biometric values
const (
	MinHeightCm  = 60
	MinSystolic  = 50
	MaxSystolic  = 300
	MinDiastolic = 30
	MaxDiastolic = 200

	// MaxAge bounds the magnitude of an age given as a float so that it
	// converts to int without overflow
	MaxAge = math.MaxInt32
)

// Validate checks the input ranges in a fixed order and returns only the
// first violation found.
func (x *RiskInput) Validate() error {
	if err := ValidateHeight(x.HeightCm); err != nil {
		return err
	}
	if err := ValidateWeight(x.WeightKg); err != nil {
		return err
	}
	return ValidateBloodPressure(x.Systolic, x.Diastolic)
}

// ValidateHeight rejects a non-finite height or one below MinHeightCm
func ValidateHeight(heightCm float64) error {
	if !isFinite(heightCm) {
		return NewInvalidNumberError("height")
	}
	if heightCm < MinHeightCm {
		return NewValidationError("height", MsgHeightTooLow)
	}
	return nil
}

// ValidateWeight rejects a non-finite or non-positive weight
func ValidateWeight(weightKg float64) error {
	if !isFinite(weightKg) {
		return NewInvalidNumberError("weight")
	}
	if weightKg <= 0 {
		return NewValidationError("weight", MsgWeightNotPositive)
	}
	return nil
}

// ValidateBloodPressure rejects readings outside the accepted mmHg ranges
func ValidateBloodPressure(systolic, diastolic float64) error {
	if !isFinite(systolic) {
		return NewInvalidNumberError("systolic")
	}
	if !isFinite(diastolic) {
		return NewInvalidNumberError("diastolic")
	}
	if systolic < MinSystolic || systolic > MaxSystolic ||
		diastolic < MinDiastolic || diastolic > MaxDiastolic {
		return NewValidationError("bloodPressure", MsgInvalidBloodPressure)
	}
	return nil
}

// ValidateAge rejects a fractional age or one that does not fit MaxAge
func ValidateAge(age float64) error {
	if !isFinite(age) {
		return NewInvalidNumberError("age")
	}
	if age != math.Trunc(age) {
		return NewValidationError("age", MsgAgeNotWholeNumber)
	}
	if math.Abs(age) > MaxAge {
		return NewValidationError("age", MsgAgeOutOfRange)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
