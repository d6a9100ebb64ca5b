package types

// FamilyCondition is a hereditary condition that adds points when present in family history.
// Matching is case-sensitive.
type FamilyCondition string

const (
	FamilyConditionDiabetes  FamilyCondition = "diabetes"
	FamilyConditionCancer    FamilyCondition = "cancer"
	FamilyConditionAlzheimer FamilyCondition = "alzheimer"
)

// AllFamilyConditions returns every condition that contributes to the family history score
func AllFamilyConditions() []FamilyCondition {
	return []FamilyCondition{
		FamilyConditionDiabetes,
		FamilyConditionCancer,
		FamilyConditionAlzheimer,
	}
}

// IsKnown reports whether the condition contributes to the score
func (c FamilyCondition) IsKnown() bool {
	switch c {
	case FamilyConditionDiabetes,
		FamilyConditionCancer,
		FamilyConditionAlzheimer:
		return true
	default:
		return false
	}
}

func (c FamilyCondition) String() string {
	return string(c)
}
