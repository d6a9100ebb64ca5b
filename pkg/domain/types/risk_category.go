package types

import "fmt"

// RiskCategory is the label derived from a total risk score
type RiskCategory string

const (
	RiskCategoryLow         RiskCategory = "Low Risk"
	RiskCategoryModerate    RiskCategory = "Moderate Risk"
	RiskCategoryHigh        RiskCategory = "High Risk"
	RiskCategoryUninsurable RiskCategory = "Uninsurable"
)

// AllRiskCategories returns all risk categories ordered from lowest to highest
func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskCategoryLow,
		RiskCategoryModerate,
		RiskCategoryHigh,
		RiskCategoryUninsurable,
	}
}

// IsValid checks if the risk category is one of the known labels
func (c RiskCategory) IsValid() bool {
	switch c {
	case RiskCategoryLow,
		RiskCategoryModerate,
		RiskCategoryHigh,
		RiskCategoryUninsurable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk category
func (c RiskCategory) String() string {
	return string(c)
}

// ParseRiskCategory parses a string into a RiskCategory
func ParseRiskCategory(s string) (RiskCategory, error) {
	category := RiskCategory(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid risk category: %s", s)
	}
	return category, nil
}
