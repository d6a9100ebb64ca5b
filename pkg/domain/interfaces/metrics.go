package interfaces

import "github.com/secmon-lab/riskcalc/pkg/domain/types"

// AssessmentMetrics receives the outcome of every risk assessment
type AssessmentMetrics interface {
	ObserveAssessment(category types.RiskCategory, totalScore int)
	ObserveValidationFailure(field string)
}
