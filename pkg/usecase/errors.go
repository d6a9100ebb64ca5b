package usecase

// Context keys for error values
const (
	AssessmentIDKey = "assessment_id"
)
