package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

type RiskUseCase struct {
	metrics interfaces.AssessmentMetrics
}

// NewRiskUseCase creates a RiskUseCase. metrics may be nil.
func NewRiskUseCase(metrics interfaces.AssessmentMetrics) *RiskUseCase {
	return &RiskUseCase{
		metrics: metrics,
	}
}

// Assess scores a single input. A rejected input is returned as an error
// wrapping *model.ValidationError.
func (uc *RiskUseCase) Assess(ctx context.Context, input model.RiskInput) (*model.RiskResult, error) {
	assessmentID := uuid.NewString()
	logger := logging.From(ctx).With(AssessmentIDKey, assessmentID)

	result, err := model.ComputeRisk(input)
	if err != nil {
		ve, ok := model.AsValidationError(err)
		if !ok {
			return nil, goerr.Wrap(err, "failed to compute risk", goerr.V(AssessmentIDKey, assessmentID))
		}

		return nil, uc.reject(logger.With("input", input), assessmentID, err, ve)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveAssessment(result.RiskCategory, result.TotalScore)
	}
	logger.Info("risk assessed",
		"input", input,
		"total_score", result.TotalScore,
		"risk_category", result.RiskCategory,
		"breakdown", result.Breakdown,
	)

	return result, nil
}

// Reject records an input refused before it could be scored, such as a
// request field that is missing or not a number. It returns ve wrapped with
// the assessment ID.
func (uc *RiskUseCase) Reject(ctx context.Context, ve *model.ValidationError) error {
	assessmentID := uuid.NewString()
	logger := logging.From(ctx).With(AssessmentIDKey, assessmentID)
	return uc.reject(logger, assessmentID, ve, ve)
}

func (uc *RiskUseCase) reject(logger *slog.Logger, assessmentID string, err error, ve *model.ValidationError) error {
	if uc.metrics != nil {
		uc.metrics.ObserveValidationFailure(ve.Field)
	}
	logger.Info("risk input rejected", "field", ve.Field, "reason", ve.Message)
	return goerr.Wrap(err, "invalid risk input",
		goerr.V(AssessmentIDKey, assessmentID),
		goerr.V(model.FieldKey, ve.Field),
	)
}
