package usecase

import (
	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
)

type UseCases struct {
	metrics interfaces.AssessmentMetrics
	Risk    *RiskUseCase
}

type Option func(*UseCases)

func WithMetrics(m interfaces.AssessmentMetrics) Option {
	return func(uc *UseCases) {
		uc.metrics = m
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Risk = NewRiskUseCase(uc.metrics)

	return uc
}
