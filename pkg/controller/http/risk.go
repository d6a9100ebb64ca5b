package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
	"github.com/secmon-lab/riskcalc/pkg/utils/errutil"
)

// calculateRiskRequest keeps numeric fields raw so that both JSON numbers and
// numeric strings from HTML forms are accepted.
type calculateRiskRequest struct {
	Age           json.RawMessage `json:"age"`
	Height        json.RawMessage `json:"height"`
	Weight        json.RawMessage `json:"weight"`
	Systolic      json.RawMessage `json:"systolic"`
	Diastolic     json.RawMessage `json:"diastolic"`
	FamilyHistory []string        `json:"familyHistory"`
}

type calculateRiskResponse struct {
	BMI          string `json:"bmi"`
	TotalScore   int    `json:"totalScore"`
	RiskCategory string `json:"riskCategory"`
}

func calculateRiskHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req calculateRiskRequest
		body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			verr := uc.Reject(ctx, model.NewValidationError("body", model.MsgMalformedBody))
			errutil.HandleHTTP(ctx, w, goerr.Wrap(verr, "failed to decode request", goerr.V("cause", err.Error())), http.StatusBadRequest)
			return
		}

		input, ve := req.toInput()
		if ve != nil {
			errutil.HandleHTTP(ctx, w, uc.Reject(ctx, ve), http.StatusBadRequest)
			return
		}

		result, err := uc.Assess(ctx, *input)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, model.ErrValidation) {
				status = http.StatusBadRequest
			}
			errutil.HandleHTTP(ctx, w, err, status)
			return
		}

		errutil.WriteJSON(ctx, w, http.StatusOK, calculateRiskResponse{
			BMI:          result.BMIString(),
			TotalScore:   result.TotalScore,
			RiskCategory: result.RiskCategory.String(),
		})
	}
}

// toInput converts the raw request. Each range rule runs as soon as its
// fields are parsed so that a height error is reported whatever the other
// fields hold.
func (x *calculateRiskRequest) toInput() (*model.RiskInput, *model.ValidationError) {
	height, ve := parseNumber("height", x.Height)
	if ve != nil {
		return nil, ve
	}
	if ve = asValidationError(model.ValidateHeight(height)); ve != nil {
		return nil, ve
	}

	weight, ve := parseNumber("weight", x.Weight)
	if ve != nil {
		return nil, ve
	}
	if ve = asValidationError(model.ValidateWeight(weight)); ve != nil {
		return nil, ve
	}

	systolic, ve := parseNumber("systolic", x.Systolic)
	if ve != nil {
		return nil, ve
	}
	diastolic, ve := parseNumber("diastolic", x.Diastolic)
	if ve != nil {
		return nil, ve
	}
	if ve = asValidationError(model.ValidateBloodPressure(systolic, diastolic)); ve != nil {
		return nil, ve
	}

	age, ve := parseNumber("age", x.Age)
	if ve != nil {
		return nil, ve
	}
	if ve = asValidationError(model.ValidateAge(age)); ve != nil {
		return nil, ve
	}

	return &model.RiskInput{
		Age:           int(age),
		HeightCm:      height,
		WeightKg:      weight,
		Systolic:      systolic,
		Diastolic:     diastolic,
		FamilyHistory: x.FamilyHistory,
	}, nil
}

func asValidationError(err error) *model.ValidationError {
	ve, _ := model.AsValidationError(err)
	return ve
}

// parseNumber accepts a JSON number or a string holding a decimal number
func parseNumber(field string, raw json.RawMessage) (float64, *model.ValidationError) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, model.NewMissingValueError(field)
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, model.NewInvalidNumberError(field)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, model.NewMissingValueError(field)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, model.NewInvalidNumberError(field)
		}
		return v, nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, model.NewInvalidNumberError(field)
	}
	return v, nil
}
