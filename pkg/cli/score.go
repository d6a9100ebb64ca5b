package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
)

type scoreOutput struct {
	BMI          string               `json:"bmi"`
	TotalScore   int                  `json:"totalScore"`
	RiskCategory string               `json:"riskCategory"`
	Breakdown    model.ScoreBreakdown `json:"breakdown"`
}

var categoryColors = map[types.RiskCategory]*color.Color{
	types.RiskCategoryLow:         color.New(color.FgGreen, color.Bold),
	types.RiskCategoryModerate:    color.New(color.FgYellow, color.Bold),
	types.RiskCategoryHigh:        color.New(color.FgRed, color.Bold),
	types.RiskCategoryUninsurable: color.New(color.FgMagenta, color.Bold),
}

func cmdScore() *cli.Command {
	var input model.RiskInput
	var asJSON bool

	return &cli.Command{
		Name:  "score",
		Usage: "Compute a risk score once and print it",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "age",
				Usage:       "Age in years",
				Required:    true,
				Destination: &input.Age,
			},
			&cli.FloatFlag{
				Name:        "height",
				Usage:       "Height in centimeters",
				Required:    true,
				Destination: &input.HeightCm,
			},
			&cli.FloatFlag{
				Name:        "weight",
				Usage:       "Weight in kilograms",
				Required:    true,
				Destination: &input.WeightKg,
			},
			&cli.FloatFlag{
				Name:        "systolic",
				Usage:       "Systolic blood pressure in mmHg",
				Required:    true,
				Destination: &input.Systolic,
			},
			&cli.FloatFlag{
				Name:        "diastolic",
				Usage:       "Diastolic blood pressure in mmHg",
				Required:    true,
				Destination: &input.Diastolic,
			},
			&cli.StringSliceFlag{
				Name:        "family-history",
				Aliases:     []string{"f"},
				Usage:       "Condition in the family history (repeatable: diabetes, cancer, alzheimer)",
				Destination: &input.FamilyHistory,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Print the result as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			if w == nil {
				w = os.Stdout
			}

			result, err := usecase.New().Risk.Assess(ctx, input)
			if err != nil {
				if ve, ok := model.AsValidationError(err); ok {
					errW := c.Root().ErrWriter
					if errW == nil {
						errW = os.Stderr
					}
					_, _ = color.New(color.FgRed).Fprintln(errW, ve.Message)
				}
				return goerr.Wrap(err, "failed to compute risk")
			}

			if asJSON {
				return printScoreJSON(w, result)
			}
			return printScore(w, result)
		},
	}
}

func printScoreJSON(w io.Writer, result *model.RiskResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scoreOutput{
		BMI:          result.BMIString(),
		TotalScore:   result.TotalScore,
		RiskCategory: result.RiskCategory.String(),
		Breakdown:    result.Breakdown,
	}); err != nil {
		return goerr.Wrap(err, "failed to write result")
	}
	return nil
}

func printScore(w io.Writer, result *model.RiskResult) error {
	c, ok := categoryColors[result.RiskCategory]
	if !ok {
		c = color.New(color.Reset)
	}

	lines := []struct {
		label string
		value string
	}{
		{"BMI", result.BMIString()},
		{"Age points", fmt.Sprint(result.Breakdown.AgePoints)},
		{"BMI points", fmt.Sprint(result.Breakdown.BMIPoints)},
		{"Blood pressure points", fmt.Sprint(result.Breakdown.BloodPressurePoints)},
		{"Family history points", fmt.Sprint(result.Breakdown.FamilyHistoryPoints)},
		{"Total score", fmt.Sprint(result.TotalScore)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-22s %s\n", l.label+":", l.value); err != nil {
			return goerr.Wrap(err, "failed to write result")
		}
	}

	if _, err := fmt.Fprintf(w, "%-22s ", "Risk category:"); err != nil {
		return goerr.Wrap(err, "failed to write result")
	}
	if _, err := c.Fprintln(w, result.RiskCategory.String()); err != nil {
		return goerr.Wrap(err, "failed to write result")
	}
	return nil
}
