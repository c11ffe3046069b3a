package extract

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/sdcforms/sdc-extract-go/r4"
)

// Contained-resource ids of the static (expression-driven) BMI template.
const (
	staticHeightObsID = "obs-height"
	staticWeightObsID = "obs-weight"
	staticResultObsID = "obs-bmi-result"
)

// bmiProcessor handles the two BMI template shapes: the static shape with
// conventional obs-height/obs-weight/obs-bmi-result ids and per-template
// extraction expressions, where the BMI value is derived from height and
// weight; and the validator shape with height-obs/weight-obs/bmi-obs ids
// bound through item cross-references, where the BMI value is read from the
// answered bmi-result item.
type bmiProcessor struct{}

func (bmiProcessor) CanProcess(q *r4.Questionnaire) bool {
	if !IsBMITemplate(q) {
		return false
	}
	return hasStaticBMITemplates(q) || ValidateBMITemplate(q).IsValid
}

func (bmiProcessor) Process(q *r4.Questionnaire, response *r4.QuestionnaireResponse) ([]*r4.Observation, []ProcessingError) {
	return ProcessBMITemplate(q, response)
}

func hasStaticBMITemplates(q *r4.Questionnaire) bool {
	return findContained(q, staticHeightObsID) != nil &&
		findContained(q, staticWeightObsID) != nil &&
		findContained(q, staticResultObsID) != nil
}

// ProcessBMITemplate extracts height, weight and BMI observations. Height
// and weight are independent fields; the derived or answered BMI is emitted
// only when its inputs resolve.
func ProcessBMITemplate(q *r4.Questionnaire, response *r4.QuestionnaireResponse) ([]*r4.Observation, []ProcessingError) {
	if hasStaticBMITemplates(q) {
		return processStaticBMI(q, response)
	}
	return processValidatedBMI(q, response)
}

// processStaticBMI evaluates the height and weight extraction expressions
// and, when both resolve, derives bmi = weight / height². The height
// template's declared unit is authoritative: meters are used as-is,
// centimeters are divided by 100 before squaring, and any other unit
// suppresses derivation.
func processStaticBMI(q *r4.Questionnaire, response *r4.QuestionnaireResponse) ([]*r4.Observation, []ProcessingError) {
	heightTmpl := findContained(q, staticHeightObsID)
	weightTmpl := findContained(q, staticWeightObsID)
	bmiTmpl := findContained(q, staticResultObsID)

	var (
		observations []*r4.Observation
		errs         []ProcessingError
	)

	emit := func(tmpl *r4.Observation, field string) (float64, bool) {
		ans, err := answerForTemplate(q, tmpl, response)
		if err != nil {
			errs = append(errs, fieldError(err, field))
			return 0, false
		}
		value, ok := numericAnswerValue(ans)
		if !ok {
			errs = append(errs, fieldError(ErrMissingAnswer, field))
			return 0, false
		}
		out := tmpl.DeepCopy()
		out.Extension = stripExtractionExpression(out.Extension)
		applyAnswerQuantity(out, ans, value)
		observations = append(observations, out)
		return value, true
	}

	height, heightOK := emit(heightTmpl, "height")
	weight, weightOK := emit(weightTmpl, "weight")

	if heightOK && weightOK {
		unit := ""
		if heightTmpl.ValueQuantity != nil {
			unit = heightTmpl.ValueQuantity.Unit
		}
		if bmi, ok := deriveBMI(weight, height, unit); ok {
			out := bmiTmpl.DeepCopy()
			out.Extension = stripExtractionExpression(out.Extension)
			if out.ValueQuantity == nil {
				out.ValueQuantity = &r4.Quantity{}
			}
			out.ValueQuantity.Value = &bmi
			observations = append(observations, out)
		}
	}
	return observations, errs
}

// processValidatedBMI binds each of the three cross-referenced templates to
// its answered item. The BMI value is the recorded answer, not a derived
// quantity, so its comparator carries over (e.g. a BMI recorded as >30).
func processValidatedBMI(q *r4.Questionnaire, response *r4.QuestionnaireResponse) ([]*r4.Observation, []ProcessingError) {
	res := ValidateBMITemplate(q)
	if !res.IsValid {
		return nil, []ProcessingError{{
			Code:    CodeTemplateExtractionError,
			Message: res.Error.Message,
			Details: res.Error,
		}}
	}

	fields := [3]string{"height", "weight", "bmi"}
	var (
		observations []*r4.Observation
		errs         []ProcessingError
	)
	for i, tmpl := range res.Templates {
		ans, err := answerForTemplate(q, tmpl, response)
		if err != nil {
			errs = append(errs, fieldError(err, fields[i]))
			continue
		}
		value, ok := numericAnswerValue(ans)
		if !ok {
			errs = append(errs, fieldError(ErrMissingAnswer, fields[i]))
			continue
		}
		out := tmpl.DeepCopy()
		out.Extension = stripExtractionExpression(out.Extension)
		applyAnswerQuantity(out, ans, value)
		observations = append(observations, out)
	}
	return observations, errs
}

// deriveBMI computes weight / height² in decimal arithmetic and rounds to
// two decimal places. heightUnit "" and "m" are treated as meters; "cm" is
// converted by dividing by 100.
func deriveBMI(weightKg, height float64, heightUnit string) (float64, bool) {
	ctx := apd.BaseContext.WithPrecision(16)

	var h, w apd.Decimal
	if _, err := h.SetFloat64(height); err != nil {
		return 0, false
	}
	if _, err := w.SetFloat64(weightKg); err != nil {
		return 0, false
	}

	switch heightUnit {
	case "", "m":
	case "cm":
		if _, err := ctx.Quo(&h, &h, apd.New(100, 0)); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if h.IsZero() {
		return 0, false
	}

	var sq, bmi apd.Decimal
	if _, err := ctx.Mul(&sq, &h, &h); err != nil {
		return 0, false
	}
	if _, err := ctx.Quo(&bmi, &w, &sq); err != nil {
		return 0, false
	}
	if _, err := ctx.Quantize(&bmi, &bmi, -2); err != nil {
		return 0, false
	}
	f, err := bmi.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}
