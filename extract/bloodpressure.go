package extract

import (
	"github.com/sdcforms/sdc-extract-go/r4"
)

// bloodPressureProcessor handles the two-template blood-pressure shape:
// separate contained systolic and diastolic Observations cross-referenced
// by top-level items. Component-based panels fall through to the generic
// template processor.
type bloodPressureProcessor struct{}

func (bloodPressureProcessor) CanProcess(q *r4.Questionnaire) bool {
	return IsBloodPressureTemplate(q) && ValidateBloodPressureTemplate(q).IsValid
}

func (bloodPressureProcessor) Process(q *r4.Questionnaire, response *r4.QuestionnaireResponse) ([]*r4.Observation, []ProcessingError) {
	return ProcessBloodPressureTemplate(q, response)
}

// ProcessBloodPressureTemplate extracts systolic and diastolic observations.
// The two fields are independent: a missing input for one never suppresses
// the other. Emitted values carry the mm[Hg] UCUM quantity.
func ProcessBloodPressureTemplate(q *r4.Questionnaire, response *r4.QuestionnaireResponse) ([]*r4.Observation, []ProcessingError) {
	res := ValidateBloodPressureTemplate(q)
	if !res.IsValid {
		return nil, []ProcessingError{{
			Code:    CodeTemplateExtractionError,
			Message: res.Error.Message,
			Details: res.Error,
		}}
	}

	fields := [2]string{"systolic", "diastolic"}
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
		out.ValueQuantity = &r4.Quantity{
			Value:  &value,
			Unit:   "mm[Hg]",
			System: UCUMSystemURL,
			Code:   "mm[Hg]",
		}
		if ans.ValueQuantity != nil && ans.ValueQuantity.Comparator != "" {
			out.ValueQuantity.Comparator = ans.ValueQuantity.Comparator
		}
		observations = append(observations, out)
	}
	return observations, errs
}
