package extract

import (
	"errors"
	"fmt"

	"github.com/sdcforms/sdc-extract-go/r4"
)

// Processor is a family-specific extraction strategy.
type Processor interface {
	// CanProcess reports whether the questionnaire matches this processor's
	// template shape.
	CanProcess(q *r4.Questionnaire) bool
	// Process extracts observations from the response. Per-field failures
	// are reported as errors without suppressing independent fields.
	Process(q *r4.Questionnaire, response *r4.QuestionnaireResponse) ([]*r4.Observation, []ProcessingError)
}

// processors in dispatch order. Blood pressure is checked before BMI, the
// same precedence the classifier applies; the generic expression-driven
// processor is the fallback. A fixed slice, not a registry: adding a family
// requires an explicit ordering decision here.
var processors = []Processor{
	bloodPressureProcessor{},
	bmiProcessor{},
	templateProcessor{},
}

// answerForTemplate resolves the response answer governing a template
// Observation: through its extraction expression when one is present,
// otherwise through the item that cross-references the template by
// contained id.
func answerForTemplate(q *r4.Questionnaire, tmpl *r4.Observation, response *r4.QuestionnaireResponse) (*r4.QuestionnaireResponseItemAnswer, error) {
	if expr, ok := extractionExpression(tmpl.Extension); ok {
		e, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		return e.answer(response)
	}

	item := findReferencingItem(q.Item, tmpl.ID)
	if item == nil {
		return nil, fmt.Errorf("no item references template %q: %w", tmpl.ID, ErrItemNotFound)
	}
	if response == nil {
		return nil, fmt.Errorf("item %q: %w", item.LinkID, ErrItemNotFound)
	}
	respItem := FindItemByLinkID(response.Item, item.LinkID)
	if respItem == nil {
		return nil, fmt.Errorf("item %q: %w", item.LinkID, ErrItemNotFound)
	}
	if len(respItem.Answer) == 0 {
		return nil, fmt.Errorf("item %q: %w", respItem.LinkID, ErrMissingAnswer)
	}
	return &respItem.Answer[0], nil
}

// fieldError converts an expression or lookup failure into a per-field
// processing error. Grammar failures map to INVALID_EXPRESSION, absent
// items or answers to MISSING_ANSWER.
func fieldError(err error, field string) ProcessingError {
	var syn SyntaxError
	if errors.As(err, &syn) {
		return ProcessingError{
			Code:    CodeInvalidExpression,
			Message: fmt.Sprintf("%s: %s", field, syn.Error()),
		}
	}
	return ProcessingError{
		Code:    CodeMissingAnswer,
		Message: fmt.Sprintf("%s: %s", field, err.Error()),
	}
}

// applyAnswerQuantity fills a cloned template's valueQuantity from a
// resolved answer. The template's declared unit wins; an answer quantity
// supplies the unit only when the template declares none, and its
// comparator is always propagated.
func applyAnswerQuantity(out *r4.Observation, ans *r4.QuestionnaireResponseItemAnswer, value float64) {
	if out.ValueQuantity == nil {
		if ans.ValueQuantity != nil {
			q := *ans.ValueQuantity
			q.Value = &value
			out.ValueQuantity = &q
			return
		}
		out.ValueQuantity = &r4.Quantity{}
	}
	out.ValueQuantity.Value = &value
	if ans.ValueQuantity != nil {
		if out.ValueQuantity.Unit == "" {
			out.ValueQuantity.Unit = ans.ValueQuantity.Unit
			out.ValueQuantity.System = ans.ValueQuantity.System
			out.ValueQuantity.Code = ans.ValueQuantity.Code
		}
		if ans.ValueQuantity.Comparator != "" {
			out.ValueQuantity.Comparator = ans.ValueQuantity.Comparator
		}
	}
}
