package extract

import (
	"fmt"

	"github.com/sdcforms/sdc-extract-go/r4"
)

// templateProcessor is the generic expression-driven path. It handles flat
// and nested questionnaire shapes transparently (linkId resolution recurses
// through groups) and both template granularities: one Observation per
// value, and a single Observation whose components each carry their own
// extraction expression.
type templateProcessor struct{}

func (templateProcessor) CanProcess(q *r4.Questionnaire) bool {
	for _, tmpl := range containedObservations(q) {
		if _, ok := extractionExpression(tmpl.Extension); ok {
			return true
		}
		for i := range tmpl.Component {
			if _, ok := extractionExpression(tmpl.Component[i].Extension); ok {
				return true
			}
		}
	}
	return false
}

func (templateProcessor) Process(q *r4.Questionnaire, response *r4.QuestionnaireResponse) ([]*r4.Observation, []ProcessingError) {
	return ProcessObservationTemplates(q, response)
}

// ProcessObservationTemplates extracts observations from every contained
// template carrying extraction expressions. Templates without any
// expression are skipped.
func ProcessObservationTemplates(q *r4.Questionnaire, response *r4.QuestionnaireResponse) ([]*r4.Observation, []ProcessingError) {
	var (
		observations []*r4.Observation
		errs         []ProcessingError
	)
	for _, tmpl := range containedObservations(q) {
		hasComponentExprs := false
		for i := range tmpl.Component {
			if _, ok := extractionExpression(tmpl.Component[i].Extension); ok {
				hasComponentExprs = true
				break
			}
		}

		switch {
		case hasComponentExprs:
			out, templateErrs := processComponentTemplate(tmpl, response)
			errs = append(errs, templateErrs...)
			if out != nil {
				observations = append(observations, out)
			}
		default:
			expr, ok := extractionExpression(tmpl.Extension)
			if !ok {
				continue
			}
			out, err := processValueTemplate(tmpl, expr, response)
			if err != nil {
				errs = append(errs, fieldError(err, templateField(tmpl)))
				continue
			}
			observations = append(observations, out)
		}
	}
	return observations, errs
}

// processValueTemplate evaluates a template's own extraction expression and
// returns a populated clone.
func processValueTemplate(tmpl *r4.Observation, expr string, response *r4.QuestionnaireResponse) (*r4.Observation, error) {
	e, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	ans, err := e.answer(response)
	if err != nil {
		return nil, err
	}

	out := tmpl.DeepCopy()
	out.Extension = stripExtractionExpression(out.Extension)
	if value, ok := numericAnswerValue(ans); ok {
		if out.ValueQuantity == nil && ans.ValueInteger != nil {
			v := *ans.ValueInteger
			out.ValueInteger = &v
			return out, nil
		}
		applyAnswerQuantity(out, ans, value)
		return out, nil
	}
	if ans.ValueString != nil {
		s := *ans.ValueString
		out.ValueString = &s
		return out, nil
	}
	return nil, fmt.Errorf("item %q: %w", e.path[len(e.path)-1], ErrMissingAnswer)
}

// processComponentTemplate evaluates each component's extraction expression
// and emits the parent Observation once, carrying the successfully
// evaluated components in their declared order. A failed component never
// drops the Observation as long as at least one component resolved; if none
// resolved, no Observation is emitted.
func processComponentTemplate(tmpl *r4.Observation, response *r4.QuestionnaireResponse) (*r4.Observation, []ProcessingError) {
	out := tmpl.DeepCopy()
	out.Extension = stripExtractionExpression(out.Extension)

	var (
		components []r4.ObservationComponent
		errs       []ProcessingError
		resolved   int
	)
	for i := range tmpl.Component {
		comp := out.Component[i]
		expr, ok := extractionExpression(tmpl.Component[i].Extension)
		if !ok {
			// Components without an expression are carried unchanged.
			components = append(components, comp)
			continue
		}

		value, ans, err := evaluateComponent(expr, response)
		if err != nil {
			errs = append(errs, fieldError(err, componentField(tmpl, &tmpl.Component[i])))
			continue
		}

		comp.Extension = stripExtractionExpression(comp.Extension)
		switch {
		case comp.ValueQuantity != nil:
			// The template declares the target quantity; only the value is
			// filled in.
			comp.ValueQuantity.Value = &value
			if ans.ValueQuantity != nil && ans.ValueQuantity.Comparator != "" {
				comp.ValueQuantity.Comparator = ans.ValueQuantity.Comparator
			}
		case ans.ValueInteger != nil:
			v := *ans.ValueInteger
			comp.ValueInteger = &v
		case ans.ValueQuantity != nil:
			q := *ans.ValueQuantity
			q.Value = &value
			comp.ValueQuantity = &q
		default:
			comp.ValueQuantity = &r4.Quantity{Value: &value}
		}
		components = append(components, comp)
		resolved++
	}

	if resolved == 0 {
		return nil, errs
	}
	out.Component = components
	return out, errs
}

func evaluateComponent(expr string, response *r4.QuestionnaireResponse) (float64, *r4.QuestionnaireResponseItemAnswer, error) {
	e, err := Parse(expr)
	if err != nil {
		return 0, nil, err
	}
	ans, err := e.answer(response)
	if err != nil {
		return 0, nil, err
	}
	value, ok := numericAnswerValue(ans)
	if !ok {
		return 0, nil, fmt.Errorf("item %q: %w", e.path[len(e.path)-1], ErrMissingAnswer)
	}
	return value, ans, nil
}

// templateField names a template for error messages, preferring its id.
func templateField(tmpl *r4.Observation) string {
	if tmpl.ID != "" {
		return "template " + tmpl.ID
	}
	if c := tmpl.Code.FirstCoding(); c != nil {
		return "template " + c.Code
	}
	return "template"
}

func componentField(tmpl *r4.Observation, comp *r4.ObservationComponent) string {
	if c := comp.Code.FirstCoding(); c != nil {
		return templateField(tmpl) + " component " + c.Code
	}
	return templateField(tmpl) + " component"
}
