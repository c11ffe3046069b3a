package extract

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/sdcforms/sdc-extract-go/r4"
)

// Expression is a parsed extraction expression. The grammar is a single
// deliberately narrow pattern family,
//
//	item.where(linkId='<id>')[.item.where(linkId='<id>')...].answer.value[X]
//
// where the optional [X] suffix is Integer, Decimal, String, Boolean or
// Quantity. This is not a general FHIRPath implementation: arithmetic,
// functions and any other construct fail to parse.
type Expression struct {
	raw  string
	path []string
}

var (
	expressionPattern = regexp.MustCompile(
		`^(?:item\.where\(linkId='[^']+'\)\.)+answer\.value(?:Integer|Decimal|String|Boolean|Quantity)?$`)
	linkIDPattern = regexp.MustCompile(`linkId='([^']+)'`)
)

// SyntaxError reports an expression outside the supported grammar.
type SyntaxError struct {
	Expr string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("can not parse expression %q", e.Expr)
}

// Sentinel errors returned by Expression.Evaluate.
var (
	// ErrItemNotFound indicates no response item matches a linkId segment.
	ErrItemNotFound = errors.New("response item not found")
	// ErrMissingAnswer indicates the referenced item carries no usable answer.
	ErrMissingAnswer = errors.New("response item has no answer")
)

// Parse parses an extraction expression. Expressions outside the grammar
// return a SyntaxError.
func Parse(expr string) (Expression, error) {
	if !expressionPattern.MatchString(expr) {
		return Expression{}, SyntaxError{Expr: expr}
	}
	var path []string
	for _, m := range linkIDPattern.FindAllStringSubmatch(expr, -1) {
		path = append(path, m[1])
	}
	return Expression{raw: expr, path: path}, nil
}

// MustParse is like Parse but panics on invalid expressions. Useful for
// hardcoded expressions in tests.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the original expression text.
func (e Expression) String() string {
	return e.raw
}

// answer resolves the response answer the expression points at. Each linkId
// segment is resolved with FindItemByLinkID, so a single segment may refer
// to an item at any depth; additional segments narrow the search to the
// matched item's subtree.
func (e Expression) answer(response *r4.QuestionnaireResponse) (*r4.QuestionnaireResponseItemAnswer, error) {
	if len(e.path) == 0 {
		return nil, SyntaxError{Expr: e.raw}
	}
	if response == nil {
		return nil, fmt.Errorf("item %q: %w", e.path[0], ErrItemNotFound)
	}
	items := response.Item
	var item *r4.QuestionnaireResponseItem
	for _, linkID := range e.path {
		item = FindItemByLinkID(items, linkID)
		if item == nil {
			return nil, fmt.Errorf("item %q: %w", linkID, ErrItemNotFound)
		}
		items = item.Item
	}
	if len(item.Answer) == 0 {
		return nil, fmt.Errorf("item %q: %w", item.LinkID, ErrMissingAnswer)
	}
	return &item.Answer[0], nil
}

// Evaluate resolves the expression against the response and returns the
// answer's numeric value (valueInteger, then valueDecimal, then
// valueQuantity.value). Lookup failures are reported via ErrItemNotFound
// and ErrMissingAnswer.
func (e Expression) Evaluate(response *r4.QuestionnaireResponse) (float64, error) {
	ans, err := e.answer(response)
	if err != nil {
		return 0, err
	}
	v, ok := numericAnswerValue(ans)
	if !ok {
		return 0, fmt.Errorf("item %q: %w", e.path[len(e.path)-1], ErrMissingAnswer)
	}
	return v, nil
}

// Evaluate parses and evaluates expr against the response. Any failure,
// whether the expression is outside the grammar or the referenced item or
// answer is absent, yields ok == false; it never returns an error or
// panics.
func Evaluate(response *r4.QuestionnaireResponse, expr string) (float64, bool) {
	e, err := Parse(expr)
	if err != nil {
		return 0, false
	}
	v, err := e.Evaluate(response)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numericAnswerValue extracts a numeric value from an answer, trying
// valueInteger, valueDecimal and valueQuantity.value in that order.
func numericAnswerValue(ans *r4.QuestionnaireResponseItemAnswer) (float64, bool) {
	switch {
	case ans == nil:
		return 0, false
	case ans.ValueInteger != nil:
		return float64(*ans.ValueInteger), true
	case ans.ValueDecimal != nil:
		return *ans.ValueDecimal, true
	case ans.ValueQuantity != nil && ans.ValueQuantity.Value != nil:
		return *ans.ValueQuantity.Value, true
	}
	return 0, false
}
