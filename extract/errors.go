package extract

// ValidationCode identifies why a questionnaire failed template
// classification or structural validation. The set is closed.
type ValidationCode string

const (
	CodeMissingProfile      ValidationCode = "missing-profile"
	CodeInvalidProfile      ValidationCode = "invalid-profile"
	CodeNoTemplates         ValidationCode = "no-templates"
	CodeInvalidTemplateType ValidationCode = "invalid-template-type"
	CodeInvalidBMITemplate  ValidationCode = "invalid-bmi-template"
	CodeInvalidBPTemplate   ValidationCode = "invalid-bp-template"
)

// ValidationError describes a classification or structural failure. The
// message names the specific missing piece where one is known.
type ValidationError struct {
	Code    ValidationCode `json:"code"`
	Message string         `json:"message"`
}

func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ProcessingCode identifies a processing-stage failure. The set is closed.
type ProcessingCode string

const (
	// CodeTemplateExtractionError wraps a classification failure at the
	// orchestrator level.
	CodeTemplateExtractionError ProcessingCode = "TEMPLATE_EXTRACTION_ERROR"
	// CodeNoTemplatesFound is returned when the questionnaire contains no
	// Observation templates.
	CodeNoTemplatesFound ProcessingCode = "NO_TEMPLATES"
	// CodeNoProcessor is returned when no processor accepts the
	// questionnaire.
	CodeNoProcessor ProcessingCode = "NO_PROCESSOR"
	// CodeInvalidExpression marks a per-field extraction expression outside
	// the supported grammar.
	CodeInvalidExpression ProcessingCode = "INVALID_EXPRESSION"
	// CodeMissingAnswer marks a well-formed expression whose referenced
	// response answer is absent.
	CodeMissingAnswer ProcessingCode = "MISSING_ANSWER"
	// CodeProcessingError wraps an unexpected panic during processing; the
	// recovered value is attached as Details.
	CodeProcessingError ProcessingCode = "PROCESSING_ERROR"
)

// ProcessingError is one entry of a result's error list. Per-field errors
// (INVALID_EXPRESSION, MISSING_ANSWER) never abort sibling fields; the
// result reflects best-effort extraction alongside the accumulated errors.
type ProcessingError struct {
	Code    ProcessingCode `json:"code"`
	Message string         `json:"message"`
	Details any            `json:"details,omitempty"`
}

func (e ProcessingError) Error() string {
	return string(e.Code) + ": " + e.Message
}
