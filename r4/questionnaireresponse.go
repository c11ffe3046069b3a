package r4

// QuestionnaireResponse represents a filled-out form. Its item tree mirrors
// the shape of the Questionnaire it answers, including group nesting.
type QuestionnaireResponse struct {
	ResourceType  string                      `json:"resourceType"`
	ID            string                      `json:"id,omitempty"`
	Meta          *Meta                       `json:"meta,omitempty"`
	Questionnaire string                      `json:"questionnaire,omitempty"`
	Status        string                      `json:"status,omitempty"` // in-progress | completed | amended | ...
	Subject       *Reference                  `json:"subject,omitempty"`
	Authored      string                      `json:"authored,omitempty"`
	Author        *Reference                  `json:"author,omitempty"`
	Item          []QuestionnaireResponseItem `json:"item,omitempty"`
}

// QuestionnaireResponseItem is one answered (or unanswered) item. Group
// items carry nested Item entries and no Answer.
type QuestionnaireResponseItem struct {
	LinkID string                            `json:"linkId"`
	Text   string                            `json:"text,omitempty"`
	Answer []QuestionnaireResponseItemAnswer `json:"answer,omitempty"`
	Item   []QuestionnaireResponseItem       `json:"item,omitempty"`
}

// QuestionnaireResponseItemAnswer holds one typed answer value. Exactly one
// value[x] is populated.
type QuestionnaireResponseItemAnswer struct {
	ID            string    `json:"id,omitempty"`
	ValueBoolean  *bool     `json:"valueBoolean,omitempty"`
	ValueDecimal  *float64  `json:"valueDecimal,omitempty"`
	ValueInteger  *int      `json:"valueInteger,omitempty"`
	ValueString   *string   `json:"valueString,omitempty"`
	ValueCoding   *Coding   `json:"valueCoding,omitempty"`
	ValueQuantity *Quantity `json:"valueQuantity,omitempty"`
}
