// Package testdata holds canonical template questionnaire and response
// documents used by tests and examples.
package testdata

import (
	_ "embed"

	json "github.com/goccy/go-json"

	"github.com/sdcforms/sdc-extract-go/r4"
)

// BloodPressureQuestionnaireJSON is a complete blood-pressure template
// questionnaire, including a contained non-Observation resource.
//
//go:embed questionnaire-bloodpressure.json
var BloodPressureQuestionnaireJSON []byte

// BloodPressureResponseJSON is a completed response to the blood-pressure
// template questionnaire.
//
//go:embed questionnaireresponse-bloodpressure.json
var BloodPressureResponseJSON []byte

// BloodPressureQuestionnaire decodes the embedded questionnaire. It panics
// on decode failure; the embedded document is fixed.
func BloodPressureQuestionnaire() *r4.Questionnaire {
	var q r4.Questionnaire
	if err := json.Unmarshal(BloodPressureQuestionnaireJSON, &q); err != nil {
		panic(err)
	}
	return &q
}

// BloodPressureResponse decodes the embedded questionnaire response.
func BloodPressureResponse() *r4.QuestionnaireResponse {
	var resp r4.QuestionnaireResponse
	if err := json.Unmarshal(BloodPressureResponseJSON, &resp); err != nil {
		panic(err)
	}
	return &resp
}
