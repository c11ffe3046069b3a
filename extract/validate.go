package extract

import (
	"github.com/sdcforms/sdc-extract-go/r4"
)

// LOINC and SNOMED codes governing template family detection.
const (
	codeSystolic  = "8480-6"
	codeDiastolic = "8462-4"
	codeBMILoinc  = "39156-5"
	codeBMISnomed = "60621009"
)

// Canonical contained-resource ids of the validator-shaped BMI template.
const (
	bmiHeightObsID = "height-obs"
	bmiWeightObsID = "weight-obs"
	bmiResultObsID = "bmi-obs"
)

// ValidationResult is the outcome of template classification. On success
// Templates holds the contained Observations eligible for processing, in
// processing order.
type ValidationResult struct {
	IsValid   bool
	Error     *ValidationError
	Templates []*r4.Observation
}

func invalidResult(code ValidationCode, message string) ValidationResult {
	return ValidationResult{Error: &ValidationError{Code: code, Message: message}}
}

// VerifyTemplateProfile checks that the questionnaire declares itself a
// template: the boolean template-marker extension must be present and true,
// and meta.profile must carry the template or observation-template profile.
func VerifyTemplateProfile(q *r4.Questionnaire) ValidationResult {
	if q == nil {
		return invalidResult(CodeMissingProfile, "questionnaire must have the template extension")
	}

	hasMarker := false
	for i := range q.Extension {
		ext := &q.Extension[i]
		if ext.URL == TemplateMarkerExtensionURL && ext.ValueBoolean != nil && *ext.ValueBoolean {
			hasMarker = true
			break
		}
	}
	if !hasMarker {
		return invalidResult(CodeMissingProfile, "questionnaire must have the template extension")
	}

	hasProfile := false
	if q.Meta != nil {
		for _, p := range q.Meta.Profile {
			if p == TemplateMarkerExtensionURL || p == ObservationTemplateProfileURL {
				hasProfile = true
				break
			}
		}
	}
	if !hasProfile {
		return invalidResult(CodeInvalidProfile, "questionnaire must have either the template profile or the observation template profile")
	}

	return ValidationResult{IsValid: true}
}

// IsBloodPressureTemplate reports whether the questionnaire matches the
// blood-pressure family heuristic: a contained Observation coded systolic
// or diastolic, plus top-level systolic/diastolic items.
func IsBloodPressureTemplate(q *r4.Questionnaire) bool {
	if q == nil {
		return false
	}
	hasObs := findContainedByCode(q, codeSystolic) != nil || findContainedByCode(q, codeDiastolic) != nil
	hasItems := false
	for i := range q.Item {
		if q.Item[i].LinkID == "systolic" || q.Item[i].LinkID == "diastolic" {
			hasItems = true
			break
		}
	}
	return hasObs && hasItems
}

// IsBMITemplate reports whether the questionnaire matches the BMI family
// heuristic: a contained BMI-coded Observation (or one with the
// conventional result id) plus height/weight items, directly or nested one
// level down.
func IsBMITemplate(q *r4.Questionnaire) bool {
	if q == nil {
		return false
	}
	hasObs := false
	for _, obs := range containedObservations(q) {
		if obs.ID == "obs-bmi-result" {
			hasObs = true
			break
		}
		if c := obs.Code.FirstCoding(); c != nil && (c.Code == codeBMILoinc || c.Code == codeBMISnomed) {
			hasObs = true
			break
		}
	}
	hasItems := false
	for i := range q.Item {
		if q.Item[i].LinkID == "height" || q.Item[i].LinkID == "weight" {
			hasItems = true
			break
		}
		for j := range q.Item[i].Item {
			switch q.Item[i].Item[j].LinkID {
			case "patient-height", "patient-weight", "bmi-result":
				hasItems = true
			}
		}
		if hasItems {
			break
		}
	}
	return hasObs && hasItems
}

// ValidateBloodPressureTemplate verifies the blood-pressure template shape:
// contained systolic and diastolic Observations, top-level systolic and
// diastolic items, and item cross-references pointing at the matching
// contained ids. On success Templates is [systolic, diastolic].
func ValidateBloodPressureTemplate(q *r4.Questionnaire) ValidationResult {
	systolicObs := findContainedByCode(q, codeSystolic)
	diastolicObs := findContainedByCode(q, codeDiastolic)
	if systolicObs == nil || diastolicObs == nil {
		return invalidResult(CodeInvalidBPTemplate, "blood pressure template must contain systolic and diastolic observations")
	}

	var systolicItem, diastolicItem *r4.QuestionnaireItem
	for i := range q.Item {
		switch q.Item[i].LinkID {
		case "systolic":
			systolicItem = &q.Item[i]
		case "diastolic":
			diastolicItem = &q.Item[i]
		}
	}
	if systolicItem == nil || diastolicItem == nil {
		return invalidResult(CodeInvalidBPTemplate, "blood pressure template must have systolic and diastolic items")
	}

	if !hasTemplateRef(systolicItem.Extension, systolicObs.ID) ||
		!hasTemplateRef(diastolicItem.Extension, diastolicObs.ID) {
		return invalidResult(CodeInvalidBPTemplate, "blood pressure template items must have correct observation template references")
	}

	return ValidationResult{IsValid: true, Templates: []*r4.Observation{systolicObs, diastolicObs}}
}

// ValidateBMITemplate verifies the validator-shaped BMI template: contained
// height/weight/BMI Observations with canonical ids, a bmi-calculation
// group holding patient-height, patient-weight and bmi-result items, and
// cross-references from those items to the matching contained ids. On
// success Templates is [height, weight, bmi].
func ValidateBMITemplate(q *r4.Questionnaire) ValidationResult {
	heightObs := findContained(q, bmiHeightObsID)
	weightObs := findContained(q, bmiWeightObsID)
	bmiObs := findContained(q, bmiResultObsID)
	if heightObs == nil || weightObs == nil || bmiObs == nil {
		return invalidResult(CodeInvalidBMITemplate, "BMI template must contain height, weight, and BMI observations")
	}

	var group *r4.QuestionnaireItem
	for i := range q.Item {
		if q.Item[i].LinkID == "bmi-calculation" {
			group = &q.Item[i]
			break
		}
	}
	if group == nil {
		return invalidResult(CodeInvalidBMITemplate, "BMI template must have a bmi-calculation group item")
	}

	var heightItem, weightItem, bmiItem *r4.QuestionnaireItem
	for i := range group.Item {
		switch group.Item[i].LinkID {
		case "patient-height":
			heightItem = &group.Item[i]
		case "patient-weight":
			weightItem = &group.Item[i]
		case "bmi-result":
			bmiItem = &group.Item[i]
		}
	}
	if heightItem == nil || weightItem == nil || bmiItem == nil {
		return invalidResult(CodeInvalidBMITemplate, "BMI template must have height, weight, and BMI result items")
	}

	if !hasTemplateRef(heightItem.Extension, bmiHeightObsID) ||
		!hasTemplateRef(weightItem.Extension, bmiWeightObsID) ||
		!hasTemplateRef(bmiItem.Extension, bmiResultObsID) {
		return invalidResult(CodeInvalidBMITemplate, "BMI template items must have correct observation template references")
	}

	return ValidationResult{IsValid: true, Templates: []*r4.Observation{heightObs, weightObs, bmiObs}}
}

// ExtractTemplateObservations classifies a questionnaire and, for a
// recognized family, validates its structure and returns its template
// Observations. Blood pressure is checked before BMI; a questionnaire
// matching both heuristics is treated as blood pressure.
func ExtractTemplateObservations(q *r4.Questionnaire) ValidationResult {
	if res := VerifyTemplateProfile(q); !res.IsValid {
		return res
	}
	if IsBloodPressureTemplate(q) {
		return ValidateBloodPressureTemplate(q)
	}
	if IsBMITemplate(q) {
		return ValidateBMITemplate(q)
	}
	return invalidResult(CodeInvalidTemplateType, "questionnaire must be either a blood pressure or BMI calculator template")
}
