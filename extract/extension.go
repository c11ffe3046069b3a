package extract

import (
	"strings"

	"github.com/sdcforms/sdc-extract-go/r4"
)

// Extension and profile URLs that must match exactly for classification.
const (
	// TemplateMarkerExtensionURL marks a questionnaire as a template
	// (boolean extension). The same URL doubles as the generic template
	// profile in meta.profile.
	TemplateMarkerExtensionURL = "http://hl7.org/fhir/uv/sdc/StructureDefinition/sdc-questionnaire-template"

	// ObservationTemplateProfileURL is the profile for questionnaires whose
	// contained observations are extraction templates.
	ObservationTemplateProfileURL = "http://hl7.org/fhir/uv/sdc/StructureDefinition/sdc-questionnaire-observationTemplate"

	// ObservationTemplateRefExtensionURL links a questionnaire item to one
	// contained Observation via a "#<id>" reference.
	ObservationTemplateRefExtensionURL = "http://hl7.org/fhir/StructureDefinition/questionnaire-observationTemplate"

	// ExtractValueExtensionURL and ExtractFHIRPathExtensionURL both carry a
	// valueString extraction expression on a template Observation or
	// component. Source data uses the two interchangeably, so lookups
	// accept either.
	ExtractValueExtensionURL    = "http://hl7.org/fhir/uv/sdc/StructureDefinition/sdc-questionnaire-templateExtractValue"
	ExtractFHIRPathExtensionURL = "http://hl7.org/fhir/uv/sdc/StructureDefinition/sdc-questionnaire-fhirPath"

	// UCUMSystemURL is the unit system stamped onto emitted quantities.
	UCUMSystemURL = "http://unitsofmeasure.org"
)

// extractionExpression returns the extraction expression carried by exts,
// accepting both known extension URLs.
func extractionExpression(exts []r4.Extension) (string, bool) {
	for i := range exts {
		if exts[i].URL != ExtractValueExtensionURL && exts[i].URL != ExtractFHIRPathExtensionURL {
			continue
		}
		if exts[i].ValueString != nil {
			return *exts[i].ValueString, true
		}
	}
	return "", false
}

// stripExtractionExpression drops extraction-expression extensions from a
// cloned extension list. Emitted observations must not retain the consumed
// expression.
func stripExtractionExpression(exts []r4.Extension) []r4.Extension {
	var out []r4.Extension
	for i := range exts {
		if exts[i].URL == ExtractValueExtensionURL || exts[i].URL == ExtractFHIRPathExtensionURL {
			continue
		}
		out = append(out, exts[i])
	}
	return out
}

// templateRefID returns the contained-resource id ("#id" without the hash)
// referenced by an item's observation-template extension.
func templateRefID(exts []r4.Extension) (string, bool) {
	for i := range exts {
		if exts[i].URL != ObservationTemplateRefExtensionURL {
			continue
		}
		ref := exts[i].ValueReference
		if ref != nil && strings.HasPrefix(ref.Reference, "#") {
			return strings.TrimPrefix(ref.Reference, "#"), true
		}
	}
	return "", false
}

// hasTemplateRef reports whether exts reference the contained resource id.
func hasTemplateRef(exts []r4.Extension, containedID string) bool {
	id, ok := templateRefID(exts)
	return ok && id == containedID
}

// containedObservations collects the contained Observation templates of q.
func containedObservations(q *r4.Questionnaire) []*r4.Observation {
	if q == nil {
		return nil
	}
	var out []*r4.Observation
	for i := range q.Contained {
		if q.Contained[i].Observation != nil {
			out = append(out, q.Contained[i].Observation)
		}
	}
	return out
}

// findContained returns the contained Observation with the given id.
func findContained(q *r4.Questionnaire, id string) *r4.Observation {
	for _, obs := range containedObservations(q) {
		if obs.ID == id {
			return obs
		}
	}
	return nil
}

// findContainedByCode returns the first contained Observation whose first
// coding carries the given code.
func findContainedByCode(q *r4.Questionnaire, code string) *r4.Observation {
	for _, obs := range containedObservations(q) {
		if c := obs.Code.FirstCoding(); c != nil && c.Code == code {
			return obs
		}
	}
	return nil
}

// findQuestionnaireItem searches the questionnaire item tree depth-first
// for the given linkId, the same traversal FindItemByLinkID applies to
// response items.
func findQuestionnaireItem(items []r4.QuestionnaireItem, linkID string) *r4.QuestionnaireItem {
	for i := range items {
		if items[i].LinkID == linkID {
			return &items[i]
		}
		if found := findQuestionnaireItem(items[i].Item, linkID); found != nil {
			return found
		}
	}
	return nil
}

// findReferencingItem returns the first questionnaire item (at any depth)
// whose observation-template extension references the contained id.
func findReferencingItem(items []r4.QuestionnaireItem, containedID string) *r4.QuestionnaireItem {
	for i := range items {
		if hasTemplateRef(items[i].Extension, containedID) {
			return &items[i]
		}
		if found := findReferencingItem(items[i].Item, containedID); found != nil {
			return found
		}
	}
	return nil
}
