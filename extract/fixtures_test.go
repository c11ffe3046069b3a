package extract_test

import (
	"github.com/sdcforms/sdc-extract-go/extract"
	"github.com/sdcforms/sdc-extract-go/r4"
	"github.com/sdcforms/sdc-extract-go/utils/ptr"
)

func markerExtension() r4.Extension {
	return r4.Extension{
		URL:          extract.TemplateMarkerExtensionURL,
		ValueBoolean: ptr.To(true),
	}
}

func templateMeta() *r4.Meta {
	return &r4.Meta{Profile: []string{extract.TemplateMarkerExtensionURL}}
}

func expressionExtension(expr string) r4.Extension {
	return r4.Extension{
		URL:         extract.ExtractValueExtensionURL,
		ValueString: ptr.To(expr),
	}
}

func templateRefExtension(id string) r4.Extension {
	return r4.Extension{
		URL:            extract.ObservationTemplateRefExtensionURL,
		ValueReference: &r4.Reference{Reference: "#" + id},
	}
}

func loincCode(code, display string) *r4.CodeableConcept {
	return &r4.CodeableConcept{
		Coding: []r4.Coding{{System: "http://loinc.org", Code: code, Display: display}},
	}
}

func containedObs(obs r4.Observation) r4.ContainedResource {
	obs.ResourceType = "Observation"
	return r4.ContainedResource{Observation: &obs}
}

// bpQuestionnaire is the two-template blood-pressure shape: contained
// systolic and diastolic skeletons bound through item cross-references.
func bpQuestionnaire() *r4.Questionnaire {
	return &r4.Questionnaire{
		ResourceType: "Questionnaire",
		ID:           "bp-template",
		Meta:         templateMeta(),
		Extension:    []r4.Extension{markerExtension()},
		Contained: []r4.ContainedResource{
			containedObs(r4.Observation{
				ID:     "bp-systolic",
				Status: "preliminary",
				Code:   loincCode("8480-6", "Systolic blood pressure"),
			}),
			containedObs(r4.Observation{
				ID:     "bp-diastolic",
				Status: "preliminary",
				Code:   loincCode("8462-4", "Diastolic blood pressure"),
			}),
		},
		Item: []r4.QuestionnaireItem{
			{
				LinkID:    "systolic",
				Type:      "integer",
				Extension: []r4.Extension{templateRefExtension("bp-systolic")},
			},
			{
				LinkID:    "diastolic",
				Type:      "integer",
				Extension: []r4.Extension{templateRefExtension("bp-diastolic")},
			},
		},
	}
}

func bpResponse(systolic, diastolic *int) *r4.QuestionnaireResponse {
	resp := &r4.QuestionnaireResponse{
		ResourceType: "QuestionnaireResponse",
		Status:       "completed",
	}
	if systolic != nil {
		resp.Item = append(resp.Item, r4.QuestionnaireResponseItem{
			LinkID: "systolic",
			Answer: []r4.QuestionnaireResponseItemAnswer{{ValueInteger: systolic}},
		})
	}
	if diastolic != nil {
		resp.Item = append(resp.Item, r4.QuestionnaireResponseItem{
			LinkID: "diastolic",
			Answer: []r4.QuestionnaireResponseItemAnswer{{ValueInteger: diastolic}},
		})
	}
	return resp
}

// staticBMIQuestionnaire is the expression-driven BMI shape. heightUnit is
// the unit declared on the contained height skeleton, controlling BMI
// derivation.
func staticBMIQuestionnaire(heightUnit string) *r4.Questionnaire {
	return &r4.Questionnaire{
		ResourceType: "Questionnaire",
		ID:           "bmi-template",
		Meta:         templateMeta(),
		Extension:    []r4.Extension{markerExtension()},
		Contained: []r4.ContainedResource{
			containedObs(r4.Observation{
				ID:            "obs-height",
				Status:        "preliminary",
				Code:          loincCode("8302-2", "Body height"),
				ValueQuantity: &r4.Quantity{Unit: heightUnit},
				Extension: []r4.Extension{
					expressionExtension("item.where(linkId='height').answer.value"),
				},
			}),
			containedObs(r4.Observation{
				ID:            "obs-weight",
				Status:        "preliminary",
				Code:          loincCode("29463-7", "Body weight"),
				ValueQuantity: &r4.Quantity{Unit: "kg"},
				Extension: []r4.Extension{
					expressionExtension("item.where(linkId='weight').answer.value"),
				},
			}),
			containedObs(r4.Observation{
				ID:            "obs-bmi-result",
				Status:        "preliminary",
				Code:          loincCode("39156-5", "Body mass index"),
				ValueQuantity: &r4.Quantity{Unit: "kg/m2"},
			}),
		},
		Item: []r4.QuestionnaireItem{
			{LinkID: "height", Type: "decimal"},
			{LinkID: "weight", Type: "decimal"},
		},
	}
}

func bmiResponse(height, weight *float64) *r4.QuestionnaireResponse {
	resp := &r4.QuestionnaireResponse{
		ResourceType: "QuestionnaireResponse",
		Status:       "completed",
	}
	if height != nil {
		resp.Item = append(resp.Item, r4.QuestionnaireResponseItem{
			LinkID: "height",
			Answer: []r4.QuestionnaireResponseItemAnswer{{ValueDecimal: height}},
		})
	}
	if weight != nil {
		resp.Item = append(resp.Item, r4.QuestionnaireResponseItem{
			LinkID: "weight",
			Answer: []r4.QuestionnaireResponseItemAnswer{{ValueDecimal: weight}},
		})
	}
	return resp
}

// validatedBMIQuestionnaire is the cross-referenced BMI shape: a
// bmi-calculation group binding height, weight and an answered BMI result
// to three contained skeletons.
func validatedBMIQuestionnaire() *r4.Questionnaire {
	return &r4.Questionnaire{
		ResourceType: "Questionnaire",
		ID:           "bmi-calculator",
		Meta:         templateMeta(),
		Extension:    []r4.Extension{markerExtension()},
		Contained: []r4.ContainedResource{
			containedObs(r4.Observation{
				ID:            "height-obs",
				Status:        "preliminary",
				Code:          loincCode("8302-2", "Body height"),
				ValueQuantity: &r4.Quantity{Unit: "cm"},
			}),
			containedObs(r4.Observation{
				ID:            "weight-obs",
				Status:        "preliminary",
				Code:          loincCode("29463-7", "Body weight"),
				ValueQuantity: &r4.Quantity{Unit: "kg"},
			}),
			containedObs(r4.Observation{
				ID:            "bmi-obs",
				Status:        "preliminary",
				Code:          loincCode("39156-5", "Body mass index"),
				ValueQuantity: &r4.Quantity{Unit: "kg/m2"},
			}),
		},
		Item: []r4.QuestionnaireItem{
			{
				LinkID: "bmi-calculation",
				Type:   "group",
				Item: []r4.QuestionnaireItem{
					{
						LinkID:    "patient-height",
						Type:      "decimal",
						Extension: []r4.Extension{templateRefExtension("height-obs")},
					},
					{
						LinkID:    "patient-weight",
						Type:      "decimal",
						Extension: []r4.Extension{templateRefExtension("weight-obs")},
					},
					{
						LinkID:    "bmi-result",
						Type:      "decimal",
						Extension: []r4.Extension{templateRefExtension("bmi-obs")},
					},
				},
			},
		},
	}
}

func validatedBMIResponse(height, weight float64, bmi r4.QuestionnaireResponseItemAnswer) *r4.QuestionnaireResponse {
	return &r4.QuestionnaireResponse{
		ResourceType: "QuestionnaireResponse",
		Status:       "completed",
		Item: []r4.QuestionnaireResponseItem{
			{
				LinkID: "bmi-calculation",
				Item: []r4.QuestionnaireResponseItem{
					{
						LinkID: "patient-height",
						Answer: []r4.QuestionnaireResponseItemAnswer{{ValueDecimal: &height}},
					},
					{
						LinkID: "patient-weight",
						Answer: []r4.QuestionnaireResponseItemAnswer{{ValueDecimal: &weight}},
					},
					{
						LinkID: "bmi-result",
						Answer: []r4.QuestionnaireResponseItemAnswer{bmi},
					},
				},
			},
		},
	}
}

// componentPanelQuestionnaire holds a single contained panel whose systolic
// and diastolic components each carry their own extraction expression. The
// panel code is the BP panel LOINC, not the systolic/diastolic pair, so it
// is handled by the generic processor.
func componentPanelQuestionnaire() *r4.Questionnaire {
	return &r4.Questionnaire{
		ResourceType: "Questionnaire",
		ID:           "bp-panel-template",
		Meta:         templateMeta(),
		Extension:    []r4.Extension{markerExtension()},
		Contained: []r4.ContainedResource{
			containedObs(r4.Observation{
				ID:     "bp-panel",
				Status: "preliminary",
				Code:   loincCode("85354-9", "Blood pressure panel"),
				Component: []r4.ObservationComponent{
					{
						Code:          loincCode("8480-6", "Systolic blood pressure"),
						ValueQuantity: &r4.Quantity{Unit: "mm[Hg]"},
						Extension: []r4.Extension{
							expressionExtension("item.where(linkId='systolic').answer.value"),
						},
					},
					{
						Code:          loincCode("8462-4", "Diastolic blood pressure"),
						ValueQuantity: &r4.Quantity{Unit: "mm[Hg]"},
						Extension: []r4.Extension{
							expressionExtension("item.where(linkId='diastolic').answer.value"),
						},
					},
				},
			}),
		},
		Item: []r4.QuestionnaireItem{
			{LinkID: "systolic", Type: "integer"},
			{LinkID: "diastolic", Type: "integer"},
		},
	}
}
