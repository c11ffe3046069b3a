package r4

import (
	json "github.com/goccy/go-json"
)

// Observation represents a FHIR R4 Observation resource. Contained template
// observations use the same type: a skeleton with a code, an optional
// valueQuantity carrying the target unit, and extraction extensions.
type Observation struct {
	ResourceType      string                 `json:"resourceType"`
	ID                string                 `json:"id,omitempty"`
	Meta              *Meta                  `json:"meta,omitempty"`
	Status            string                 `json:"status,omitempty"` // registered | preliminary | final | amended | ...
	Category          []CodeableConcept      `json:"category,omitempty"`
	Code              *CodeableConcept       `json:"code,omitempty"`
	Subject           *Reference             `json:"subject,omitempty"`
	EffectiveDateTime string                 `json:"effectiveDateTime,omitempty"`
	Issued            string                 `json:"issued,omitempty"`
	ValueQuantity     *Quantity              `json:"valueQuantity,omitempty"`
	ValueInteger      *int                   `json:"valueInteger,omitempty"`
	ValueString       *string                `json:"valueString,omitempty"`
	Extension         []Extension            `json:"extension,omitempty"`
	Component         []ObservationComponent `json:"component,omitempty"`
}

// ObservationComponent is a sub-measurement within one Observation, e.g.
// systolic and diastolic within a blood-pressure panel.
type ObservationComponent struct {
	Code          *CodeableConcept `json:"code,omitempty"`
	ValueQuantity *Quantity        `json:"valueQuantity,omitempty"`
	ValueInteger  *int             `json:"valueInteger,omitempty"`
	ValueString   *string          `json:"valueString,omitempty"`
	Extension     []Extension      `json:"extension,omitempty"`
}

// DeepCopy returns a structurally identical Observation sharing no memory
// with the receiver. Extraction clones templates before populating them so
// outputs never alias the questionnaire's contained resources.
func (o *Observation) DeepCopy() *Observation {
	if o == nil {
		return nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		// Observation contains only marshalable fields.
		panic(err)
	}
	var out Observation
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return &out
}

// FirstCoding returns the first coding of c, or nil.
func (c *CodeableConcept) FirstCoding() *Coding {
	if c == nil || len(c.Coding) == 0 {
		return nil
	}
	return &c.Coding[0]
}
