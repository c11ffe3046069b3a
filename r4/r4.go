// Package r4 provides the FHIR R4 resource types consumed and produced by
// the template extraction engine: Questionnaire, QuestionnaireResponse and
// Observation, plus the datatypes they reference.
//
// The structs map 1:1 onto the FHIR R4 JSON representation. Only the
// elements the engine touches are modeled; unknown elements of contained
// resources are preserved as raw JSON (see ContainedResource).
package r4

// Meta contains metadata about a resource.
type Meta struct {
	VersionID   string   `json:"versionId,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	Source      string   `json:"source,omitempty"`
	Profile     []string `json:"profile,omitempty"`
}

// Coding represents a code from a terminology system.
type Coding struct {
	System       string `json:"system,omitempty"`
	Version      string `json:"version,omitempty"`
	Code         string `json:"code,omitempty"`
	Display      string `json:"display,omitempty"`
	UserSelected bool   `json:"userSelected,omitempty"`
}

// CodeableConcept represents a concept with text and codings.
type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// Reference represents a reference to another resource. References of the
// form "#id" point at a resource in the parent's contained array.
type Reference struct {
	Reference string `json:"reference,omitempty"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`
}

// Quantity represents a measured amount. Value is a pointer because
// template skeletons may declare a unit without a value.
type Quantity struct {
	Value      *float64 `json:"value,omitempty"`
	Comparator string   `json:"comparator,omitempty"` // < | <= | >= | >
	Unit       string   `json:"unit,omitempty"`
	System     string   `json:"system,omitempty"`
	Code       string   `json:"code,omitempty"`
}

// Extension represents a FHIR extension. Exactly one value[x] is populated.
type Extension struct {
	URL            string     `json:"url"`
	ValueBoolean   *bool      `json:"valueBoolean,omitempty"`
	ValueString    *string    `json:"valueString,omitempty"`
	ValueReference *Reference `json:"valueReference,omitempty"`
	ValueCoding    *Coding    `json:"valueCoding,omitempty"`
}
