package r4

import (
	json "github.com/goccy/go-json"
)

// Questionnaire represents a FHIR R4 Questionnaire resource. Template
// questionnaires embed Observation skeletons in Contained and mark
// themselves via meta.profile and the SDC template extension.
type Questionnaire struct {
	ResourceType string              `json:"resourceType"`
	ID           string              `json:"id,omitempty"`
	Meta         *Meta               `json:"meta,omitempty"`
	URL          string              `json:"url,omitempty"`
	Title        string              `json:"title,omitempty"`
	Status       string              `json:"status,omitempty"` // draft | active | retired | unknown
	Extension    []Extension         `json:"extension,omitempty"`
	Contained    []ContainedResource `json:"contained,omitempty"`
	Item         []QuestionnaireItem `json:"item,omitempty"`
}

// QuestionnaireItem represents one question or group within a Questionnaire.
type QuestionnaireItem struct {
	LinkID    string              `json:"linkId"`
	Text      string              `json:"text,omitempty"`
	Type      string              `json:"type,omitempty"` // group | decimal | integer | string | boolean | quantity | ...
	Code      []Coding            `json:"code,omitempty"`
	Required  bool                `json:"required,omitempty"`
	ReadOnly  bool                `json:"readOnly,omitempty"`
	Extension []Extension         `json:"extension,omitempty"`
	Item      []QuestionnaireItem `json:"item,omitempty"`
}

// ContainedResource holds one entry of a resource's contained array.
// Observations are decoded into the typed field; any other resource type is
// retained as raw JSON so the document round-trips losslessly.
type ContainedResource struct {
	Observation *Observation
	Raw         json.RawMessage
}

func (c *ContainedResource) UnmarshalJSON(b []byte) error {
	var probe struct {
		ResourceType string `json:"resourceType"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if probe.ResourceType == "Observation" {
		var obs Observation
		if err := json.Unmarshal(b, &obs); err != nil {
			return err
		}
		c.Observation = &obs
		return nil
	}
	c.Raw = append(json.RawMessage(nil), b...)
	return nil
}

func (c ContainedResource) MarshalJSON() ([]byte, error) {
	if c.Observation != nil {
		return json.Marshal(c.Observation)
	}
	if c.Raw != nil {
		return c.Raw, nil
	}
	return []byte("null"), nil
}
