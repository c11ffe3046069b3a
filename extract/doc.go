// Package extract implements template-based Observation extraction for FHIR
// SDC questionnaires.
//
// A template questionnaire embeds skeleton Observation resources in its
// contained array. After the form is filled out, the engine binds response
// answers into those skeletons and emits populated Observations:
//
//	result := extract.ProcessTemplateObservations(ctx, questionnaire, response)
//	for _, obs := range result.Observations { ... }
//
// Two entry points are exposed to host applications:
// ExtractTemplateObservations classifies and validates a questionnaire's
// template structure without a response, and ProcessTemplateObservations
// runs the full extraction. Both are pure: inputs are never mutated, no
// state survives a call, and concurrent calls are independent.
package extract
