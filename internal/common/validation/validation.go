// Package validation wraps JSON-schema validation of request payloads.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// jobPayloadSchema guards job create/update bodies before they reach the
// service layer.
const jobPayloadSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string", "minLength": 1, "maxLength": 255},
		"description": {"type": "string"},
		"salary_min": {"type": ["integer", "null"], "minimum": 0},
		"salary_max": {"type": ["integer", "null"], "minimum": 0},
		"location_id": {"type": ["integer", "null"]},
		"work_type_id": {"type": ["integer", "null"]},
		"experience_level": {"type": "string", "enum": ["Junior", "Mid", "Senior", ""]},
		"industry": {"type": "string", "maxLength": 100},
		"tag_ids": {"type": ["array", "null"], "items": {"type": "integer"}}
	},
	"required": ["title"],
	"additionalProperties": false
}`

var jobSchema = gojsonschema.NewStringLoader(jobPayloadSchema)

// ValidateJobPayload checks a raw job body against the schema and returns a
// single human-readable message listing every violation.
func ValidateJobPayload(body []byte) error {
	result, err := gojsonschema.Validate(jobSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
