// Package schemas provides JSON Schema validation for generated entity arrays.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed skill.schema.json
var skillSchema string

//go:embed role.schema.json
var roleSchema string

//go:embed industry.schema.json
var industrySchema string

// Entity kinds understood by Validate.
const (
	EntitySkill    = "skill"
	EntityRole     = "role"
	EntityIndustry = "industry"
)

// ValidationError reports per-field schema violations in a generated array.
type ValidationError struct {
	Entity string
	Errors []FieldError
}

// FieldError is a single violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "generated %s array failed schema validation:\n", ve.Entity)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

func schemaFor(entity string) (string, error) {
	switch entity {
	case EntitySkill:
		return skillSchema, nil
	case EntityRole:
		return roleSchema, nil
	case EntityIndustry:
		return industrySchema, nil
	default:
		return "", fmt.Errorf("no schema for entity kind %q", entity)
	}
}

// Validate checks a raw JSON array of generated entities against the
// embedded schema for the given entity kind. Returns *ValidationError when
// the document does not match the schema.
func Validate(entity string, rawJSON []byte) error {
	schema, err := schemaFor(entity)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(rawJSON),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Entity: entity}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
