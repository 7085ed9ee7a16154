// Package generator implements the content-generation stage: batched
// structured-generation requests against the provider, response parsing and
// shape validation. Payloads leave this package un-identified; the persister
// assigns ids.
package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmtorres/careergraph/internal/llm"
	"github.com/jmtorres/careergraph/internal/platform/logger"
	"github.com/jmtorres/careergraph/internal/schemas"
	"github.com/jmtorres/careergraph/internal/types"
)

// Array field names the provider is instructed to return.
const (
	FieldSkills     = "skills"
	FieldRoles      = "roles"
	FieldIndustries = "industries"
)

// categoriesPerCall bounds request size by grouping at most two categories
// into a single provider call.
const categoriesPerCall = 2

// fieldValidated is the payload pointer constraint: every generated payload
// carries validator tags and a Validate hook checked after decoding.
type fieldValidated[T any] interface {
	*T
	Validate() error
}

// Generator issues structured-generation requests and validates the results.
type Generator struct {
	client llm.Client
	log    *logger.Logger
}

// New creates a Generator over the given provider client.
func New(client llm.Client, log *logger.Logger) *Generator {
	return &Generator{client: client, log: log}
}

// GenerateSkills generates perCategory skill payloads for each category.
// On a provider failure it returns the payloads accumulated so far together
// with a *ProviderError describing the failed batch.
func (g *Generator) GenerateSkills(ctx context.Context, categories []string, perCategory int) ([]types.SkillPayload, error) {
	return generate[types.SkillPayload, *types.SkillPayload](ctx, g, schemas.EntitySkill, FieldSkills, categories, perCategory, skillPrompt)
}

// GenerateRoles generates perCategory role payloads for each category.
func (g *Generator) GenerateRoles(ctx context.Context, categories []string, perCategory int) ([]types.RolePayload, error) {
	return generate[types.RolePayload, *types.RolePayload](ctx, g, schemas.EntityRole, FieldRoles, categories, perCategory, rolePrompt)
}

// GenerateIndustries generates perCategory industry payloads for each category.
func (g *Generator) GenerateIndustries(ctx context.Context, categories []string, perCategory int) ([]types.IndustryPayload, error) {
	return generate[types.IndustryPayload, *types.IndustryPayload](ctx, g, schemas.EntityIndustry, FieldIndustries, categories, perCategory, industryPrompt)
}

func generate[T any, PT fieldValidated[T]](
	ctx context.Context,
	g *Generator,
	entity, arrayField string,
	categories []string,
	perCategory int,
	prompt func([]string, int) string,
) ([]T, error) {
	var out []T

	for _, batch := range chunkCategories(categories, categoriesPerCall) {
		g.log.Info("generating batch", "entity", entity, "categories", batch, "perCategory", perCategory)

		raw, err := g.client.GenerateJSON(ctx, prompt(batch, perCategory))
		if err != nil {
			return out, &ProviderError{Entity: entity, Categories: batch, Err: err}
		}

		payloads, err := parseBatch[T, PT](entity, arrayField, []byte(raw))
		if err != nil {
			return out, &ProviderError{Entity: entity, Categories: batch, Err: err}
		}

		g.log.Info("batch generated", "entity", entity, "count", len(payloads))
		out = append(out, payloads...)
	}

	return out, nil
}

// parseBatch extracts the named array field from the provider response,
// validates it against the embedded schema for the entity kind, then checks
// the decoded payloads' field tags. A bare top-level array is also accepted;
// providers occasionally drop the wrapper object despite instructions.
func parseBatch[T any, PT fieldValidated[T]](entity, arrayField string, raw []byte) ([]T, error) {
	arr, err := extractArrayField(arrayField, raw)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(entity, arr); err != nil {
		return nil, err
	}

	var payloads []T
	if err := json.Unmarshal(arr, &payloads); err != nil {
		return nil, fmt.Errorf("failed to decode %s array: %w", arrayField, err)
	}

	for i := range payloads {
		if err := PT(&payloads[i]).Validate(); err != nil {
			return nil, fmt.Errorf("%s[%d] failed field validation: %w", arrayField, i, err)
		}
	}
	return payloads, nil
}

func extractArrayField(arrayField string, raw []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		arr, ok := envelope[arrayField]
		if !ok {
			return nil, fmt.Errorf("response has no %q field", arrayField)
		}
		return arr, nil
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(raw, &bare); err == nil {
		return json.RawMessage(raw), nil
	}

	return nil, fmt.Errorf("response is neither an object with %q nor an array", arrayField)
}

func chunkCategories(categories []string, size int) [][]string {
	var chunks [][]string
	for len(categories) > size {
		chunks = append(chunks, categories[:size])
		categories = categories[size:]
	}
	if len(categories) > 0 {
		chunks = append(chunks, categories)
	}
	return chunks
}
