package generator

import (
	"fmt"
	"strings"
)

// promptSpec describes one field of the requested entity payload for the
// provider prompt.
type promptField struct {
	Name        string
	Type        string
	Description string
}

func buildEntityPrompt(entity, arrayField string, categories []string, perCategory int, fields []promptField) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are building a career reference knowledge base. Generate exactly %d %s entries for EACH of these categories: %s.\n\n",
		perCategory, entity, strings.Join(categories, ", "))

	fmt.Fprintf(&sb, "Return ONLY valid JSON: a single object with one field %q holding a flat array of all generated entries.\n", arrayField)
	sb.WriteString("Each array element must match this exact structure:\n{\n")
	for i, f := range fields {
		fmt.Fprintf(&sb, "  %q: %s", f.Name, f.Type)
		if f.Description != "" {
			fmt.Fprintf(&sb, " // %s", f.Description)
		}
		if i < len(fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Use realistic, commonly recognized names for each entry.\n")
	sb.WriteString("- Enum fields must use exactly one of the listed values.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	return sb.String()
}

func skillPrompt(categories []string, perCategory int) string {
	return buildEntityPrompt("skill", FieldSkills, categories, perCategory, []promptField{
		{"name", `"string"`, "canonical skill name, unique across the batch"},
		{"category", `"string"`, "the category this skill was requested under"},
		{"description", `"string"`, "2-3 sentence description"},
		{"demandTrend", `"string"`, `one of "increasing", "stable", "decreasing"`},
		{"learningDifficulty", `"string"`, `one of "low", "medium", "high"`},
		{"futureRelevance", `"string"`, "outlook over the next decade"},
		{"sfiaMapping", `{"category": "string", "skill": "string", "level": 1-7}`, "SFIA framework mapping"},
		{"ecfMapping", `{"area": "string", "competence": "string", "proficiency": 1-8}`, "e-CF framework mapping"},
		{"levelingCriteria", `[{"level": int, "description": "string", "examples": ["string"], "assessmentMethods": ["string"]}]`, "ordered proficiency levels 1-5"},
	})
}

func rolePrompt(categories []string, perCategory int) string {
	return buildEntityPrompt("role", FieldRoles, categories, perCategory, []promptField{
		{"title", `"string"`, "canonical role title, unique across the batch"},
		{"category", `"string"`, "the category this role was requested under"},
		{"description", `"string"`, "2-3 sentence description"},
		{"averageSalary", `"string"`, `salary range such as "$90,000 - $130,000"`},
		{"educationRequirements", `["string"]`, "typical degrees or certifications"},
		{"experienceRequirements", `["string"]`, "typical experience expectations"},
		{"demandOutlook", `"string"`, `one of "high growth", "moderate growth", "stable", "declining"`},
	})
}

func industryPrompt(categories []string, perCategory int) string {
	return buildEntityPrompt("industry", FieldIndustries, categories, perCategory, []promptField{
		{"name", `"string"`, "canonical industry name, unique across the batch"},
		{"category", `"string"`, "the category this industry was requested under"},
		{"description", `"string"`, "2-3 sentence description"},
		{"trendDescription", `"string"`, "current direction of the industry"},
		{"growthOutlook", `"string"`, `one of "high growth", "moderate growth", "stable", "declining"`},
		{"disruptiveTechnologies", `["string"]`, "technologies reshaping the industry"},
		{"regulations", `["string"]`, "key regulatory frameworks"},
	})
}
