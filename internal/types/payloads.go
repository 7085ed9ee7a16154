package types

import "github.com/go-playground/validator/v10"

// Generator payloads are the un-identified entity shapes returned by the
// content provider. They become Skill/Role/Industry records once the
// persister assigns ids.

// SkillPayload is a generated skill before identity assignment.
type SkillPayload struct {
	Name               string              `json:"name" validate:"required"`
	Category           string              `json:"category" validate:"required"`
	Description        string              `json:"description" validate:"required"`
	DemandTrend        string              `json:"demandTrend" validate:"required,oneof=increasing stable decreasing"`
	LearningDifficulty string              `json:"learningDifficulty" validate:"required,oneof=low medium high"`
	FutureRelevance    string              `json:"futureRelevance"`
	SFIA               SFIAMapping         `json:"sfiaMapping"`
	ECF                ECFMapping          `json:"ecfMapping"`
	LevelingCriteria   []LevelingCriterion `json:"levelingCriteria"`
}

// RolePayload is a generated role before identity assignment.
type RolePayload struct {
	Title                  string   `json:"title" validate:"required"`
	Category               string   `json:"category" validate:"required"`
	Description            string   `json:"description" validate:"required"`
	AverageSalary          string   `json:"averageSalary"`
	EducationRequirements  []string `json:"educationRequirements"`
	ExperienceRequirements []string `json:"experienceRequirements"`
	DemandOutlook          string   `json:"demandOutlook" validate:"required,oneof='high growth' 'moderate growth' stable declining"`
}

// IndustryPayload is a generated industry before identity assignment.
type IndustryPayload struct {
	Name                   string   `json:"name" validate:"required"`
	Category               string   `json:"category" validate:"required"`
	Description            string   `json:"description" validate:"required"`
	TrendDescription       string   `json:"trendDescription"`
	GrowthOutlook          string   `json:"growthOutlook" validate:"required,oneof='high growth' 'moderate growth' stable declining"`
	DisruptiveTechnologies []string `json:"disruptiveTechnologies"`
	Regulations            []string `json:"regulations"`
}

var validate = validator.New()

// Validate checks required fields and enum domains on a SkillPayload.
func (p *SkillPayload) Validate() error {
	return validate.Struct(p)
}

// Validate checks required fields and enum domains on a RolePayload.
func (p *RolePayload) Validate() error {
	return validate.Struct(p)
}

// Validate checks required fields and enum domains on an IndustryPayload.
func (p *IndustryPayload) Validate() error {
	return validate.Struct(p)
}
