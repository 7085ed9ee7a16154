// Package types provides type definitions for the career knowledge graph entities,
// relationships, and derived artifacts shared across the pipeline stages.
package types

// Demand trend values for skills.
const (
	TrendIncreasing = "increasing"
	TrendStable     = "stable"
	TrendDecreasing = "decreasing"
)

// Learning difficulty tiers for skills. Only TierHigh skills declare prerequisites.
const (
	DifficultyLow    = "low"
	DifficultyMedium = "medium"
	DifficultyHigh   = "high"
)

// Growth outlook values shared by roles and industries.
const (
	OutlookHighGrowth     = "high growth"
	OutlookModerateGrowth = "moderate growth"
	OutlookStable         = "stable"
	OutlookDeclining      = "declining"
)

// SFIAMapping maps a skill onto the SFIA framework (levels 1-7).
type SFIAMapping struct {
	Category string `json:"category"`
	Skill    string `json:"skill"`
	Level    int    `json:"level" validate:"min=1,max=7"`
}

// ECFMapping maps a skill onto the e-CF framework (proficiency 1-8).
type ECFMapping struct {
	Area        string `json:"area"`
	Competence  string `json:"competence"`
	Proficiency int    `json:"proficiency" validate:"min=1,max=8"`
}

// LevelingCriterion describes one proficiency level of a skill.
type LevelingCriterion struct {
	Level             int      `json:"level"`
	Description       string   `json:"description"`
	Examples          []string `json:"examples"`
	AssessmentMethods []string `json:"assessmentMethods"`
}

// Skill is a reference skill entity. Name is the natural key.
type Skill struct {
	ID                 int                 `json:"id"`
	Name               string              `json:"name"`
	Category           string              `json:"category"`
	Description        string              `json:"description"`
	DemandTrend        string              `json:"demandTrend"`
	LearningDifficulty string              `json:"learningDifficulty"`
	FutureRelevance    string              `json:"futureRelevance"`
	SFIA               SFIAMapping         `json:"sfiaMapping"`
	ECF                ECFMapping          `json:"ecfMapping"`
	LevelingCriteria   []LevelingCriterion `json:"levelingCriteria"`
}

// CareerPath holds the denormalized next/previous role titles back-filled
// onto a Role once pathways exist.
type CareerPath struct {
	Next     []string `json:"next"`
	Previous []string `json:"previous"`
}

// Role is a reference role entity. Title is the natural key.
type Role struct {
	ID                     int        `json:"id"`
	Title                  string     `json:"title"`
	Category               string     `json:"category"`
	Description            string     `json:"description"`
	AverageSalary          string     `json:"averageSalary"`
	EducationRequirements  []string   `json:"educationRequirements"`
	ExperienceRequirements []string   `json:"experienceRequirements"`
	DemandOutlook          string     `json:"demandOutlook"`
	CareerPath             CareerPath `json:"careerPath"`
}

// Industry is a reference industry entity. Name is the natural key.
type Industry struct {
	ID                     int      `json:"id"`
	Name                   string   `json:"name"`
	Category               string   `json:"category"`
	Description            string   `json:"description"`
	TrendDescription       string   `json:"trendDescription"`
	GrowthOutlook          string   `json:"growthOutlook"`
	DisruptiveTechnologies []string `json:"disruptiveTechnologies"`
	Regulations            []string `json:"regulations"`
}
