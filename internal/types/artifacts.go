package types

import "fmt"

// Resource cost models.
const (
	CostFree         = "free"
	CostPaid         = "paid"
	CostSubscription = "subscription"
)

// LearningResource is a study resource derived for a single skill.
// The ID is deterministic (res-{skillId}-{index}) so reruns overwrite.
type LearningResource struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Provider       string   `json:"provider"`
	URL            string   `json:"url"`
	Description    string   `json:"description"`
	SkillID        int      `json:"skillId"`
	Difficulty     string   `json:"difficulty"`
	EstimatedHours int      `json:"estimatedHours"`
	CostType       string   `json:"costType" validate:"oneof=free paid subscription"`
	Cost           string   `json:"cost"`
	Tags           []string `json:"tags"`
	Rating         float64  `json:"rating" validate:"min=0,max=5"`
	ReviewCount    int      `json:"reviewCount"`
	RelevanceScore int      `json:"relevanceScore" validate:"min=1,max=10"`
	MatchReason    string   `json:"matchReason"`
}

// ResourceID builds the deterministic composite id for a skill's nth resource.
func ResourceID(skillID, index int) string {
	return fmt.Sprintf("res-%d-%d", skillID, index)
}

// PathwayStep is one rung of a career pathway. Step numbers are 1-based and
// contiguous within a route.
type PathwayStep struct {
	Step           int    `json:"step"`
	RoleID         int    `json:"roleId"`
	Timeframe      string `json:"timeframe"`
	Description    string `json:"description"`
	RequiredSkills []int  `json:"requiredSkills"`
}

// AlternativeRoute is an independent step sequence between the same
// starting and target roles as its parent pathway.
type AlternativeRoute struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Steps       []PathwayStep `json:"steps"`
}

// CareerPathway is a multi-step progression from a starting role to a
// distinct target role.
type CareerPathway struct {
	ID                 int                `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	StartingRoleID     int                `json:"startingRoleId"`
	TargetRoleID       int                `json:"targetRoleId"`
	EstimatedTimeYears float64            `json:"estimatedTimeYears"`
	Steps              []PathwayStep      `json:"steps"`
	AlternativeRoutes  []AlternativeRoute `json:"alternativeRoutes"`
}
