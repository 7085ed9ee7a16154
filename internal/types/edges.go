package types

// Importance values shared by role-skill, skill-industry and prerequisite edges.
const (
	ImportanceCritical  = "critical"
	ImportanceImportant = "important"
	ImportanceHelpful   = "helpful"
)

// Prevalence values for role-industry edges.
const (
	PrevalenceHigh   = "high"
	PrevalenceMedium = "medium"
	PrevalenceLow    = "low"
)

// RoleSkill links a role to a skill it requires.
// The (RoleID, SkillID) pair is the composite key.
type RoleSkill struct {
	RoleID        int    `json:"roleId"`
	SkillID       int    `json:"skillId"`
	Importance    string `json:"importance" validate:"oneof=critical important helpful"`
	LevelRequired int    `json:"levelRequired" validate:"min=1,max=5"`
	Context       string `json:"context"`
}

// RoleIndustry links a role to an industry it appears in.
type RoleIndustry struct {
	RoleID          int    `json:"roleId"`
	IndustryID      int    `json:"industryId"`
	Prevalence      string `json:"prevalence" validate:"oneof=high medium low"`
	Notes           string `json:"notes"`
	Specializations string `json:"specializations"`
}

// SkillIndustry links a skill to an industry where it is applied.
type SkillIndustry struct {
	SkillID               int    `json:"skillId"`
	IndustryID            int    `json:"industryId"`
	Importance            string `json:"importance" validate:"oneof=critical important helpful"`
	TrendDirection        string `json:"trendDirection" validate:"oneof=increasing stable decreasing"`
	ContextualApplication string `json:"contextualApplication"`
}

// SkillPrerequisite links an advanced skill to a skill that should be
// acquired first. SkillID must never equal PrerequisiteID.
type SkillPrerequisite struct {
	SkillID          int    `json:"skillId"`
	PrerequisiteID   int    `json:"prerequisiteId" validate:"nefield=SkillID"`
	Importance       string `json:"importance" validate:"oneof=critical important helpful"`
	AcquisitionOrder int    `json:"acquisitionOrder,omitempty"`
	Notes            string `json:"notes"`
}

// Validate checks the enum and range constraints on a role-skill edge.
func (e *RoleSkill) Validate() error {
	return validate.Struct(e)
}

// Validate checks the enum constraints on a role-industry edge.
func (e *RoleIndustry) Validate() error {
	return validate.Struct(e)
}

// Validate checks the enum constraints on a skill-industry edge.
func (e *SkillIndustry) Validate() error {
	return validate.Struct(e)
}

// Validate checks the enum constraints and the no-self-loop rule on a
// prerequisite edge.
func (e *SkillPrerequisite) Validate() error {
	return validate.Struct(e)
}
