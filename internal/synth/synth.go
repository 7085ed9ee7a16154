// Package synth implements relationship synthesis: weighted, typed edges
// between persisted entities, sampled without replacement from an explicit
// random source so tests can pin the edge set.
package synth

import (
	"context"
	"math/rand"

	"github.com/jmtorres/careergraph/internal/platform/logger"
	"github.com/jmtorres/careergraph/internal/types"
)

// Store is the subset of the document store the synthesizer reads and writes.
type Store interface {
	ListSkills(ctx context.Context) ([]types.Skill, error)
	ListRoles(ctx context.Context) ([]types.Role, error)
	ListIndustries(ctx context.Context) ([]types.Industry, error)
	UpsertRoleSkill(ctx context.Context, edge types.RoleSkill) error
	UpsertRoleIndustry(ctx context.Context, edge types.RoleIndustry) error
	UpsertSkillIndustry(ctx context.Context, edge types.SkillIndustry) error
	UpsertSkillPrerequisite(ctx context.Context, edge types.SkillPrerequisite) error
}

// Counts reports how many edges of each type a synthesis run upserted.
type Counts struct {
	RoleSkills      int
	RoleIndustries  int
	SkillIndustries int
	Prerequisites   int
}

// Total returns the combined edge count.
func (c Counts) Total() int {
	return c.RoleSkills + c.RoleIndustries + c.SkillIndustries + c.Prerequisites
}

// Synthesizer builds the relationship graph over persisted entities.
type Synthesizer struct {
	store Store
	rng   *rand.Rand
	log   *logger.Logger
}

// New creates a Synthesizer. The random source is injected so callers can
// seed it for reproducible edge sets.
func New(store Store, rng *rand.Rand, log *logger.Logger) *Synthesizer {
	return &Synthesizer{store: store, rng: rng, log: log}
}

var (
	importanceDomain = []string{types.ImportanceCritical, types.ImportanceImportant, types.ImportanceHelpful}
	prevalenceDomain = []string{types.PrevalenceHigh, types.PrevalenceMedium, types.PrevalenceLow}
	trendDomain      = []string{types.TrendIncreasing, types.TrendStable, types.TrendDecreasing}
)

// SynthesizeAll runs all four edge syntheses in order.
func (s *Synthesizer) SynthesizeAll(ctx context.Context) (Counts, error) {
	var counts Counts
	var err error

	if counts.RoleSkills, err = s.SynthesizeRoleSkills(ctx); err != nil {
		return counts, err
	}
	if counts.RoleIndustries, err = s.SynthesizeRoleIndustries(ctx); err != nil {
		return counts, err
	}
	if counts.SkillIndustries, err = s.SynthesizeSkillIndustries(ctx); err != nil {
		return counts, err
	}
	if counts.Prerequisites, err = s.SynthesizePrerequisites(ctx); err != nil {
		return counts, err
	}
	return counts, nil
}

// SynthesizeRoleSkills links each role to a small random subset of skills.
// Repeated runs refresh attribute values but never create parallel edges,
// because the upsert key is the (role, skill) pair.
func (s *Synthesizer) SynthesizeRoleSkills(ctx context.Context) (int, error) {
	roles, err := s.store.ListRoles(ctx)
	if err != nil {
		return 0, err
	}
	skills, err := s.store.ListSkills(ctx)
	if err != nil {
		return 0, err
	}
	if len(roles) == 0 || len(skills) == 0 {
		s.log.Warn("skipping role-skill synthesis", "roles", len(roles), "skills", len(skills))
		return 0, nil
	}

	count := 0
	for _, role := range roles {
		for _, idx := range s.sample(len(skills), s.between(2, 3)) {
			skill := skills[idx]
			edge := types.RoleSkill{
				RoleID:        role.ID,
				SkillID:       skill.ID,
				Importance:    s.pick(importanceDomain),
				LevelRequired: s.between(1, 5),
				Context:       "Applied in day-to-day " + role.Title + " work.",
			}
			err := edge.Validate()
			if err == nil {
				err = s.store.UpsertRoleSkill(ctx, edge)
			}
			if err != nil {
				s.log.Error("skipping role-skill edge", "roleId", role.ID, "skillId", skill.ID, "error", err)
				continue
			}
			count++
		}
	}
	return count, nil
}

// SynthesizeRoleIndustries links each role to the industries it appears in.
func (s *Synthesizer) SynthesizeRoleIndustries(ctx context.Context) (int, error) {
	roles, err := s.store.ListRoles(ctx)
	if err != nil {
		return 0, err
	}
	industries, err := s.store.ListIndustries(ctx)
	if err != nil {
		return 0, err
	}
	if len(roles) == 0 || len(industries) == 0 {
		s.log.Warn("skipping role-industry synthesis", "roles", len(roles), "industries", len(industries))
		return 0, nil
	}

	count := 0
	for _, role := range roles {
		for _, idx := range s.sample(len(industries), s.between(2, 3)) {
			industry := industries[idx]
			edge := types.RoleIndustry{
				RoleID:          role.ID,
				IndustryID:      industry.ID,
				Prevalence:      s.pick(prevalenceDomain),
				Notes:           role.Title + " positions are common across " + industry.Name + ".",
				Specializations: industry.Name + "-focused " + role.Title,
			}
			err := edge.Validate()
			if err == nil {
				err = s.store.UpsertRoleIndustry(ctx, edge)
			}
			if err != nil {
				s.log.Error("skipping role-industry edge", "roleId", role.ID, "industryId", industry.ID, "error", err)
				continue
			}
			count++
		}
	}
	return count, nil
}

// SynthesizeSkillIndustries links each skill to industries where it applies.
func (s *Synthesizer) SynthesizeSkillIndustries(ctx context.Context) (int, error) {
	skills, err := s.store.ListSkills(ctx)
	if err != nil {
		return 0, err
	}
	industries, err := s.store.ListIndustries(ctx)
	if err != nil {
		return 0, err
	}
	if len(skills) == 0 || len(industries) == 0 {
		s.log.Warn("skipping skill-industry synthesis", "skills", len(skills), "industries", len(industries))
		return 0, nil
	}

	count := 0
	for _, skill := range skills {
		for _, idx := range s.sample(len(industries), s.between(2, 3)) {
			industry := industries[idx]
			edge := types.SkillIndustry{
				SkillID:               skill.ID,
				IndustryID:            industry.ID,
				Importance:            s.pick(importanceDomain),
				TrendDirection:        s.pick(trendDomain),
				ContextualApplication: skill.Name + " applied to " + industry.Name + " problems.",
			}
			err := edge.Validate()
			if err == nil {
				err = s.store.UpsertSkillIndustry(ctx, edge)
			}
			if err != nil {
				s.log.Error("skipping skill-industry edge", "skillId", skill.ID, "industryId", industry.ID, "error", err)
				continue
			}
			count++
		}
	}
	return count, nil
}

// SynthesizePrerequisites links advanced skills to the skills they build on.
// Only skills in the highest learning-difficulty tier declare prerequisites,
// and a skill can never be its own prerequisite.
func (s *Synthesizer) SynthesizePrerequisites(ctx context.Context) (int, error) {
	skills, err := s.store.ListSkills(ctx)
	if err != nil {
		return 0, err
	}
	if len(skills) < 2 {
		s.log.Warn("skipping prerequisite synthesis", "skills", len(skills))
		return 0, nil
	}

	count := 0
	for _, skill := range skills {
		if skill.LearningDifficulty != types.DifficultyHigh {
			continue
		}

		candidates := make([]types.Skill, 0, len(skills)-1)
		for _, other := range skills {
			if other.ID != skill.ID {
				candidates = append(candidates, other)
			}
		}

		order := 0
		for _, idx := range s.sample(len(candidates), s.between(1, 2)) {
			prereq := candidates[idx]
			order++
			edge := types.SkillPrerequisite{
				SkillID:          skill.ID,
				PrerequisiteID:   prereq.ID,
				Importance:       s.pick(importanceDomain),
				AcquisitionOrder: order,
				Notes:            prereq.Name + " provides the foundation for " + skill.Name + ".",
			}
			err := edge.Validate()
			if err == nil {
				err = s.store.UpsertSkillPrerequisite(ctx, edge)
			}
			if err != nil {
				s.log.Error("skipping prerequisite edge", "skillId", skill.ID, "prerequisiteId", prereq.ID, "error", err)
				continue
			}
			count++
		}
	}
	return count, nil
}

// sample returns n distinct indices into a pool of the given size, fewer
// when the pool is smaller than n.
func (s *Synthesizer) sample(poolSize, n int) []int {
	if n > poolSize {
		n = poolSize
	}
	return s.rng.Perm(poolSize)[:n]
}

// between returns a uniform int in [lo, hi].
func (s *Synthesizer) between(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *Synthesizer) pick(domain []string) string {
	return domain[s.rng.Intn(len(domain))]
}
